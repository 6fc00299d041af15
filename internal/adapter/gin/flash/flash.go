// Package flash carries one-time notices across the post/redirect/get cycle.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CookieName is the cookie used for one-time notices.
const CookieName = "ud_flash"

// maxMessageLength keeps the cookie well under browser limits
const maxMessageLength = 512

// Notice is one flash message.
type Notice struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Write stores a notice for the next page render.
func Write(c *gin.Context, notice Notice) {
	notice, ok := normalize(notice)
	if !ok {
		return
	}
	payload, err := json.Marshal(notice)
	if err != nil {
		return
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Request.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadAndClear returns the pending notice, if any, and expires the cookie.
func ReadAndClear(c *gin.Context) (Notice, bool) {
	raw, err := c.Cookie(CookieName)
	if err != nil {
		return Notice{}, false
	}
	Clear(c)
	return decode(raw)
}

// Clear expires any pending notice.
func Clear(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Request.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func decode(raw string) (Notice, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Notice{}, false
	}
	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return Notice{}, false
	}
	var notice Notice
	if err := json.Unmarshal(decoded, &notice); err != nil {
		return Notice{}, false
	}
	return normalize(notice)
}

func normalize(notice Notice) (Notice, bool) {
	notice.Kind = strings.TrimSpace(notice.Kind)
	notice.Message = strings.TrimSpace(notice.Message)
	if notice.Kind == "" || notice.Message == "" {
		return Notice{}, false
	}
	if len(notice.Message) > maxMessageLength {
		notice.Message = notice.Message[:maxMessageLength]
	}
	return notice, true
}
