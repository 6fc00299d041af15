// Package backendtest provides an in-memory users backend for tests.
package backendtest

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	domain "user-directory-web/internal/domain/user"
)

// Request is one call received by the fake backend.
type Request struct {
	Method    string
	Path      string
	RequestID string
	Body      domain.Fields
}

// Server is a fake users backend implementing GET/POST /users and
// PUT/DELETE /users/:id over an ordered in-memory list.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	users    []domain.User
	nextID   int
	requests []Request
	failures map[string]int
}

// New starts a fake backend seeded with users and closes it on test cleanup.
func New(t testing.TB, users ...domain.User) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{
		users:    append([]domain.User(nil), users...),
		nextID:   len(users) + 1,
		failures: make(map[string]int),
	}

	r := gin.New()
	r.UseRawPath = true
	r.UnescapePathValues = true
	r.Use(s.record, s.fail)
	r.GET("/users", s.list)
	r.POST("/users", s.create)
	r.PUT("/users/:id", s.replace)
	r.DELETE("/users/:id", s.delete)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// FailNext makes the next request with the given method answer with status.
func (s *Server) FailNext(method string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = status
}

// Requests returns the calls received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// RequestsFor returns the calls received with the given method.
func (s *Server) RequestsFor(method string) []Request {
	var out []Request
	for _, r := range s.Requests() {
		if r.Method == method {
			out = append(out, r)
		}
	}
	return out
}

// Users returns the current backend state.
func (s *Server) Users() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.User{}, s.users...)
}

func (s *Server) record(c *gin.Context) {
	req := Request{
		Method:    c.Request.Method,
		Path:      c.Request.URL.EscapedPath(),
		RequestID: c.GetHeader("X-Request-ID"),
	}
	if c.Request.Method == http.MethodPost || c.Request.Method == http.MethodPut {
		_ = c.ShouldBindJSON(&req.Body)
		c.Set("fields", req.Body)
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()
	c.Next()
}

func (s *Server) fail(c *gin.Context) {
	s.mu.Lock()
	status, ok := s.failures[c.Request.Method]
	delete(s.failures, c.Request.Method)
	s.mu.Unlock()

	if ok {
		c.AbortWithStatusJSON(status, gin.H{"error": http.StatusText(status)})
		return
	}
	c.Next()
}

func (s *Server) list(c *gin.Context) {
	c.JSON(http.StatusOK, s.Users())
}

func (s *Server) create(c *gin.Context) {
	f := c.MustGet("fields").(domain.Fields)

	s.mu.Lock()
	u := domain.User{
		ID:       domain.ID(strconv.Itoa(s.nextID)),
		Name:     f.Name,
		LastName: f.LastName,
		Age:      f.Age,
		Address:  f.Address,
	}
	s.nextID++
	s.users = append(s.users, u)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, u)
}

func (s *Server) replace(c *gin.Context) {
	f := c.MustGet("fields").(domain.Fields)
	id := domain.ID(c.Param("id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == id {
			s.users[i] = domain.User{ID: id, Name: f.Name, LastName: f.LastName, Age: f.Age, Address: f.Address}
			c.JSON(http.StatusOK, s.users[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
}

func (s *Server) delete(c *gin.Context) {
	id := domain.ID(c.Param("id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
}
