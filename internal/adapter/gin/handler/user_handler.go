package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-directory-web/internal/adapter/gin/flash"
	"user-directory-web/internal/adapter/view"
	domain "user-directory-web/internal/domain/user"
	"user-directory-web/internal/usecase/user"
	apperrors "user-directory-web/pkg/errors"
	"user-directory-web/pkg/logger"
	"user-directory-web/pkg/security"
)

// UserHandler serves the users page and its form actions
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// UserForm is the submitted user form. The hidden id field selects the mode.
type UserForm struct {
	ID       string `form:"id"`
	Name     string `form:"name"`
	LastName string `form:"lastName"`
	Age      string `form:"age"`
	Address  string `form:"address"`
}

// Fields returns the writable values of the form
func (f UserForm) Fields() domain.Fields {
	return domain.Fields{
		Name:     f.Name,
		LastName: f.LastName,
		Age:      f.Age,
		Address:  f.Address,
	}
}

// Index handles GET /
func (h *UserHandler) Index(c *gin.Context) {
	notice := popNotice(c)

	resp, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		h.renderIndex(c, apperrors.HTTPStatus(err), user.NewCreateForm(), nil, errorNotice(err))
		return
	}

	h.renderIndex(c, http.StatusOK, user.NewCreateForm(), resp.Users, notice)
}

// Submit handles POST /users
func (h *UserHandler) Submit(c *gin.Context) {
	log := h.requestLogger(c)

	var form UserForm
	if err := c.ShouldBind(&form); err != nil {
		log.Warn("Invalid user form", zap.Error(err))
		h.renderWithError(c, user.NewCreateForm(), apperrors.NewValidationError("form", "could not read the submitted form"))
		return
	}

	mode := domain.ModeFromField(form.ID)
	if mode.IsEdit() {
		id, err := security.ValidateUserID(form.ID)
		if err != nil {
			log.Warn("Invalid user ID in form", zap.String("id", form.ID), zap.Error(err))
			// Keep what the user typed; the unusable id is dropped
			h.renderWithError(c, user.Form{Mode: domain.CreateMode(), Fields: form.Fields()}, apperrors.NewValidationError("id", err.Error()))
			return
		}
		mode = domain.EditMode(domain.ID(id))
	}

	resp, err := h.uc.SubmitUser(c.Request.Context(), user.SubmitUserRequest{
		Mode:   mode,
		Fields: form.Fields(),
	})
	if err != nil {
		// Keep what the user typed, in the same mode
		h.renderWithError(c, user.Form{Mode: mode, Fields: form.Fields()}, err)
		return
	}

	switch resp.Action {
	case user.ActionUpdated:
		flash.Write(c, flash.Notice{Kind: string(view.NoticeSuccess), Message: "User updated"})
	default:
		flash.Write(c, flash.Notice{Kind: string(view.NoticeSuccess), Message: "User added"})
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Edit handles GET /users/:id/edit
func (h *UserHandler) Edit(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	resp, err := h.uc.EditUser(c.Request.Context(), user.EditUserRequest{ID: id})
	if err != nil {
		var users []domain.User
		if resp != nil {
			users = resp.Users
		}
		h.renderIndex(c, apperrors.HTTPStatus(err), user.NewCreateForm(), users, errorNotice(err))
		return
	}

	h.renderIndex(c, http.StatusOK, resp.Form, resp.Users, nil)
}

// ConfirmDelete handles GET /users/:id/delete
func (h *UserHandler) ConfirmDelete(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, view.ConfirmTemplate, view.NewConfirmPage(id))
}

// Delete handles POST /users/:id/delete
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	resp, err := h.uc.DeleteUser(c.Request.Context(), user.DeleteUserRequest{
		ID:        id,
		Confirmed: c.PostForm("confirm") == "yes",
	})
	if err != nil {
		h.renderWithError(c, user.NewCreateForm(), err)
		return
	}

	if resp.Deleted {
		flash.Write(c, flash.Notice{Kind: string(view.NoticeSuccess), Message: "User deleted"})
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// userID validates the :id path parameter, rendering a 400 page when it is unusable
func (h *UserHandler) userID(c *gin.Context) (domain.ID, bool) {
	raw := c.Param("id")
	id, err := security.ValidateUserID(raw)
	if err != nil {
		h.requestLogger(c).Warn("Invalid user ID", zap.String("id", raw), zap.Error(err))
		h.renderWithError(c, user.NewCreateForm(), apperrors.NewValidationError("id", err.Error()))
		return "", false
	}
	return domain.ID(id), true
}

// renderWithError re-fetches the list and renders the page with form and an error notice
func (h *UserHandler) renderWithError(c *gin.Context, form user.Form, err error) {
	var users []domain.User
	if resp, listErr := h.uc.ListUsers(c.Request.Context()); listErr == nil {
		users = resp.Users
	}
	h.renderIndex(c, apperrors.HTTPStatus(err), form, users, errorNotice(err))
}

func (h *UserHandler) renderIndex(c *gin.Context, status int, form user.Form, users []domain.User, notice *view.Notice) {
	c.HTML(status, view.IndexTemplate, view.NewPage(form, users, notice))
}

func (h *UserHandler) requestLogger(c *gin.Context) *zap.Logger {
	return logger.WithContext(c.Request.Context(), h.log)
}

// popNotice returns the pending flash notice as a view notice
func popNotice(c *gin.Context) *view.Notice {
	n, ok := flash.ReadAndClear(c)
	if !ok {
		return nil
	}
	return &view.Notice{Kind: view.NoticeKind(n.Kind), Message: n.Message}
}

// errorNotice turns a failure into a message the page can show
func errorNotice(err error) *view.Notice {
	return &view.Notice{Kind: view.NoticeError, Message: describe(err)}
}

func describe(err error) string {
	var (
		validationErr *apperrors.ValidationError
		notFoundErr   *apperrors.NotFoundError
		backendErr    *apperrors.BackendError
		transportErr  *apperrors.TransportError
		decodeErr     *apperrors.DecodeError
	)

	switch {
	case errors.As(err, &validationErr):
		return fmt.Sprintf("Invalid request: %s", validationErr.Message)
	case errors.As(err, &notFoundErr):
		return notFoundErr.Error()
	case errors.As(err, &backendErr):
		return fmt.Sprintf("The users service rejected the request (status %d).", backendErr.StatusCode)
	case errors.As(err, &transportErr):
		return "The users service is unreachable. Please try again."
	case errors.As(err, &decodeErr):
		return "The users service returned an unreadable response."
	default:
		return "Something went wrong. Please try again."
	}
}
