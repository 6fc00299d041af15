package user

import domain "user-directory-web/internal/domain/user"

// Form is the state of the user form: its mode and field values.
type Form struct {
	Mode   domain.Mode
	Fields domain.Fields
}

// NewCreateForm returns the empty form in Create mode.
func NewCreateForm() Form {
	return Form{Mode: domain.CreateMode()}
}

// ListUsersResponse carries the freshly fetched users in backend order.
type ListUsersResponse struct {
	Users []domain.User
}

// SubmitUserRequest is a form submission.
type SubmitUserRequest struct {
	Mode   domain.Mode
	Fields domain.Fields
}

// Action is what a submission did on the backend.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
)

// SubmitUserResponse is the outcome of a successful submission.
type SubmitUserResponse struct {
	Action Action
	ID     domain.ID // set for updates
	Next   Form      // always the empty Create form
}

// EditUserRequest selects a user for editing.
type EditUserRequest struct {
	ID domain.ID
}

// EditUserResponse is the form switched to Edit mode together with the
// list it was looked up in.
type EditUserResponse struct {
	Form  Form
	Users []domain.User
}

// DeleteUserRequest is a delete action and the answer to its confirmation prompt.
type DeleteUserRequest struct {
	ID        domain.ID
	Confirmed bool
}

// DeleteUserResponse reports whether a delete request was issued.
type DeleteUserResponse struct {
	ID      domain.ID
	Deleted bool
}
