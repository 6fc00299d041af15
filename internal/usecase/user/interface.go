package user

import "context"

// Usecase defines the form controller operations behind the users page.
type Usecase interface {
	ListUsers(ctx context.Context) (*ListUsersResponse, error)
	SubmitUser(ctx context.Context, in SubmitUserRequest) (*SubmitUserResponse, error)
	EditUser(ctx context.Context, in EditUserRequest) (*EditUserResponse, error)
	DeleteUser(ctx context.Context, in DeleteUserRequest) (*DeleteUserResponse, error)
}
