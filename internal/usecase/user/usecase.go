package user

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domain "user-directory-web/internal/domain/user"
	apperrors "user-directory-web/pkg/errors"
	"user-directory-web/pkg/logger"
)

// Repository defines the backend operations the form controller relies on.
// The backend owns persistence; this client never keeps a local copy.
type Repository interface {
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, f domain.Fields) error
	Replace(ctx context.Context, id domain.ID, f domain.Fields) error // full replace, not a patch
	Delete(ctx context.Context, id domain.ID) error
}

// Controller implements Usecase on top of a Repository.
type Controller struct {
	repo Repository
	log  *zap.Logger
}

// New creates a new form controller.
func New(r Repository, log *zap.Logger) *Controller {
	return &Controller{repo: r, log: log}
}

// ListUsers fetches the full user list.
func (uc *Controller) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	log := logger.WithContext(ctx, uc.log)

	users, err := uc.repo.List(ctx)
	if err != nil {
		log.Error("failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	log.Debug("listed users", zap.Int("count", len(users)))
	return &ListUsersResponse{Users: users}, nil
}

// SubmitUser creates a user in Create mode or replaces the selected user in
// Edit mode. On success the controller is back in Create mode.
func (uc *Controller) SubmitUser(ctx context.Context, in SubmitUserRequest) (*SubmitUserResponse, error) {
	log := logger.WithContext(ctx, uc.log).With(zap.String("mode", in.Mode.String()))

	id, editing := in.Mode.ID()
	if !editing {
		log.Info("creating user", zap.String("name", in.Fields.Name), zap.String("last_name", in.Fields.LastName))

		if err := uc.repo.Create(ctx, in.Fields); err != nil {
			log.Error("failed to create user", zap.Error(err))
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return &SubmitUserResponse{Action: ActionCreated, Next: NewCreateForm()}, nil
	}

	log.Info("updating user", zap.String("id", id.String()), zap.String("name", in.Fields.Name))

	if err := uc.repo.Replace(ctx, id, in.Fields); err != nil {
		log.Error("failed to update user", zap.String("id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to update user %s: %w", id, err)
	}
	return &SubmitUserResponse{Action: ActionUpdated, ID: id, Next: NewCreateForm()}, nil
}

// EditUser fetches the full list, finds the user and returns the form
// pre-filled in Edit mode. When the id is not in the list a NotFoundError
// is returned together with the Create form and the fetched users.
func (uc *Controller) EditUser(ctx context.Context, in EditUserRequest) (*EditUserResponse, error) {
	log := logger.WithContext(ctx, uc.log).With(zap.String("id", in.ID.String()))

	users, err := uc.repo.List(ctx)
	if err != nil {
		log.Error("failed to list users for edit", zap.Error(err))
		return nil, fmt.Errorf("failed to load user %s: %w", in.ID, err)
	}

	u, ok := domain.FindByID(users, in.ID)
	if !ok {
		log.Warn("user selected for edit not found")
		return &EditUserResponse{Form: NewCreateForm(), Users: users},
			apperrors.NewNotFoundError("user", fmt.Sprintf("user %s not found", in.ID))
	}

	log.Info("editing user")
	return &EditUserResponse{
		Form:  Form{Mode: domain.EditMode(u.ID), Fields: u.Fields()},
		Users: users,
	}, nil
}

// DeleteUser removes the user once the confirmation prompt was accepted.
// A declined prompt issues no request.
func (uc *Controller) DeleteUser(ctx context.Context, in DeleteUserRequest) (*DeleteUserResponse, error) {
	log := logger.WithContext(ctx, uc.log).With(zap.String("id", in.ID.String()))

	if !in.Confirmed {
		log.Info("delete declined")
		return &DeleteUserResponse{ID: in.ID, Deleted: false}, nil
	}

	log.Info("deleting user")
	if err := uc.repo.Delete(ctx, in.ID); err != nil {
		log.Error("failed to delete user", zap.Error(err))
		return nil, fmt.Errorf("failed to delete user %s: %w", in.ID, err)
	}
	return &DeleteUserResponse{ID: in.ID, Deleted: true}, nil
}
