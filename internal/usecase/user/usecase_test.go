package user

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "user-directory-web/internal/domain/user"
	apperrors "user-directory-web/pkg/errors"
)

var _ Usecase = (*Controller)(nil)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, f domain.Fields) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockRepository) Replace(ctx context.Context, id domain.ID, f domain.Fields) error {
	args := m.Called(ctx, id, f)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id domain.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupTestUsecase(t *testing.T) (*Controller, *MockRepository) {
	mockRepo := new(MockRepository)
	uc := New(mockRepo, zaptest.NewLogger(t))
	return uc, mockRepo
}

var (
	ann = domain.User{ID: "1", Name: "Ann", LastName: "Lee", Age: "30", Address: "X"}
	bo  = domain.User{ID: "2", Name: "Bo", LastName: "Kim", Age: "41", Address: "Y"}
)

// ==================== LIST USERS TESTS ====================

func TestListUsers_Success(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("List", ctx).Return([]domain.User{ann, bo}, nil).Once()

	resp, err := uc.ListUsers(ctx)

	require.NoError(t, err)
	assert.Equal(t, []domain.User{ann, bo}, resp.Users)
	mockRepo.AssertExpectations(t)
}

func TestListUsers_BackendError(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	backendErr := apperrors.NewBackendError(http.MethodGet, "/users", 500, "")
	mockRepo.On("List", ctx).Return(nil, backendErr)

	resp, err := uc.ListUsers(ctx)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, backendErr)
	assert.Equal(t, http.StatusBadGateway, apperrors.HTTPStatus(err))
}

// ==================== SUBMIT USER TESTS ====================

func TestSubmitUser_CreateMode_IssuesCreate(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	fields := ann.Fields()
	mockRepo.On("Create", ctx, fields).Return(nil).Once()

	resp, err := uc.SubmitUser(ctx, SubmitUserRequest{Mode: domain.CreateMode(), Fields: fields})

	require.NoError(t, err)
	assert.Equal(t, ActionCreated, resp.Action)
	assert.Equal(t, NewCreateForm(), resp.Next)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitUser_EmptyHiddenID_IssuesCreate(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

	_, err := uc.SubmitUser(ctx, SubmitUserRequest{Mode: domain.ModeFromField(""), Fields: ann.Fields()})

	require.NoError(t, err)
	mockRepo.AssertNumberOfCalls(t, "Create", 1)
	mockRepo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitUser_EditMode_IssuesReplaceAndReturnsToCreate(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	fields := domain.Fields{Name: "Anna", LastName: "Lee", Age: "31", Address: "Z"}
	mockRepo.On("Replace", ctx, domain.ID("1"), fields).Return(nil).Once()

	resp, err := uc.SubmitUser(ctx, SubmitUserRequest{Mode: domain.EditMode("1"), Fields: fields})

	require.NoError(t, err)
	assert.Equal(t, ActionUpdated, resp.Action)
	assert.Equal(t, domain.ID("1"), resp.ID)
	assert.False(t, resp.Next.Mode.IsEdit())
	assert.Equal(t, domain.Fields{}, resp.Next.Fields)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitUser_CreateError(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.Anything).Return(errors.New("connection reset"))

	resp, err := uc.SubmitUser(ctx, SubmitUserRequest{Fields: ann.Fields()})

	assert.Nil(t, resp)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create user")
}

func TestSubmitUser_ReplaceError(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	backendErr := apperrors.NewBackendError(http.MethodPut, "/users/1", 404, "")
	mockRepo.On("Replace", ctx, domain.ID("1"), mock.Anything).Return(backendErr)

	resp, err := uc.SubmitUser(ctx, SubmitUserRequest{Mode: domain.EditMode("1"), Fields: ann.Fields()})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, backendErr)
	assert.Equal(t, http.StatusNotFound, apperrors.HTTPStatus(err))
}

// ==================== EDIT USER TESTS ====================

func TestEditUser_Found(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("List", ctx).Return([]domain.User{ann, bo}, nil).Once()

	resp, err := uc.EditUser(ctx, EditUserRequest{ID: "2"})

	require.NoError(t, err)
	assert.Equal(t, domain.EditMode("2"), resp.Form.Mode)
	assert.Equal(t, bo.Fields(), resp.Form.Fields)
	assert.Equal(t, []domain.User{ann, bo}, resp.Users)
	mockRepo.AssertExpectations(t)
}

func TestEditUser_NotFound(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("List", ctx).Return([]domain.User{ann}, nil).Once()

	resp, err := uc.EditUser(ctx, EditUserRequest{ID: "9"})

	var notFound *apperrors.NotFoundError
	require.True(t, errors.As(err, &notFound))
	require.NotNil(t, resp)
	assert.False(t, resp.Form.Mode.IsEdit())
	assert.Equal(t, []domain.User{ann}, resp.Users)
}

func TestEditUser_ListError(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("List", ctx).Return(nil, apperrors.NewTransportError("list users", context.DeadlineExceeded))

	resp, err := uc.EditUser(ctx, EditUserRequest{ID: "1"})

	assert.Nil(t, resp)
	assert.Equal(t, http.StatusServiceUnavailable, apperrors.HTTPStatus(err))
}

// ==================== DELETE USER TESTS ====================

func TestDeleteUser_Declined_IssuesNoRequest(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	resp, err := uc.DeleteUser(ctx, DeleteUserRequest{ID: "1", Confirmed: false})

	require.NoError(t, err)
	assert.False(t, resp.Deleted)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "List", mock.Anything)
}

func TestDeleteUser_Confirmed(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("Delete", ctx, domain.ID("1")).Return(nil).Once()

	resp, err := uc.DeleteUser(ctx, DeleteUserRequest{ID: "1", Confirmed: true})

	require.NoError(t, err)
	assert.True(t, resp.Deleted)
	assert.Equal(t, domain.ID("1"), resp.ID)
	mockRepo.AssertExpectations(t)
}

func TestDeleteUser_BackendError(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("Delete", ctx, domain.ID("1")).Return(apperrors.NewBackendError(http.MethodDelete, "/users/1", 500, ""))

	resp, err := uc.DeleteUser(ctx, DeleteUserRequest{ID: "1", Confirmed: true})

	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "failed to delete user 1")
}
