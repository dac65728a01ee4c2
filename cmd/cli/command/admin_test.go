package command

import (
	"bytes"
	"context"
	"testing"

	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/microservices/http-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context, search string, limit, offset int) ([]models.User, int64, error) {
	args := m.Called(ctx, search, limit, offset)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

// fixedCodes only answers ConfirmationCode.
type fixedCodes struct {
	service.AuthService
	code string
}

func (f fixedCodes) ConfirmationCode(*models.User) string { return f.code }

func TestCreateAdmin(t *testing.T) {
	ctx := context.Background()
	repo := new(mockUserRepository)
	repo.On("FindByUsername", ctx, "root").Return(nil, repository.ErrNotFound)
	repo.On("FindByEmail", ctx, "root@yamdb.test").Return(nil, repository.ErrNotFound)
	repo.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.Username == "root" && u.Role == models.RoleAdmin
	})).Return(nil)
	repo.On("Update", ctx, mock.MatchedBy(func(u *models.User) bool { return u.IsSuperuser })).Return(nil)

	user, code, err := createAdmin(ctx, repo, fixedCodes{code: "abc-123"}, "root", "root@yamdb.test")

	require.NoError(t, err)
	assert.True(t, user.IsSuperuser)
	assert.True(t, user.IsAdmin())
	assert.Equal(t, "abc-123", code)
	repo.AssertExpectations(t)
}

func TestCreateAdmin_UsernameTaken(t *testing.T) {
	ctx := context.Background()
	repo := new(mockUserRepository)
	repo.On("FindByUsername", ctx, "root").Return(&models.User{ID: "other", Username: "root"}, nil)
	repo.On("FindByEmail", ctx, "root@yamdb.test").Return(nil, repository.ErrNotFound)

	_, _, err := createAdmin(ctx, repo, fixedCodes{}, "root", "root@yamdb.test")

	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSetRole(t *testing.T) {
	ctx := context.Background()
	existing := &models.User{ID: "u1", Username: "alice", Email: "alice@yamdb.test", Role: models.RoleUser}
	repo := new(mockUserRepository)
	repo.On("FindByUsername", ctx, "alice").Return(existing, nil)
	repo.On("FindByEmail", ctx, "alice@yamdb.test").Return(existing, nil)
	repo.On("Update", ctx, existing).Return(nil)

	user, err := setRole(ctx, repo, "alice", models.RoleModerator)

	require.NoError(t, err)
	assert.Equal(t, models.RoleModerator, user.Role)
}

func TestSetRole_UnknownUser(t *testing.T) {
	ctx := context.Background()
	repo := new(mockUserRepository)
	repo.On("FindByUsername", ctx, "ghost").Return(nil, repository.ErrNotFound)

	_, err := setRole(ctx, repo, "ghost", models.RoleAdmin)

	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestArgumentsCheckedBeforeConnecting(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown role", []string{"set-role", "alice", "owner"}, `invalid role "owner"`},
		{"missing email", []string{"create-admin", "root"}, "accepts 2 arg(s)"},
		{"extra migrate arg", []string{"migrate", "now"}, "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetErr(&out)
			rootCmd.SetArgs(tt.args)

			err := rootCmd.Execute()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Nil(t, db)
		})
	}
}
