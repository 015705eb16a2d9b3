package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/xperttutor/user-service/internal/models"
	"github.com/xperttutor/user-service/internal/repository"
)

func newTestUserService(repo repository.UserRepository) *UserService {
	return NewUserService(repo, bcrypt.MinCost, zap.NewNop())
}

func validRegisterInput(username, email string) RegisterInput {
	return RegisterInput{
		Name:     "Test User",
		Email:    email,
		Username: username,
		Password: "hunter22",
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	u, err := svc.Register(context.Background(), validRegisterInput("alice", "alice@example.com"))
	require.NoError(t, err)
	require.False(t, u.ID.IsZero())
	require.NotEqual(t, "hunter22", u.PasswordHash)
	require.Len(t, u.ReferID, 6)
	require.NotContains(t, u.ReferID, "0")
	require.Regexp(t, `^XAF [1-9]{5}$`, u.AffiliateID)
	require.Equal(t, models.NotUpdated, u.Category)
	require.Equal(t, models.NotUpdated, u.Address)
	require.Nil(t, u.Phone)
	require.Empty(t, u.Children)
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	svc := newTestUserService(newFakeUserRepo())

	cases := []struct {
		name  string
		in    RegisterInput
		field string
	}{
		{"missing name", RegisterInput{Email: "a@b.com", Username: "a", Password: "secret1"}, "Name"},
		{"bad email", RegisterInput{Name: "A", Email: "not-an-email", Username: "a", Password: "secret1"}, "Email"},
		{"missing username", RegisterInput{Name: "A", Email: "a@b.com", Password: "secret1"}, "Username"},
		{"short password", RegisterInput{Name: "A", Email: "a@b.com", Username: "a", Password: "short"}, "Password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.in)
			var ve ValidationErrors
			require.ErrorAs(t, err, &ve)
			require.Equal(t, tc.field, ve[0].Field)
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	first, err := svc.Register(context.Background(), validRegisterInput("alice", "alice@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validRegisterInput("alice", "other@example.com"))
	require.ErrorIs(t, err, ErrUsernameTaken)

	// First record unaffected.
	got, err := repo.FindByID(context.Background(), first.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", got.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := newTestUserService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), validRegisterInput("alice", "alice@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validRegisterInput("bob", "alice@example.com"))
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	svc := newTestUserService(newFakeUserRepo())
	_, err := svc.Register(context.Background(), validRegisterInput("alice", "alice@example.com"))
	require.NoError(t, err)

	u, err := svc.Login(context.Background(), "alice", "hunter22")
	require.NoError(t, err)
	require.Equal(t, "alice", u.Username)

	_, err = svc.Login(context.Background(), "alice", "wrong-pass")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody", "hunter22")
	require.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUpdateMergesFields(t *testing.T) {
	t.Parallel()

	svc := newTestUserService(newFakeUserRepo())
	u, err := svc.Register(context.Background(), validRegisterInput("alice", "alice@example.com"))
	require.NoError(t, err)

	addr := "42 Some Street"
	phone := int64(9876543210)
	got, err := svc.Update(context.Background(), u.ID.Hex(), UpdateInput{
		Address: &addr,
		Phone:   &phone,
	})
	require.NoError(t, err)
	require.Equal(t, addr, got.Address)
	require.NotNil(t, got.Phone)
	require.Equal(t, phone, *got.Phone)
	// Untouched fields keep their values.
	require.Equal(t, "Test User", got.Name)
	require.Equal(t, models.NotUpdated, got.Category)
}

func TestUpdateRehashesPassword(t *testing.T) {
	t.Parallel()

	svc := newTestUserService(newFakeUserRepo())
	u, err := svc.Register(context.Background(), validRegisterInput("alice", "alice@example.com"))
	require.NoError(t, err)

	newPass := "brand-new-pass"
	got, err := svc.Update(context.Background(), u.ID.Hex(), UpdateInput{Password: &newPass})
	require.NoError(t, err)
	require.NotEqual(t, newPass, got.PasswordHash)

	_, err = svc.Login(context.Background(), "alice", newPass)
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), "alice", "hunter22")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateUnknownUser(t *testing.T) {
	t.Parallel()

	svc := newTestUserService(newFakeUserRepo())
	name := "x"
	_, err := svc.Update(context.Background(), "64a000000000000000000099", UpdateInput{Name: &name})
	require.True(t, errors.Is(err, repository.ErrUserNotFound))
}
