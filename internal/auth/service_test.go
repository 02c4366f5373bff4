package auth_test

import (
	"context"
	"testing"

	"tabungan/internal/auth"
	"tabungan/internal/db"
	"tabungan/internal/domain"
	"tabungan/internal/store"
	"tabungan/internal/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestService_Login(t *testing.T) {
	st := store.New(testdb.Seeded(t))
	svc := auth.NewService(st)
	ctx := context.Background()

	t.Run("Admin", func(t *testing.T) {
		p, err := svc.Login(ctx, db.AdminUsername, db.AdminPassword)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, p.Role)
		assert.Equal(t, db.AdminUsername, p.Username)
		assert.Nil(t, p.StudentID)
	})

	t.Run("Member", func(t *testing.T) {
		p, err := svc.Login(ctx, db.MemberUsername, db.MemberPassword)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleMember, p.Role)
		require.NotNil(t, p.StudentID)

		student, err := st.GetLinkedStudent(ctx, p.UserID)
		require.NoError(t, err)
		assert.Equal(t, *p.StudentID, student.ID)
	})

	t.Run("UsernameIsCaseInsensitive", func(t *testing.T) {
		_, err := svc.Login(ctx, "  ADMIN ", db.AdminPassword)
		assert.NoError(t, err)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := svc.Login(ctx, db.AdminUsername, "nope")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		_, err := svc.Login(ctx, "ghost", "whatever")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestService_CreateAccount(t *testing.T) {
	st := store.New(testdb.Open(t))
	svc := auth.NewService(st).WithCost(bcrypt.MinCost)
	ctx := context.Background()

	student := &domain.Student{Name: "Siti Aminah"}
	require.NoError(t, st.CreateStudent(ctx, student))

	user, err := svc.CreateAccount(ctx, "Siti", "secret1", domain.RoleMember, &student.ID)
	require.NoError(t, err)
	assert.Equal(t, "siti", user.Username)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	p, err := svc.Login(ctx, "siti", "secret1")
	require.NoError(t, err)
	require.NotNil(t, p.StudentID)
	assert.Equal(t, student.ID, *p.StudentID)

	_, err = svc.CreateAccount(ctx, "short", "123", domain.RoleMember, &student.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CreateAccount(ctx, "siti", "secret2", domain.RoleMember, &student.ID)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
