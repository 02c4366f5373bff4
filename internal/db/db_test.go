package db

import (
	"testing"

	"tabungan/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("oracle", "")
	assert.Error(t, err)
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, ":memory:?_pragma=foreign_keys(1)", sqliteDSN(""))
	assert.Equal(t, "file:x.db?cache=shared&_pragma=foreign_keys(1)", sqliteDSN("file:x.db?cache=shared"))
	assert.Equal(t, "x.db?_pragma=foreign_keys(0)", sqliteDSN("x.db?_pragma=foreign_keys(0)"))
}

func TestMigrateAndSeed_Idempotent(t *testing.T) {
	gdb, err := Open("sqlite", ":memory:")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		require.NoError(t, Migrate(gdb))
		require.NoError(t, Seed(gdb, true))
	}

	var users, students, txs int64
	require.NoError(t, gdb.Model(&domain.User{}).Count(&users).Error)
	require.NoError(t, gdb.Model(&domain.Student{}).Count(&students).Error)
	require.NoError(t, gdb.Model(&domain.Transaction{}).Count(&txs).Error)
	assert.EqualValues(t, 2, users)
	assert.EqualValues(t, 1, students)
	assert.EqualValues(t, 1, txs)

	var member domain.User
	require.NoError(t, gdb.Where("username = ?", MemberUsername).First(&member).Error)
	assert.Equal(t, domain.RoleMember, member.Role)
	require.NotNil(t, member.StudentID)
}

func TestSeed_WithoutDemo(t *testing.T) {
	gdb, err := Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))
	require.NoError(t, Seed(gdb, false))

	var students int64
	require.NoError(t, gdb.Model(&domain.Student{}).Count(&students).Error)
	assert.Zero(t, students)
}
