// Package testutil builds throwaway stores for tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"multiverse_backend/internal/db"
	"multiverse_backend/internal/domain"
	"multiverse_backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewStore opens a private in-memory SQLite store for t.
func NewStore(t *testing.T) (*repository.GormUserRepository, *gorm.DB) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gdb, err := db.OpenSQLite(fmt.Sprintf("file:%s_%s?mode=memory&cache=shared", name, uuid.NewString()[:8]))
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return repository.NewGormUserRepository(gdb), gdb
}

// SeedUser inserts a user with default balances and the given referral code.
func SeedUser(t *testing.T, store repository.UserStore, email, code string) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:           uuid.NewString(),
		Name:         strings.Split(email, "@")[0],
		Email:        email,
		PasswordHash: "x",
		Credits:      domain.DefaultCredits,
		PlanType:     domain.DefaultPlanType,
		ReferralCode: code,
	}
	require.NoError(t, store.Create(t.Context(), u))
	return u
}
