//go:build integration

package postgres

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"identity/config"
	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("identity"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	sqlDB, err := OpenSQL(connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, Migrate(ctx, sqlDB))

	db, err := gorm.Open(gormpg.New(gormpg.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	return Configure(db, slog.Default(), &config.Config{})
}

func strPtr(s string) *string { return &s }

func TestAccountRepository_Postgres(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	txManager := NewTransactionManager(db)
	repo := NewAccountRepository(db)

	t.Run("create and find", func(t *testing.T) {
		account := &entity.Account{Email: strPtr("a@example.com"), PasswordHash: "h", IsActive: true}
		require.NoError(t, repo.Create(ctx, account))
		assert.NotZero(t, account.ID)
		assert.False(t, account.CreatedAt.IsZero())

		found, err := repo.FindByID(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, "a@example.com", found.EmailValue())
		assert.Nil(t, found.Login)

		matches, err := repo.FindByCredentials(ctx, strPtr("a@example.com"), strPtr("nobody"))
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, account.ID, matches[0].ID)
	})

	t.Run("email with null login is unique", func(t *testing.T) {
		err := repo.Create(ctx, &entity.Account{Email: strPtr("a@example.com"), PasswordHash: "h"})
		assert.True(t, errors.Is(err, domainerrors.ErrAccountAlreadyExists), "got %v", err)
	})

	t.Run("or match returns both rows ordered", func(t *testing.T) {
		byLogin := &entity.Account{Login: strPtr("bob"), PasswordHash: "h", IsActive: true}
		require.NoError(t, repo.Create(ctx, byLogin))

		matches, err := repo.FindByCredentials(ctx, strPtr("a@example.com"), strPtr("bob"))
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Less(t, matches[0].ID, matches[1].ID)
	})

	t.Run("identifier check", func(t *testing.T) {
		err := repo.Create(ctx, &entity.Account{PasswordHash: "h"})
		assert.True(t, errors.Is(err, domainerrors.ErrAccountCreationFailed), "got %v", err)
	})

	t.Run("rollback on error", func(t *testing.T) {
		sentinel := errors.New("abort")
		err := txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
			if err := f.AccountRepo().Create(ctx, &entity.Account{Login: strPtr("ghost"), PasswordHash: "h"}); err != nil {
				return err
			}

			return sentinel
		})
		assert.ErrorIs(t, err, sentinel)

		matches, err := repo.FindByCredentials(ctx, nil, strPtr("ghost"))
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("concurrent creates of one pair", func(t *testing.T) {
		const workers = 8
		var wg sync.WaitGroup
		results := make(chan error, workers)

		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results <- txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
					return f.AccountRepo().Create(ctx, &entity.Account{
						Email: strPtr("race@example.com"), Login: strPtr("race"), PasswordHash: "h",
					})
				})
			}()
		}
		wg.Wait()
		close(results)

		created := 0
		for err := range results {
			if err == nil {
				created++
				continue
			}
			assert.True(t, errors.Is(err, domainerrors.ErrAccountAlreadyExists), "got %v", err)
		}
		assert.Equal(t, 1, created)
	})

	t.Run("delete", func(t *testing.T) {
		account := &entity.Account{Login: strPtr("temp"), PasswordHash: "h"}
		require.NoError(t, repo.Create(ctx, account))
		require.NoError(t, repo.Delete(ctx, account.ID))

		_, err := repo.FindByID(ctx, account.ID)
		assert.ErrorIs(t, err, repository.ErrAccountNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, account.ID), repository.ErrAccountNotFound)
	})
}
