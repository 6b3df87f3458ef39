// Package memory provides an in-process account store for development and
// tests. It honours the same uniqueness rules as the PostgreSQL schema.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
)

// Store keeps accounts in memory. Transactions are serialized by a single
// lock and work on a private copy that replaces the committed state on success.
type Store struct {
	mu       sync.Mutex
	accounts map[int64]*entity.Account
	nextID   int64
	now      func() time.Time
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[int64]*entity.Account),
		nextID:   1,
		now:      time.Now,
	}
}

// NewTransactionManager returns the store as a repository.TransactionManager.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return store
}

// Execute runs fn against a snapshot of the store and commits it if fn succeeds.
func (s *Store) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &txState{
		accounts: make(map[int64]*entity.Account, len(s.accounts)),
		nextID:   s.nextID,
		now:      s.now,
	}
	for id, account := range s.accounts {
		tx.accounts[id] = account
	}

	if err := fn(tx); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	s.accounts = tx.accounts
	s.nextID = tx.nextID

	return nil
}

// AccountRepo returns a repository reading the committed state. Writes
// through it are applied immediately.
func (s *Store) AccountRepo() repository.AccountRepository {
	return &autoCommitRepo{store: s}
}

// Len returns the number of committed accounts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.accounts)
}

type txState struct {
	accounts map[int64]*entity.Account
	nextID   int64
	now      func() time.Time
}

func (tx *txState) AccountRepo() repository.AccountRepository {
	return tx
}

func (tx *txState) FindByCredentials(_ context.Context, email, login *string) ([]*entity.Account, error) {
	matches := make([]*entity.Account, 0)
	if email == nil && login == nil {
		return matches, nil
	}

	for _, account := range tx.accounts {
		if (email != nil && equalPtr(account.Email, email)) || (login != nil && equalPtr(account.Login, login)) {
			matches = append(matches, clone(account))
		}
	}

	slices.SortFunc(matches, func(a, b *entity.Account) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return matches, nil
}

func (tx *txState) FindByID(_ context.Context, id int64) (*entity.Account, error) {
	account, ok := tx.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return clone(account), nil
}

func (tx *txState) Create(_ context.Context, account *entity.Account) error {
	if account.Email == nil && account.Login == nil {
		return domainerrors.ErrAccountCreationFailed.WrapMessage("email or login is required")
	}

	for _, existing := range tx.accounts {
		// NULLs compare equal here, as with NULLS NOT DISTINCT.
		if equalPtr(existing.Email, account.Email) && equalPtr(existing.Login, account.Login) {
			return domainerrors.ErrAccountAlreadyExists.WrapMessage("email and login pair already registered")
		}
	}

	account.ID = tx.nextID
	account.CreatedAt = tx.now().UTC()
	tx.nextID++
	tx.accounts[account.ID] = clone(account)

	return nil
}

func (tx *txState) Delete(_ context.Context, id int64) error {
	if _, ok := tx.accounts[id]; !ok {
		return repository.ErrAccountNotFound
	}
	delete(tx.accounts, id)

	return nil
}

type autoCommitRepo struct {
	store *Store
}

func (r *autoCommitRepo) run(ctx context.Context, fn func(repository.AccountRepository) error) error {
	return r.store.Execute(ctx, func(f repository.RepositoryFactory) error {
		return fn(f.AccountRepo())
	})
}

func (r *autoCommitRepo) FindByCredentials(ctx context.Context, email, login *string) (accounts []*entity.Account, err error) {
	err = r.run(ctx, func(repo repository.AccountRepository) error {
		accounts, err = repo.FindByCredentials(ctx, email, login)

		return err
	})

	return accounts, err
}

func (r *autoCommitRepo) FindByID(ctx context.Context, id int64) (account *entity.Account, err error) {
	err = r.run(ctx, func(repo repository.AccountRepository) error {
		account, err = repo.FindByID(ctx, id)

		return err
	})

	return account, err
}

func (r *autoCommitRepo) Create(ctx context.Context, account *entity.Account) error {
	return r.run(ctx, func(repo repository.AccountRepository) error {
		return repo.Create(ctx, account)
	})
}

func (r *autoCommitRepo) Delete(ctx context.Context, id int64) error {
	return r.run(ctx, func(repo repository.AccountRepository) error {
		return repo.Delete(ctx, id)
	})
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return *a == *b
}

func clone(account *entity.Account) *entity.Account {
	cp := *account
	if account.Email != nil {
		email := *account.Email
		cp.Email = &email
	}
	if account.Login != nil {
		login := *account.Login
		cp.Login = &login
	}

	return &cp
}
