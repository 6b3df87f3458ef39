package impl

import (
	"context"
	"testing"
	"time"

	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/domain/service"
	mockRepo "identity/internal/mocks/repository"
	mockSvc "identity/internal/mocks/service"
	"identity/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service      usecase.AuthUsecase
	txManager    *mockRepo.MockTransactionManager
	factory      *mockRepo.MockRepositoryFactory
	accountRepo  *mockRepo.MockAccountRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
	publisher    *mockSvc.MockEventPublisher
	recorder     *mockSvc.MockAuthRecorder
}

func createTestAuthService(t *testing.T, activate bool) authServiceFixtures {
	fx := authServiceFixtures{
		txManager:    mockRepo.NewMockTransactionManager(t),
		factory:      mockRepo.NewMockRepositoryFactory(t),
		accountRepo:  mockRepo.NewMockAccountRepository(t),
		hasher:       mockSvc.NewMockPasswordHasher(t),
		tokenService: mockSvc.NewMockTokenService(t),
		publisher:    mockSvc.NewMockEventPublisher(t),
		recorder:     mockSvc.NewMockAuthRecorder(t),
	}

	fx.service = NewAuthService(AuthServiceParams{
		TxManager:    fx.txManager,
		Hasher:       fx.hasher,
		TokenService: fx.tokenService,
		Publisher:    fx.publisher,
		Recorder:     fx.recorder,
		Config:       newTestConfig(activate),
		Logger:       newDiscardLogger(),
	})

	return fx
}

// expectTransactions makes each Execute call run fn against the shared repository mocks.
func (fx authServiceFixtures) expectTransactions(times int) {
	fx.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(fx.factory)
		}).
		Times(times)
	fx.factory.EXPECT().AccountRepo().Return(fx.accountRepo).Times(times)
}

func (fx authServiceFixtures) expectOutcome(outcome string) {
	fx.recorder.EXPECT().RecordAuthentication(outcome, mock.AnythingOfType("time.Duration")).Return().Once()
}

func TestAuthService_Authenticate_Created(t *testing.T) {
	fx := createTestAuthService(t, true)
	ctx := context.Background()
	creds := entity.NewCredentials("correct-horse", "new@example.com", "")
	expiresAt := time.Now().Add(time.Hour).UTC()

	fx.expectTransactions(1)
	fx.accountRepo.EXPECT().FindByCredentials(mock.Anything, creds.Email, (*string)(nil)).Return(nil, nil)
	fx.hasher.EXPECT().Hash("correct-horse").Return("digest", nil)
	fx.accountRepo.EXPECT().Create(mock.Anything, mock.AnythingOfType("*entity.Account")).
		RunAndReturn(func(_ context.Context, account *entity.Account) error {
			account.ID = 41
			account.CreatedAt = time.Now()

			return nil
		})
	fx.publisher.EXPECT().
		PublishAccountRegistered(mock.Anything, mock.MatchedBy(func(e *service.AccountRegisteredEvent) bool {
			return e.AccountID == 41 && e.Email == "new@example.com" && e.Active
		})).
		Return(nil)
	fx.tokenService.EXPECT().AccessTTL().Return(time.Hour)
	fx.tokenService.EXPECT().Issue(service.NewAccountPayload(41), time.Hour).Return("token-41", expiresAt, nil)
	fx.expectOutcome(service.OutcomeCreated)

	out, err := fx.service.Authenticate(ctx, &usecase.AuthenticateInput{Credentials: creds})
	require.NoError(t, err)
	assert.True(t, out.Created)
	assert.Equal(t, "token-41", out.Token)
	assert.Equal(t, expiresAt, out.ExpiresAt)
	assert.Equal(t, int64(41), out.Account.ID)
}

func TestAuthService_Authenticate_Found(t *testing.T) {
	fx := createTestAuthService(t, true)
	existing := &entity.Account{ID: 7, Login: strPtr("bob"), PasswordHash: "digest", IsActive: true}
	creds := entity.NewCredentials("correct-horse", "", "bob")

	fx.expectTransactions(1)
	fx.accountRepo.EXPECT().FindByCredentials(mock.Anything, (*string)(nil), creds.Login).Return([]*entity.Account{existing}, nil)
	fx.hasher.EXPECT().Check("correct-horse", "digest").Return(true)
	fx.tokenService.EXPECT().AccessTTL().Return(time.Hour)
	fx.tokenService.EXPECT().Issue(service.NewAccountPayload(7), time.Hour).Return("token-7", time.Now(), nil)
	fx.expectOutcome(service.OutcomeFound)

	out, err := fx.service.Authenticate(context.Background(), &usecase.AuthenticateInput{Credentials: creds})
	require.NoError(t, err)
	assert.False(t, out.Created)
	assert.Equal(t, "token-7", out.Token)
	fx.accountRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	fx.publisher.AssertNotCalled(t, "PublishAccountRegistered", mock.Anything, mock.Anything)
}

func TestAuthService_Authenticate_WrongPassword(t *testing.T) {
	fx := createTestAuthService(t, true)
	existing := &entity.Account{ID: 7, Login: strPtr("bob"), PasswordHash: "digest", IsActive: true}

	fx.expectTransactions(1)
	fx.accountRepo.EXPECT().FindByCredentials(mock.Anything, mock.Anything, mock.Anything).Return([]*entity.Account{existing}, nil)
	fx.hasher.EXPECT().Check("not-the-password", "digest").Return(false)
	fx.expectOutcome(service.OutcomeWrongPassword)

	out, err := fx.service.Authenticate(context.Background(), &usecase.AuthenticateInput{
		Credentials: entity.NewCredentials("not-the-password", "", "bob"),
	})
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_Authenticate_InvalidShape(t *testing.T) {
	fx := createTestAuthService(t, true)
	fx.expectOutcome(service.OutcomeInvalidShape)

	out, err := fx.service.Authenticate(context.Background(), &usecase.AuthenticateInput{
		Credentials: entity.NewCredentials("correct-horse", "", ""),
	})
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentialsShape))
	fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestAuthService_Authenticate_InactiveAccountIsCommittedButRejected(t *testing.T) {
	fx := createTestAuthService(t, false)

	fx.expectTransactions(1)
	fx.accountRepo.EXPECT().FindByCredentials(mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	fx.hasher.EXPECT().Hash(mock.Anything).Return("digest", nil)
	fx.accountRepo.EXPECT().Create(mock.Anything, mock.MatchedBy(func(a *entity.Account) bool { return !a.IsActive })).
		RunAndReturn(func(_ context.Context, account *entity.Account) error {
			account.ID = 5

			return nil
		})
	fx.publisher.EXPECT().PublishAccountRegistered(mock.Anything, mock.Anything).Return(nil)
	fx.expectOutcome(service.OutcomeInactive)

	out, err := fx.service.Authenticate(context.Background(), &usecase.AuthenticateInput{
		Credentials: entity.NewCredentials("correct-horse", "", "dormant"),
	})
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountInactive))
	fx.tokenService.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
}

func TestAuthService_Authenticate_ConflictReResolvedAsFound(t *testing.T) {
	fx := createTestAuthService(t, true)
	winner := &entity.Account{ID: 12, Email: strPtr("race@example.com"), PasswordHash: "digest", IsActive: true}

	fx.expectTransactions(2)
	fx.accountRepo.EXPECT().FindByCredentials(mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Once()
	fx.hasher.EXPECT().Hash("correct-horse").Return("digest", nil)
	fx.accountRepo.EXPECT().Create(mock.Anything, mock.Anything).
		Return(domainerrors.ErrAccountAlreadyExists.WrapMessage("duplicate")).Once()
	fx.accountRepo.EXPECT().FindByCredentials(mock.Anything, mock.Anything, mock.Anything).Return([]*entity.Account{winner}, nil).Once()
	fx.hasher.EXPECT().Check("correct-horse", "digest").Return(true)
	fx.tokenService.EXPECT().AccessTTL().Return(time.Hour)
	fx.tokenService.EXPECT().Issue(service.NewAccountPayload(12), time.Hour).Return("token-12", time.Now(), nil)
	fx.expectOutcome(service.OutcomeFound)

	out, err := fx.service.Authenticate(context.Background(), &usecase.AuthenticateInput{
		Credentials: entity.NewCredentials("correct-horse", "race@example.com", ""),
	})
	require.NoError(t, err)
	assert.False(t, out.Created)
	assert.Equal(t, int64(12), out.Account.ID)
	fx.publisher.AssertNotCalled(t, "PublishAccountRegistered", mock.Anything, mock.Anything)
}

func TestAuthService_Authenticate_ConflictRetriesExhausted(t *testing.T) {
	fx := createTestAuthService(t, true)
	conflict := domainerrors.ErrAccountAlreadyExists.WrapMessage("duplicate")

	// One initial attempt plus ConflictRetries re-resolutions.
	fx.expectTransactions(3)
	fx.accountRepo.EXPECT().FindByCredentials(mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Times(3)
	fx.hasher.EXPECT().Hash(mock.Anything).Return("digest", nil).Times(3)
	fx.accountRepo.EXPECT().Create(mock.Anything, mock.Anything).Return(conflict).Times(3)
	fx.expectOutcome(service.OutcomeError)

	out, err := fx.service.Authenticate(context.Background(), &usecase.AuthenticateInput{
		Credentials: entity.NewCredentials("correct-horse", "race@example.com", ""),
	})
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountAlreadyExists))
}

func TestAuthService_Authenticate_PublishFailureIsNotFatal(t *testing.T) {
	fx := createTestAuthService(t, true)

	fx.expectTransactions(1)
	fx.accountRepo.EXPECT().FindByCredentials(mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	fx.hasher.EXPECT().Hash(mock.Anything).Return("digest", nil)
	fx.accountRepo.EXPECT().Create(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, account *entity.Account) error {
			account.ID = 3

			return nil
		})
	fx.publisher.EXPECT().PublishAccountRegistered(mock.Anything, mock.Anything).Return(errors.New("broker down"))
	fx.tokenService.EXPECT().AccessTTL().Return(time.Hour)
	fx.tokenService.EXPECT().Issue(mock.Anything, time.Hour).Return("token-3", time.Now(), nil)
	fx.expectOutcome(service.OutcomeCreated)

	out, err := fx.service.Authenticate(context.Background(), &usecase.AuthenticateInput{
		Credentials: entity.NewCredentials("correct-horse", "", "carol"),
	})
	require.NoError(t, err)
	assert.True(t, out.Created)
}

func TestAuthService_Authenticate_StoreFailure(t *testing.T) {
	fx := createTestAuthService(t, true)
	storeErr := errors.New("connection reset")

	fx.txManager.EXPECT().
		Execute(mock.Anything, mock.Anything).
		Return(storeErr)
	fx.expectOutcome(service.OutcomeError)

	_, err := fx.service.Authenticate(context.Background(), &usecase.AuthenticateInput{
		Credentials: entity.NewCredentials("correct-horse", "", "dave"),
	})
	assert.ErrorIs(t, err, storeErr)
}
