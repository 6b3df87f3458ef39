// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"identity/config"
	deliverycontext "identity/internal/delivery/context"
	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/lifecycle"
	"identity/internal/domain/repository"
	"identity/internal/domain/service"
	"identity/internal/usecase"

	"github.com/pkg/errors"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
)

const conflictRetryDelay = 20 * time.Millisecond

var tracer = otel.Tracer("identity/usecase")

// authService implements the AuthUsecase interface.
type authService struct {
	txManager       repository.TransactionManager
	resolver        *CredentialResolver
	tokenService    service.TokenService
	publisher       service.EventPublisher
	recorder        service.AuthRecorder
	storeTimeout    time.Duration
	conflictRetries uint64
	logger          *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Publisher    service.EventPublisher
	Recorder     service.AuthRecorder
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	authCfg := params.Config.Auth
	if authCfg == nil {
		authCfg = &config.AuthConfig{}
	}

	storeTimeout := authCfg.StoreTimeout
	if storeTimeout <= 0 {
		storeTimeout = lifecycle.DefaultTimeout
	}

	return &authService{
		txManager:       params.TxManager,
		resolver:        NewCredentialResolver(params.Hasher, authCfg.ActivatesOnRegister()),
		tokenService:    params.TokenService,
		publisher:       params.Publisher,
		recorder:        params.Recorder,
		storeTimeout:    storeTimeout,
		conflictRetries: authCfg.ConflictRetries,
		logger:          params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Authenticate resolves or creates the account, commits it and issues an access token.
func (srv *authService) Authenticate(ctx context.Context, input *usecase.AuthenticateInput) (output *usecase.AuthenticateOutput, err error) {
	start := time.Now()
	outcome := service.OutcomeError

	ctx, span := tracer.Start(ctx, "auth.authenticate")
	defer func() {
		span.SetAttributes(attribute.String("auth.outcome", outcome))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, outcome)
		}
		span.End()
		srv.recorder.RecordAuthentication(outcome, time.Since(start))
	}()

	creds := input.Credentials
	if err := creds.Validate(); err != nil {
		outcome = service.OutcomeInvalidShape

		return nil, err
	}

	account, created, err := srv.resolveAndStore(ctx, creds)
	if err != nil {
		outcome = outcomeFor(err)

		return nil, err
	}
	span.SetAttributes(
		attribute.Int64("account.id", account.ID),
		attribute.Bool("account.created", created),
	)

	if created {
		srv.log(ctx).Info("Account registered",
			slog.Int64("accountID", account.ID),
			slog.Bool("active", account.IsActive),
		)
		srv.publishRegistered(ctx, account)
	}

	if !account.IsActive {
		outcome = service.OutcomeInactive

		return nil, domainerrors.ErrAccountInactive
	}

	token, expiresAt, err := srv.tokenService.Issue(service.NewAccountPayload(account.ID), srv.tokenService.AccessTTL())
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	outcome = service.OutcomeFound
	if created {
		outcome = service.OutcomeCreated
	}

	return &usecase.AuthenticateOutput{
		Token:     token,
		ExpiresAt: expiresAt,
		Created:   created,
		Account:   account,
	}, nil
}

// resolveAndStore runs one resolution transaction. A unique violation means a
// concurrent request registered the same identity first; resolution is then
// repeated in fresh transactions until it observes that account.
func (srv *authService) resolveAndStore(ctx context.Context, creds entity.Credentials) (*entity.Account, bool, error) {
	account, created, err := srv.resolveOnce(ctx, creds)
	if !errors.Is(err, domainerrors.ErrAccountAlreadyExists) || srv.conflictRetries == 0 {
		return account, created, err
	}

	srv.log(ctx).Warn("Concurrent registration detected, re-resolving", slog.Any("error", err))

	backoff := retry.WithMaxRetries(srv.conflictRetries-1, retry.NewConstant(conflictRetryDelay))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		var rerr error
		account, created, rerr = srv.resolveOnce(ctx, creds)
		if errors.Is(rerr, domainerrors.ErrAccountAlreadyExists) {
			return retry.RetryableError(rerr)
		}

		return rerr
	})
	if err != nil {
		return nil, false, err
	}

	return account, created, nil
}

func (srv *authService) resolveOnce(ctx context.Context, creds entity.Credentials) (*entity.Account, bool, error) {
	storeCtx, cancel := context.WithTimeout(ctx, srv.storeTimeout)
	defer cancel()

	var (
		account *entity.Account
		created bool
	)

	err := srv.txManager.Execute(storeCtx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		resolved, isNew, err := srv.resolver.Resolve(storeCtx, accountRepo, creds)
		if err != nil {
			return err
		}

		if isNew {
			if err := accountRepo.Create(storeCtx, resolved); err != nil {
				return err
			}
		}

		account, created = resolved, isNew

		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return account, created, nil
}

// publishRegistered emits the registration event. Failures are logged only;
// the account is already committed.
func (srv *authService) publishRegistered(ctx context.Context, account *entity.Account) {
	event := &service.AccountRegisteredEvent{
		AccountID:    account.ID,
		Email:        account.EmailValue(),
		Login:        account.LoginValue(),
		Active:       account.IsActive,
		RegisteredAt: account.CreatedAt,
		RequestID:    deliverycontext.GetRequestIDFromContext(ctx),
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lifecycle.DefaultTimeout)
	defer cancel()

	if err := srv.publisher.PublishAccountRegistered(pubCtx, event); err != nil {
		srv.log(ctx).Error("Failed to publish account registered event",
			slog.Int64("accountID", account.ID),
			slog.Any("error", err),
		)
		trace.SpanFromContext(ctx).AddEvent("publish_failed")
	}
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, domainerrors.ErrInvalidCredentials):
		return service.OutcomeWrongPassword
	case errors.Is(err, domainerrors.ErrInvalidCredentialsShape):
		return service.OutcomeInvalidShape
	default:
		return service.OutcomeError
	}
}
