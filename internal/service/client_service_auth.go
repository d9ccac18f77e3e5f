package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-health-keeper/internal/adapter"
	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/MKhiriev/go-health-keeper/internal/validators"
	"github.com/MKhiriev/go-health-keeper/models"
)

type clientAuthService struct {
	adapter   adapter.ServerAdapter
	validator validators.Validator
	logger    *logger.Logger
}

func NewClientAuthService(serverAdapter adapter.ServerAdapter, validator validators.Validator, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{adapter: serverAdapter, validator: validator, logger: logger}
}

func (a *clientAuthService) Register(ctx context.Context, user models.User) (models.Session, error) {
	if err := a.validator.Validate(ctx, user, "Login", "Password"); err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	sess, err := a.adapter.Register(ctx, user)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrRegisterOnServer, mapAdapterError(err))
	}

	a.logger.Info().Str("subject_id", sess.SubjectID).Msg("registered")
	return sess, nil
}

func (a *clientAuthService) Login(ctx context.Context, user models.User) (models.Session, error) {
	if user.Login == "" || user.Password == "" {
		return models.Session{}, ErrInvalidDataProvided
	}

	sess, err := a.adapter.Login(ctx, user)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrLoginOnServer, mapAdapterError(err))
	}

	a.logger.Info().Str("subject_id", sess.SubjectID).Msg("logged in")
	return sess, nil
}

// Valid treats any failure to reach the store as an invalid session.
func (a *clientAuthService) Valid(ctx context.Context) bool {
	state, err := a.adapter.CheckSession(ctx)
	if err != nil {
		a.logger.Err(err).Str("func", "clientAuthService.Valid").Msg("session check failed")
		return false
	}
	return state.Valid
}

func (a *clientAuthService) SignOut(ctx context.Context) error {
	if err := a.adapter.SignOut(ctx); err != nil {
		return fmt.Errorf("sign out: %w", mapAdapterError(err))
	}
	return nil
}
