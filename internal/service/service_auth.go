package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-health-keeper/internal/config"
	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/MKhiriev/go-health-keeper/internal/store"
	"github.com/MKhiriev/go-health-keeper/internal/utils"
	"github.com/MKhiriev/go-health-keeper/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification with argon2id, and
// the JWT session lifecycle including sign-out revocation.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// sessionRepository remembers signed-out session ids.
	sessionRepository store.SessionRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	argon argonParams
	ids   *utils.UUIDGenerator
	now   func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repositories
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, sessionRepository store.SessionRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:    userRepository,
		sessionRepository: sessionRepository,
		tokenSignKey:      cfg.TokenSignKey,
		tokenIssuer:       cfg.TokenIssuer,
		tokenDuration:     cfg.TokenDuration,
		argon:             defaultArgonParams,
		ids:               utils.NewUUIDGenerator(),
		now:               time.Now,
		logger:            logger,
	}
}

// RegisterUser creates a new account.
//
// The password is hashed with argon2id and a fresh 16-byte key salt is issued;
// the client mixes that salt into its field key derivation. Returns the stored
// user without password material, or:
//   - ErrInvalidDataProvided if Login or Password is empty.
//   - A wrapped storage error if the repository call fails (e.g. login already
//     taken, see store.ErrLoginAlreadyExists).
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Login == "" || user.Password == "" {
		log.Error().Str("login", user.Login).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	hash, err := hashPassword(user.Password, a.argon)
	if err != nil {
		log.Err(err).Str("func", "authService.RegisterUser").Msg("password hashing failed")
		return models.User{}, err
	}

	keySalt, err := newKeySalt()
	if err != nil {
		log.Err(err).Str("func", "authService.RegisterUser").Msg("key salt generation failed")
		return models.User{}, err
	}

	user.UserID = a.ids.Generate()
	user.PasswordHash = hash
	user.KeySalt = keySalt
	user.CreatedAt = a.now().UTC()
	user.Password = ""

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	registeredUser.PasswordHash = ""
	return registeredUser, nil
}

// Login authenticates an existing user.
//
// An unknown login and a wrong password both yield ErrWrongPassword so the
// response does not reveal which logins exist.
func (a *authService) Login(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Login == "" || user.Password == "" {
		log.Error().Str("login", user.Login).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByLogin(ctx, user)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Info().Str("login", user.Login).Msg("login attempt for unknown user")
		return models.User{}, ErrWrongPassword
	}
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user search by login failed")
		return models.User{}, fmt.Errorf("user search by login failed: %w", err)
	}

	ok, err := verifyPassword(user.Password, foundUser.PasswordHash)
	if err != nil {
		log.Err(err).Str("subject_id", foundUser.UserID).Msg("stored password hash is unreadable")
		return models.User{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		log.Info().Str("subject_id", foundUser.UserID).Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	foundUser.PasswordHash = ""
	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user with a new session id
// in the "jti" claim.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.ids.Generate(), a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates a raw JWT string and rejects signed-out sessions.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect low-level
// JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	revoked, err := a.sessionRepository.IsSessionRevoked(ctx, token.SessionID)
	if err != nil {
		return models.Token{}, fmt.Errorf("check session revocation: %w", err)
	}
	if revoked {
		return models.Token{}, ErrSessionRevoked
	}

	return token, nil
}

// SignOut revokes the session carried by token until the token would have
// expired anyway.
func (a *authService) SignOut(ctx context.Context, token models.Token) error {
	if token.SessionID == "" || token.SubjectID == "" {
		return ErrTokenIsExpiredOrInvalid
	}

	expiresAt := a.now().Add(a.tokenDuration)
	if token.ExpiresAt != nil {
		expiresAt = token.ExpiresAt.Time
	}

	if err := a.sessionRepository.RevokeSession(ctx, token.SessionID, token.SubjectID, expiresAt); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "authService.SignOut").
			Str("subject_id", token.SubjectID).
			Msg("revocation failed")
		return fmt.Errorf("revoke session: %w", err)
	}

	return nil
}
