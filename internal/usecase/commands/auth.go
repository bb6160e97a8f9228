package commands

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/google/uuid"

	"happyhour-console/internal/domain/user"
	reqdto "happyhour-console/internal/handler/dto/request"
	"happyhour-console/internal/pkg/config"
	"happyhour-console/internal/pkg/errs"
	"happyhour-console/internal/pkg/jwt"
	"happyhour-console/internal/pkg/password"
	"happyhour-console/internal/usecase/queries"
	"happyhour-console/internal/usecase/shared"
)

var (
	ErrUserNotFound         = errs.New("user not found")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
	ErrTokenValidation      = errs.New("token validation failed")
	ErrChallengeDelivery    = errs.New("verification code delivery failed")
	ErrCodeRejected         = errs.New("verification code rejected")
)

type LoginResult struct {
	UserID       uuid.UUID
	TokenPair    *TokenPair
	MFARequired  bool
	PendingToken string
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthCommands interface {
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
	VerifyCode(ctx context.Context, pendingToken, code string) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	readStore  queries.UserReadStore
	jwtService *jwt.Service
	challenges ChallengeStore
	notifier   CodeNotifier
	cfg        config.MFAConfig
}

func NewAuthCommands(
	uow shared.UnitOfWork,
	readStore queries.UserReadStore,
	jwtService *jwt.Service,
	challenges ChallengeStore,
	notifier CodeNotifier,
	cfg config.MFAConfig,
) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		readStore:  readStore,
		jwtService: jwtService,
		challenges: challenges,
		notifier:   notifier,
		cfg:        cfg,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	credentials, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	userReadModel, err := a.validateUser(ctx, credentials)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(userReadModel.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	if userReadModel.MFAEnabled {
		return a.beginChallenge(ctx, userReadModel, role)
	}

	tokenPair, err := a.issueTokens(userReadModel.ID, role)
	if err != nil {
		return nil, err
	}

	a.recordLogin(ctx, userReadModel.ID)

	return &LoginResult{
		UserID:    userReadModel.ID,
		TokenPair: tokenPair,
	}, nil
}

// beginChallenge parks the login behind a one-time code. The code travels
// through the delivery queue; the pending token is all the client gets.
func (a *authCommandsImpl) beginChallenge(ctx context.Context, view *queries.AuthorizedUserView, role user.Role) (*LoginResult, error) {
	challengeID := uuid.New()
	code, err := generateCode()
	if err != nil {
		return nil, errs.Mark(err, ErrChallengeDelivery)
	}

	if err := a.challenges.SaveChallenge(ctx, challengeID, view.ID, code); err != nil {
		return nil, errs.Mark(err, ErrChallengeDelivery)
	}

	if err := a.notifier.PublishCode(ctx, VerificationMessage{Email: view.Email, Code: code}); err != nil {
		return nil, errs.Mark(err, ErrChallengeDelivery)
	}

	pendingToken, err := a.jwtService.GenerateMFAPendingToken(view.ID, role, challengeID, a.cfg.ChallengeTTL)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		UserID:       view.ID,
		MFARequired:  true,
		PendingToken: pendingToken,
	}, nil
}

func (a *authCommandsImpl) VerifyCode(ctx context.Context, pendingToken, code string) (*LoginResult, error) {
	claims, err := a.jwtService.ValidateToken(pendingToken)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}

	if claims.TokenType != jwt.TokenTypeMFAPending {
		return nil, ErrTokenValidation
	}

	challengeID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}

	userID, err := a.challenges.ConsumeChallenge(ctx, challengeID, code)
	if err != nil {
		return nil, errs.Mark(err, ErrCodeRejected)
	}
	if userID != claims.UserID {
		return nil, ErrCodeRejected
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}

	tokenPair, err := a.issueTokens(userID, role)
	if err != nil {
		return nil, err
	}

	a.recordLogin(ctx, userID)

	return &LoginResult{
		UserID:    userID,
		TokenPair: tokenPair,
	}, nil
}

func (a *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}

	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrTokenValidation
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}

	// Validate user still exists and is active
	userReadModel, err := a.readStore.FindByID(ctx, claims.UserID)
	if err != nil || userReadModel == nil {
		return nil, ErrUserNotFound
	}

	if !userReadModel.IsActive {
		return nil, ErrUserInactive
	}

	return a.issueTokens(claims.UserID, role)
}

func (a *authCommandsImpl) issueTokens(userID uuid.UUID, role user.Role) (*TokenPair, error) {
	accessToken, err := a.jwtService.GenerateAccessToken(userID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	refreshToken, err := a.jwtService.GenerateRefreshToken(userID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (a *authCommandsImpl) recordLogin(ctx context.Context, userID uuid.UUID) {
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if updateErr := tx.Users().UpdateLastLogin(ctx, tx.DB(), userID); updateErr != nil {
			slog.Warn("failed to update last login", "user_id", userID, "error", updateErr.Error())
			// Continue without failing - this is not critical
		}
		return nil
	})
	if err != nil {
		slog.Warn("transaction failed during login", "user_id", userID, "error", err.Error())
	}
}

func (a *authCommandsImpl) validateUser(ctx context.Context, credentials user.Credentials) (*queries.AuthorizedUserView, error) {
	userReadModel, hashedPassword, err := a.readStore.FindByEmail(ctx, credentials.Email().Value())
	if err != nil {
		// Return same error as password mismatch to prevent user enumeration attacks
		return nil, ErrInvalidCredentials
	}

	if userReadModel == nil {
		return nil, ErrUserNotFound
	}

	if !userReadModel.IsActive {
		return nil, ErrUserInactive
	}

	if err := password.ComparePassword(hashedPassword, credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	return userReadModel, nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
