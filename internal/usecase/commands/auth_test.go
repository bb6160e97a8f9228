//go:build unit

package commands_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	reqdto "happyhour-console/internal/handler/dto/request"
	"happyhour-console/internal/pkg/config"
	"happyhour-console/internal/pkg/jwt"
	"happyhour-console/internal/pkg/password"
	"happyhour-console/internal/usecase/commands"
	"happyhour-console/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubUserReadStore struct {
	byEmail map[string]*queries.AuthorizedUserView
	byID    map[uuid.UUID]*queries.AuthorizedUserView
	hash    string
}

func (s *stubUserReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	view, ok := s.byID[id]
	if !ok {
		return nil, queries.ErrUserNotFound
	}
	return view, nil
}

func (s *stubUserReadStore) FindByEmail(_ context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	view, ok := s.byEmail[email]
	if !ok {
		return nil, "", queries.ErrUserNotFound
	}
	return view, s.hash, nil
}

type AuthCommandsSuite struct {
	suite.Suite
	ctx        context.Context
	uow        *stubUoW
	users      *stubUserReadStore
	jwtService *jwt.Service
	challenges *stubChallengeStore
	notifier   *stubNotifier
	cmds       commands.AuthCommands

	userID uuid.UUID
}

func TestAuthCommandsSuite(t *testing.T) {
	suite.Run(t, new(AuthCommandsSuite))
}

const testPassword = "correct horse battery staple"

func (s *AuthCommandsSuite) SetupTest() {
	s.ctx = context.Background()
	s.uow = newStubUoW(&opLog{})
	s.userID = uuid.New()

	hash, err := password.HashPassword(testPassword)
	s.Require().NoError(err)

	view := &queries.AuthorizedUserView{
		ID:       s.userID,
		Email:    "editor@example.com",
		Role:     "editor",
		IsActive: true,
	}
	s.users = &stubUserReadStore{
		byEmail: map[string]*queries.AuthorizedUserView{view.Email: view},
		byID:    map[uuid.UUID]*queries.AuthorizedUserView{view.ID: view},
		hash:    hash,
	}

	s.jwtService = jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)
	s.challenges = newStubChallengeStore()
	s.notifier = &stubNotifier{}

	s.cmds = commands.NewAuthCommands(
		s.uow, s.users, s.jwtService, s.challenges, s.notifier,
		config.MFAConfig{CodeTTL: 5 * time.Minute, ChallengeTTL: 10 * time.Minute},
	)
}

func (s *AuthCommandsSuite) enableMFA() {
	s.users.byEmail["editor@example.com"].MFAEnabled = true
}

func (s *AuthCommandsSuite) login() (*commands.LoginResult, error) {
	return s.cmds.Login(s.ctx, reqdto.LoginRequest{
		Email:    "editor@example.com",
		Password: testPassword,
	})
}

func (s *AuthCommandsSuite) TestLoginIssuesTokensWhenMFADisabled() {
	result, err := s.login()

	s.Require().NoError(err)
	s.Equal(s.userID, result.UserID)
	s.False(result.MFARequired)
	s.Require().NotNil(result.TokenPair)

	claims, err := s.jwtService.ValidateToken(result.TokenPair.AccessToken)
	s.Require().NoError(err)
	s.Equal(jwt.TokenTypeAccess, claims.TokenType)
	s.Equal(s.userID, claims.UserID)
	s.Equal("editor", claims.Role)
}

func (s *AuthCommandsSuite) TestLoginWrongPassword() {
	_, err := s.cmds.Login(s.ctx, reqdto.LoginRequest{
		Email:    "editor@example.com",
		Password: "not the password",
	})

	s.ErrorIs(err, commands.ErrInvalidCredentials)
}

func (s *AuthCommandsSuite) TestLoginUnknownEmailLooksLikeBadPassword() {
	_, err := s.cmds.Login(s.ctx, reqdto.LoginRequest{
		Email:    "nobody@example.com",
		Password: testPassword,
	})

	s.ErrorIs(err, commands.ErrInvalidCredentials)
}

func (s *AuthCommandsSuite) TestLoginInactiveUser() {
	s.users.byEmail["editor@example.com"].IsActive = false

	_, err := s.login()

	s.ErrorIs(err, commands.ErrUserInactive)
}

func (s *AuthCommandsSuite) TestLoginWithMFAParksBehindChallenge() {
	s.enableMFA()

	result, err := s.login()

	s.Require().NoError(err)
	s.True(result.MFARequired)
	s.Nil(result.TokenPair, "no session tokens before the code is verified")
	s.NotEmpty(result.PendingToken)

	s.Require().Len(s.notifier.published, 1)
	msg := s.notifier.published[0]
	s.Equal("editor@example.com", msg.Email)
	s.Regexp(regexp.MustCompile(`^\d{6}$`), msg.Code)

	claims, err := s.jwtService.ValidateToken(result.PendingToken)
	s.Require().NoError(err)
	s.Equal(jwt.TokenTypeMFAPending, claims.TokenType)
	challengeID, err := uuid.Parse(claims.Subject)
	s.Require().NoError(err)
	s.Contains(s.challenges.challenges, challengeID)
}

func (s *AuthCommandsSuite) TestLoginFailsWhenCodeDeliveryFails() {
	s.enableMFA()
	s.notifier.err = context.DeadlineExceeded

	_, err := s.login()

	s.ErrorIs(err, commands.ErrChallengeDelivery)
}

func (s *AuthCommandsSuite) TestVerifyCodeCompletesLogin() {
	s.enableMFA()
	pending, err := s.login()
	s.Require().NoError(err)
	code := s.notifier.published[0].Code

	result, err := s.cmds.VerifyCode(s.ctx, pending.PendingToken, code)

	s.Require().NoError(err)
	s.Equal(s.userID, result.UserID)
	s.Require().NotNil(result.TokenPair)
	s.Empty(s.challenges.challenges, "challenge must be consumed")

	claims, err := s.jwtService.ValidateToken(result.TokenPair.AccessToken)
	s.Require().NoError(err)
	s.Equal(jwt.TokenTypeAccess, claims.TokenType)
}

func (s *AuthCommandsSuite) TestVerifyCodeRejectsWrongCode() {
	s.enableMFA()
	pending, err := s.login()
	s.Require().NoError(err)

	_, err = s.cmds.VerifyCode(s.ctx, pending.PendingToken, "000000")

	if err == nil {
		// one-in-a-million collision with the real code
		s.T().Skip("generated code was 000000")
	}
	s.ErrorIs(err, commands.ErrCodeRejected)
	s.Len(s.challenges.challenges, 1, "failed attempt must not consume the challenge")
}

func (s *AuthCommandsSuite) TestVerifyCodeRejectsNonPendingToken() {
	noMFA, err := s.login()
	s.Require().NoError(err)

	_, err = s.cmds.VerifyCode(s.ctx, noMFA.TokenPair.AccessToken, "123456")

	s.ErrorIs(err, commands.ErrTokenValidation)
}

func (s *AuthCommandsSuite) TestRefreshTokenRotatesPair() {
	result, err := s.login()
	s.Require().NoError(err)

	pair, err := s.cmds.RefreshToken(s.ctx, result.TokenPair.RefreshToken)

	s.Require().NoError(err)
	claims, err := s.jwtService.ValidateToken(pair.AccessToken)
	s.Require().NoError(err)
	s.Equal(jwt.TokenTypeAccess, claims.TokenType)
}

func (s *AuthCommandsSuite) TestRefreshRejectsAccessToken() {
	result, err := s.login()
	s.Require().NoError(err)

	_, err = s.cmds.RefreshToken(s.ctx, result.TokenPair.AccessToken)

	s.ErrorIs(err, commands.ErrTokenValidation)
}
