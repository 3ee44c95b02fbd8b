package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/config"
	"reviewhub/internal/mailer"
	"reviewhub/internal/testutil"
)

// captureMailer records the last issued confirmation code so tests can
// complete the signup/token round trip.
type captureMailer struct {
	email    string
	username string
	code     string
}

func (m *captureMailer) SendConfirmationCode(email, username, code string) error {
	m.email, m.username, m.code = email, username, code
	return nil
}

func setupAuthService(t *testing.T) (AuthService, *captureMailer, *testutil.TestDatabase) {
	td := testutil.SetupTestDatabase(t)
	tr := testutil.SetupTestRedis(t)

	client, err := repository.NewRedisClient(tr.URL, "")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	mail := &captureMailer{}
	cfg := &config.Config{
		JWTSecret:           "test-secret",
		AccessTokenTTL:      15 * time.Minute,
		ConfirmationCodeTTL: time.Hour,
	}
	svc := NewAuthService(
		repository.NewUserRepository(td.DB),
		repository.NewCodeRepository(client),
		mail,
		cfg,
	)
	return svc, mail, td
}

func TestSignup_CreatesUserAndIssuesCode(t *testing.T) {
	svc, mail, td := setupAuthService(t)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, "newcomer", "newcomer@example.com")
	require.NoError(t, err)
	assert.Equal(t, "newcomer", resp.Username)
	assert.Equal(t, "newcomer@example.com", resp.Email)
	assert.NotEmpty(t, mail.code)

	var user models.User
	require.NoError(t, td.DB.First(&user, "username = ?", "newcomer").Error)
	assert.Equal(t, models.RoleUser, user.Role)
}

func TestSignup_ReissuesForSamePair(t *testing.T) {
	svc, mail, td := setupAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "repeat", "repeat@example.com")
	require.NoError(t, err)
	first := mail.code

	_, err = svc.Signup(ctx, "repeat", "repeat@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, first, mail.code, "a fresh code is issued each time")

	var count int64
	require.NoError(t, td.DB.Model(&models.User{}).Where("username = ?", "repeat").Count(&count).Error)
	assert.EqualValues(t, 1, count, "re-signup must not create a second user")
}

func TestSignup_Conflicts(t *testing.T) {
	svc, _, _ := setupAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "taken", "taken@example.com")
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "taken", "other@example.com")
	assert.ErrorIs(t, err, ErrUsernameInUse)

	_, err = svc.Signup(ctx, "someoneelse", "taken@example.com")
	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestSignup_UsernameRules(t *testing.T) {
	svc, _, _ := setupAuthService(t)
	ctx := context.Background()

	for _, reserved := range []string{"me", "ME", "Me"} {
		_, err := svc.Signup(ctx, reserved, "me@example.com")
		assert.ErrorIs(t, err, ErrReservedUsername, "%q must be rejected", reserved)
	}

	_, err := svc.Signup(ctx, "has spaces", "spaces@example.com")
	assert.ErrorIs(t, err, ErrInvalidUsername)

	_, err = svc.Signup(ctx, "ok.user+tag@host-1", "fancy@example.com")
	assert.NoError(t, err, "letters, digits and @/./+/-/_ are allowed")
}

func TestIssueToken_RoundTrip(t *testing.T) {
	svc, mail, _ := setupAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "tokenuser", "tokenuser@example.com")
	require.NoError(t, err)

	token, err := svc.IssueToken(ctx, "tokenuser", mail.code)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "tokenuser", claims.Username)
	assert.Equal(t, models.RoleUser, claims.Role)
	assert.NotEmpty(t, claims.UserID)
}

func TestIssueToken_Failures(t *testing.T) {
	svc, mail, _ := setupAuthService(t)
	ctx := context.Background()

	_, err := svc.IssueToken(ctx, "nobody", "whatever")
	assert.ErrorIs(t, err, ErrUserNotFound, "unknown username is not-found, not bad-request")

	_, err = svc.Signup(ctx, "codeuser", "codeuser@example.com")
	require.NoError(t, err)

	_, err = svc.IssueToken(ctx, "codeuser", "wrong-code")
	assert.ErrorIs(t, err, ErrInvalidCode)

	// The right code still works after a failed attempt.
	_, err = svc.IssueToken(ctx, "codeuser", mail.code)
	assert.NoError(t, err)
}

// outageCodeRepo fails every verification with an infrastructure error.
type outageCodeRepo struct{}

func (outageCodeRepo) Save(ctx context.Context, username, code string, ttl time.Duration) error {
	return nil
}

func (outageCodeRepo) Verify(ctx context.Context, username, code string) error {
	return errors.New("dial tcp: connection refused")
}

func (outageCodeRepo) Delete(ctx context.Context, username string) error {
	return nil
}

func TestIssueToken_StoreOutageIsNotBadRequest(t *testing.T) {
	td := testutil.SetupTestDatabase(t)
	testutil.CreateUser(t, td.DB, "outageuser", models.RoleUser)

	svc := NewAuthService(
		repository.NewUserRepository(td.DB),
		outageCodeRepo{},
		mailer.NewLogMailer(),
		&config.Config{JWTSecret: "test-secret", AccessTokenTTL: time.Minute},
	)

	_, err := svc.IssueToken(context.Background(), "outageuser", "whatever")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCode, "an unreachable code store is not the client's fault")
	assert.False(t, IsValidation(err))
}

func TestIssueToken_CodeIsSingleUse(t *testing.T) {
	svc, mail, _ := setupAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "onceuser", "onceuser@example.com")
	require.NoError(t, err)

	_, err = svc.IssueToken(ctx, "onceuser", mail.code)
	require.NoError(t, err)

	_, err = svc.IssueToken(ctx, "onceuser", mail.code)
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestValidateToken_Rejects(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// A token signed with a different secret must fail.
	other := NewAuthService(nil, nil, mailer.NewLogMailer(), &config.Config{
		JWTSecret:      "different-secret",
		AccessTokenTTL: time.Minute,
	})
	foreign, err := other.(*authService).generateAccessToken(&models.User{
		ID: "abc", Username: "foreign", Role: models.RoleUser,
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
