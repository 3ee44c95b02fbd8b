package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/config"
	"reviewhub/internal/mailer"
	"reviewhub/pkg/logger"
)

var usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)

// AuthClaims is what the middleware extracts from a verified token.
type AuthClaims struct {
	UserID   string
	Username string
	Role     models.Role
}

type AuthService interface {
	Signup(ctx context.Context, username, email string) (*dto.SignupResponse, error)
	IssueToken(ctx context.Context, username, code string) (string, error)
	ValidateToken(tokenString string) (*AuthClaims, error)
}

type authService struct {
	userRepo       repository.UserRepository
	codeRepo       repository.CodeRepository
	mail           mailer.Mailer
	jwtSecret      string
	accessTokenTTL time.Duration
	codeTTL        time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	codeRepo repository.CodeRepository,
	mail mailer.Mailer,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		codeRepo:       codeRepo,
		mail:           mail,
		jwtSecret:      cfg.JWTSecret,
		accessTokenTTL: cfg.AccessTokenTTL,
		codeTTL:        cfg.ConfirmationCodeTTL,
	}
}

// ValidateUsername enforces the username rules shared by signup and admin
// user creation: the reserved literal "me" and the allowed character set.
func ValidateUsername(username string) error {
	if strings.EqualFold(username, "me") {
		return ErrReservedUsername
	}
	if !usernameRegex.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// Signup registers a new user and issues a confirmation code. Requesting a
// signup again with the exact same (username, email) pair reissues the code;
// reusing either field with a different pairing is a conflict.
func (s *authService) Signup(ctx context.Context, username, email string) (*dto.SignupResponse, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}

	byName, nameErr := s.userRepo.FindByUsername(ctx, username)
	if nameErr != nil && !errors.Is(nameErr, gorm.ErrRecordNotFound) {
		return nil, nameErr
	}
	byEmail, emailErr := s.userRepo.FindByEmail(ctx, email)
	if emailErr != nil && !errors.Is(emailErr, gorm.ErrRecordNotFound) {
		return nil, emailErr
	}

	var user *models.User
	switch {
	case byName != nil && byEmail != nil && byName.ID == byEmail.ID:
		// Same person signing up again: reissue the code.
		user = byName
	case byName != nil:
		return nil, ErrUsernameInUse
	case byEmail != nil:
		return nil, ErrEmailInUse
	default:
		user = &models.User{Username: username, Email: email, Role: models.RoleUser}
		if err := s.userRepo.Create(ctx, user); err != nil {
			if repository.IsUniqueViolation(err) {
				// Raced with a concurrent signup; the constraint decides.
				return nil, classifyUserConflict(ctx, s.userRepo, username, email)
			}
			return nil, err
		}
	}

	code := uuid.New().String()
	if err := s.codeRepo.Save(ctx, user.Username, code, s.codeTTL); err != nil {
		return nil, err
	}
	if err := s.mail.SendConfirmationCode(user.Email, user.Username, code); err != nil {
		logger.Log.Error("failed to deliver confirmation code",
			zap.String("username", user.Username),
			zap.Error(err),
		)
		return nil, err
	}

	return &dto.SignupResponse{Email: user.Email, Username: user.Username}, nil
}

// IssueToken exchanges a username and confirmation code for an access token.
func (s *authService) IssueToken(ctx context.Context, username, code string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	// Only a rejected code is the client's fault; a store outage is ours.
	if err := s.codeRepo.Verify(ctx, username, code); err != nil {
		if errors.Is(err, repository.ErrCodeNotFound) || errors.Is(err, repository.ErrCodeMismatch) {
			logger.Log.Warn("confirmation code rejected",
				zap.String("username", username),
			)
			return "", ErrInvalidCode
		}
		return "", err
	}
	// A code is single-use.
	if err := s.codeRepo.Delete(ctx, username); err != nil {
		return "", err
	}

	return s.generateAccessToken(user)
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      time.Now().Add(s.accessTokenTTL).Unix(),
		"iat":      time.Now().Unix(),
		"type":     "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, _ := claims["user_id"].(string)
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || !models.Role(role).Valid() {
		return nil, ErrInvalidToken
	}

	return &AuthClaims{
		UserID:   userID,
		Username: username,
		Role:     models.Role(role),
	}, nil
}
