package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Skotchmaster/aura_shop/internal/models"
	"github.com/Skotchmaster/aura_shop/pkg/logging"
	"github.com/Skotchmaster/aura_shop/pkg/tokens"
)

const MinPasswordLength = 6

var (
	ErrValidation          = errors.New("validation error")
	ErrUserAlreadyExist    = errors.New("user already exist")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

type Repository interface {
	CreateUserIfNotExists(ctx context.Context, u *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	SaveRefresh(ctx context.Context, t *models.RefreshToken) error
	RotateRefresh(ctx context.Context, oldJTI, tokenHash string, next *models.RefreshToken) error
	RevokeRefresh(ctx context.Context, rawToken string) error
}

type Service struct {
	Repo          Repository
	AccessSecret  []byte
	RefreshSecret []byte
	// AdminEmails get the admin role at sign-up. Lower-case.
	AdminEmails []string
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
	now        func() time.Time
}

func (s *Service) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) roleFor(email string) string {
	for _, e := range s.AdminEmails {
		if e == email {
			return models.RoleAdmin
		}
	}
	return models.RoleUser
}

func (s *Service) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signup")

	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if len(password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLength)
	}

	pwHash, err := s.hashPassword(password)
	if err != nil {
		l.Error("signup_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	u := &models.User{Email: email, PasswordHash: pwHash, Role: s.roleFor(email)}
	if err := s.Repo.CreateUserIfNotExists(ctx, u); err != nil {
		if errors.Is(err, ErrUserAlreadyExist) {
			l.Warn("signup_error", "status", 409, "reason", "user already exist")
		} else {
			l.Error("signup_error", "status", 500, "error", err)
		}
		return nil, err
	}
	l.Info("signup_success", "user_id", u.ID, "role", u.Role)
	return u, nil
}

func (s *Service) SignIn(ctx context.Context, email, password string) (*tokens.Pair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signin")

	u, err := s.Repo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if !checkPassword(u.PasswordHash, password) {
		l.Warn("signin_failed", "status", 401, "reason", "wrong password")
		return nil, ErrInvalidCredentials
	}

	pair, refresh, err := s.issue(u)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SaveRefresh(ctx, refresh); err != nil {
		return nil, fmt.Errorf("save refresh token: %w", err)
	}
	return pair, nil
}

// Refresh rotates a refresh token. A token can be used once.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*tokens.Pair, error) {
	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRefreshToken, err)
	}

	u, err := s.Repo.GetUserByID(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown subject", ErrInvalidRefreshToken)
	}

	pair, next, err := s.issue(u)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.RotateRefresh(ctx, claims.ID, tokens.Sha256Hex(refreshToken), next); err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *Service) LogOut(ctx context.Context, refreshToken string) error {
	return s.Repo.RevokeRefresh(ctx, refreshToken)
}

func (s *Service) issue(u *models.User) (*tokens.Pair, *models.RefreshToken, error) {
	now := s.clock()
	accessExp := now.Add(tokens.AccessTTL)
	refreshExp := now.Add(tokens.RefreshTTL)

	access, err := tokens.SignAccess(u.ID, u.Email, u.Role, accessExp, s.AccessSecret)
	if err != nil {
		return nil, nil, err
	}
	jti := tokens.NewJTI()
	refresh, err := tokens.SignRefresh(u.ID, jti, refreshExp, s.RefreshSecret)
	if err != nil {
		return nil, nil, err
	}

	stored := &models.RefreshToken{
		UserID:    u.ID,
		Token:     tokens.Sha256Hex(refresh),
		JTI:       jti,
		ExpiresAt: refreshExp.Unix(),
	}
	return &tokens.Pair{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
		Role:         u.Role,
	}, stored, nil
}
