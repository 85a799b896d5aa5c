package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gadget-store-api/internal/domain/entity"
	repo "github.com/oksasatya/gadget-store-api/internal/domain/repository"
	"github.com/oksasatya/gadget-store-api/pkg/helpers"
)

const minPasswordLength = 6

// AuthService owns sign-up, sign-in and identity lookups.
type AuthService struct {
	Repo     repo.UserRepository
	JWT      *helpers.JWTManager
	Denylist *helpers.TokenDenylist // optional; nil keeps logout client-side
	Logger   *logrus.Logger
	now      func() time.Time
}

func NewAuthService(repo repo.UserRepository, jwt *helpers.JWTManager, denylist *helpers.TokenDenylist, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: repo, JWT: jwt, Denylist: denylist, Logger: logger, now: time.Now}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is returned by sign-up and sign-in.
type AuthResult struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
	User      entity.PublicUser `json:"user"`
}

// emailRules checks addresses after normalization, so padded or upper-cased
// input is accepted.
var emailRules = validator.New()

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := entity.NormalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, validationError("Name, email, and password are required.")
	}
	if emailRules.Var(email, "email") != nil {
		return nil, validationError("Please provide a valid email address.")
	}
	if len(in.Password) < minPasswordLength {
		return nil, validationError("Password must be at least 6 characters.")
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Name: name, Email: email, Role: entity.RoleCustomer, Password: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		// lost a race with a concurrent sign-up for the same address
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return s.issue(u)
}

// Signin checks credentials. Unknown email and wrong password produce the
// same error.
func (s *AuthService) Signin(ctx context.Context, email, password string) (*AuthResult, error) {
	email = entity.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, validationError("Email and password are required.")
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(u)
}

func (s *AuthService) issue(u *entity.User) (*AuthResult, error) {
	token, exp, err := s.JWT.GenerateToken(u.ID, string(u.Role), u.Email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: exp, User: u.Public()}, nil
}

// Me resolves the user behind a verified claim.
func (s *AuthService) Me(ctx context.Context, userID string) (*entity.PublicUser, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	pub := u.Public()
	return &pub, nil
}

// Signout denylists the token for the rest of its lifetime. Without a
// denylist it is a no-op and the client simply discards the token.
func (s *AuthService) Signout(ctx context.Context, claims *helpers.Claims) (bool, error) {
	if s.Denylist == nil || claims == nil || claims.ID == "" {
		return false, nil
	}
	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Time.Sub(s.now())
	}
	if err := s.Denylist.Revoke(ctx, claims.ID, ttl); err != nil {
		return false, err
	}
	return true, nil
}
