package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"reclaim-market/internal/apperr"
	"reclaim-market/internal/auth"
	"reclaim-market/internal/models"
	"reclaim-market/internal/util"
)

// UserStore is the persistence surface the auth service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	SetUserBlocked(ctx context.Context, id int64, blocked bool) error
}

// AuthService handles registration, login and admin account moderation.
type AuthService struct {
	store     UserStore
	publisher Publisher
	secret    string
	tokenTTL  time.Duration
	logger    *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(store UserStore, publisher Publisher, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		store:     store,
		publisher: publisher,
		secret:    secret,
		tokenTTL:  tokenTTL,
		logger:    util.GetLogger(),
	}
}

// Secret exposes the token signing secret to the HTTP middleware.
func (s *AuthService) Secret() string {
	return s.secret
}

// RegisterRequest carries a new account's fields.
type RegisterRequest struct {
	Name        string      `json:"name"`
	CompanyName string      `json:"company_name"`
	Email       string      `json:"email"`
	Password    string      `json:"password"`
	Role        models.Role `json:"role"`
}

// AuthResponse is returned from register and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates a new account and returns a bearer token for it.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	ctx, span := util.StartSpan(ctx, "AuthService.Register")
	defer span.End()

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, apperr.Validation("name, email and password are required")
	}
	if req.Role == "" {
		req.Role = models.RoleBuyer
	}
	// Admin accounts are provisioned out of band, never self-registered.
	if req.Role == models.RoleAdmin || !models.ValidRole(req.Role) {
		return nil, apperr.Validation("role must be buyer or seller")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		CompanyName:  req.CompanyName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)))

	event := &models.UserRegisteredEvent{
		BaseEvent: newBaseEvent(models.EventTypeUserRegistered),
		User:      models.Party{Name: user.Name, Email: user.Email},
	}
	if err := s.publisher.PublishUserRegistered(ctx, event); err != nil {
		s.logger.Error("Failed to publish UserRegistered event", zap.Error(err))
	}

	token, err := auth.NewToken(s.secret, s.tokenTTL, user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: user}, nil
}

// Login verifies credentials and returns a bearer token. The error for
// an unknown email and a wrong password is identical on purpose.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	ctx, span := util.StartSpan(ctx, "AuthService.Login")
	defer span.End()

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, apperr.Validation("email and password are required")
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if apperr.CodeOf(err) == apperr.CodeNotFound {
			return nil, apperr.Validation("invalid email or password")
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, apperr.Validation("invalid email or password")
	}

	token, err := auth.NewToken(s.secret, s.tokenTTL, user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: user}, nil
}

// ResolveUser loads the live user record behind a token. Blocked
// accounts are rejected here so a block takes effect immediately,
// regardless of how long the token has left.
func (s *AuthService) ResolveUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if apperr.CodeOf(err) == apperr.CodeNotFound {
			return nil, apperr.Unauthenticated("user not found")
		}
		return nil, err
	}
	if user.IsBlocked {
		return nil, apperr.Blocked()
	}
	return user, nil
}

// ListUsers returns every account for the admin view.
func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.store.ListUsers(ctx)
}

// ToggleBlock flips the block flag on a non-admin account.
func (s *AuthService) ToggleBlock(ctx context.Context, targetID int64) (*models.User, error) {
	ctx, span := util.StartSpan(ctx, "AuthService.ToggleBlock")
	defer span.End()

	user, err := s.store.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if user.Role == models.RoleAdmin {
		return nil, apperr.Validation("cannot block admin user")
	}

	if err := s.store.SetUserBlocked(ctx, targetID, !user.IsBlocked); err != nil {
		return nil, err
	}
	user.IsBlocked = !user.IsBlocked

	s.logger.Info("User block toggled",
		zap.Int64("user_id", user.ID),
		zap.Bool("blocked", user.IsBlocked))

	return user, nil
}
