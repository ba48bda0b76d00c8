package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/yourusername/lendmarket/models"
	"github.com/yourusername/lendmarket/repositories"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterRequest carries the fields accepted at registration and admin
// provisioning. Password is plaintext on the way in and is hashed before
// anything is persisted or logged.
type RegisterRequest struct {
	FirstName string      `form:"first_name" json:"first_name" binding:"required"`
	LastName  string      `form:"last_name" json:"last_name" binding:"required"`
	Nickname  string      `form:"nickname" json:"nickname"`
	Email     string      `form:"email" json:"email" binding:"required"`
	Phone     string      `form:"phone" json:"phone"`
	Password  string      `form:"password" json:"password" binding:"required"`
	Role      models.Role `form:"role" json:"role" binding:"required"`
	Country   string      `form:"country" json:"country"`
	State     string      `form:"state" json:"state"`
	City      string      `form:"city" json:"city"`
}

// AuthService owns the credential store operations and the access-guard
// resolution of a token to a live user.
type AuthService struct {
	users  *repositories.UserRepository
	tokens *TokenService
}

// NewAuthService creates a new auth service instance
func NewAuthService(users *repositories.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a new user account. The role must be one of the closed
// set; the email must not already be registered.
func (s *AuthService) Register(req RegisterRequest) (*models.User, error) {
	if !models.ValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	exists, err := s.users.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:           uuid.NewString(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Nickname:     req.Nickname,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hashed),
		Role:         req.Role,
		Country:      req.Country,
		State:        req.State,
		City:         req.City,
	}

	if err := s.users.Create(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

// Login verifies credentials and issues a session token. A missing user and
// a wrong password produce the same error so the response never reveals
// whether the email exists.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}

	return token, &user, nil
}

// Authenticate resolves a bearer token to a live user record. The subject is
// always re-fetched from storage: a still-unexpired token for a deleted user
// fails here, and a role change takes effect on the next request. The token's
// embedded role is never trusted.
func (s *AuthService) Authenticate(token string) (*models.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	user, err := s.users.FindByEmail(claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

// DeleteUser removes a user. Deletion is cascade-restrict: a user still
// referenced by operations or bids cannot be deleted, so no dangling foreign
// keys ever appear. Any outstanding tokens die on the next request through
// Authenticate's live re-fetch.
func (s *AuthService) DeleteUser(id string) error {
	if _, err := s.users.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	refs, err := s.users.CountReferences(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return ErrUserReferenced
	}

	return s.users.Delete(id)
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id string) (*models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
