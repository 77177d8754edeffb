package users

import (
	"context"

	"github.com/user/adboard-go/apperror"
	"github.com/user/adboard-go/auth"
)

// UserService holds the business logic for registration, login, and profile
// lookup.
type UserService struct {
	repo   Repository
	tokens *auth.TokenService
}

// NewUserService creates a UserService.
func NewUserService(repo Repository, tokens *auth.TokenService) *UserService {
	return &UserService{repo: repo, tokens: tokens}
}

// Register hashes the password and stores the new account.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.Create(ctx, req.Name, req.Email, hash)
	if err != nil {
		return nil, err
	}
	return &RegisterResponse{Msg: "User created successfully", ID: user.ID}, nil
}

// Login checks the credentials of an existing account and issues an access
// token. An unknown account ID is a not-found error; a wrong password is an
// authentication error.
func (s *UserService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		return nil, apperror.NewAuthError("Invalid credentials", nil)
	}
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{Token: token}, nil
}

// GetUser returns the public view of a user.
func (s *UserService) GetUser(ctx context.Context, id int) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &UserResponse{ID: user.ID, Name: user.Name, RegisteredAt: user.RegisteredAt}, nil
}
