package services

import (
	"context"
	"crypto/rsa"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/sumit-1412/NextBillTracker-sub000/internal/dtos"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/middleware"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/repositories"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/utils"
)

type AuthService struct {
	userRepo repositories.UserRepository
	priv     *rsa.PrivateKey
}

func NewAuthService(userRepo repositories.UserRepository, priv *rsa.PrivateKey) *AuthService {
	return &AuthService{userRepo: userRepo, priv: priv}
}

func (s *AuthService) Login(ctx context.Context, req *dtos.LoginRequest) (*dtos.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NewAppError(
			http.StatusUnauthorized, utils.ErrCodeInvalidCredentials,
			"Invalid email or password", utils.ErrInvalidCredentials,
		)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, utils.NewAppError(
			http.StatusUnauthorized, utils.ErrCodeInvalidCredentials,
			"Invalid email or password", utils.ErrInvalidCredentials,
		)
	}

	token, err := middleware.GenerateAccessToken(s.priv, user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &dtos.LoginResponse{
		AccessToken: token,
		User: dtos.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}
