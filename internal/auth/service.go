package auth

import (
	"context"

	"merchant-registry/internal/model"
	"merchant-registry/pkg/jwtutil"

	"golang.org/x/crypto/bcrypt"
)

// Service implements credential verification and account creation.
type Service interface {
	Login(ctx context.Context, email, password string) (string, *model.User, error)
	Register(ctx context.Context, req RegisterRequest) (*model.User, error)
}

type service struct {
	storage Storage
	jwt     *jwtutil.JWTUtil
}

// NewService creates the auth service
func NewService(storage Storage, jwt *jwtutil.JWTUtil) Service {
	return &service{
		storage: storage,
		jwt:     jwt,
	}
}

// Login verifies the credentials and returns a signed access token carrying
// the user's name, email and role. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *service) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	existing, err := s.storage.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     req.Role,
	}
	if err := s.storage.CreateUser(ctx, &user); err != nil {
		return nil, err
	}

	return &user, nil
}
