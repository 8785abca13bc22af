package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"ai-concierge-be/internal/config"
	"ai-concierge-be/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	mu       sync.RWMutex
	users    map[string][]byte // username -> bcrypt hash
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(cfg config.AuthConfig) IAuthService {
	s := &authService{
		users:    make(map[string][]byte),
		secret:   []byte(cfg.JwtSecret),
		tokenTTL: cfg.TokenTTL,
	}

	// Seed a demo account so the API is usable without a registration step
	if cfg.SeedUsername != "" && cfg.SeedPassword != "" {
		if hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedPassword), bcrypt.DefaultCost); err == nil {
			s.users[cfg.SeedUsername] = hash
		}
	}

	return s
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[req.Username]; exists {
		return nil, errors.New("username already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	s.users[req.Username] = hash

	return &dto.RegisterResponse{Username: req.Username}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	s.mu.RLock()
	hash, exists := s.users[req.Username]
	s.mu.RUnlock()

	if !exists {
		return nil, errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": req.Username,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int(s.tokenTTL.Seconds()),
	}, nil
}
