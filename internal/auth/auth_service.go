package auth

import (
	"context"
	"errors"
	"time"

	autherrors "github.com/koolkhan8586/hr-management/internal/auth/errors"
	"github.com/koolkhan8586/hr-management/internal/domain"
	"github.com/koolkhan8586/hr-management/internal/shared/apperror"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour

	tokenTypeRefresh = "refresh"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenResponse, error)
	GetMe(ctx context.Context, employeeID string) (AuthResponse, error)
}

type service struct {
	repo   Repository
	secret []byte
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, secret string, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		repo:   repo,
		secret: []byte(secret),
		now:    time.Now,
		logger: l,
	}
}

func (s *service) Login(ctx context.Context, email, password string) (TokenResponse, error) {
	cred, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("login unknown email")
			return TokenResponse{}, autherrors.ErrInvalidCredentials
		}
		s.logger.Error("login lookup failed", zap.Error(err))
		return TokenResponse{}, apperror.Persistence(err)
	}

	// karyawan tanpa password belum bisa login
	if cred.PasswordHash == "" {
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("login wrong password", zap.String("employee_id", cred.ID))
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}

	resp, err := s.issue(cred)
	if err != nil {
		return TokenResponse{}, err
	}
	s.logger.Info("login success", zap.String("employee_id", cred.ID), zap.String("role", resp.User.Role))
	return resp, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (TokenResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return TokenResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenResponse{}, autherrors.ErrInvalidToken
	}
	if typ, _ := claims["typ"].(string); typ != tokenTypeRefresh {
		return TokenResponse{}, autherrors.ErrInvalidRefreshToken
	}
	employeeID, _ := claims["employee_id"].(string)
	if employeeID == "" {
		return TokenResponse{}, autherrors.ErrInvalidToken
	}

	cred, err := s.repo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenResponse{}, autherrors.ErrUserNotFound
		}
		return TokenResponse{}, apperror.Persistence(err)
	}

	return s.issue(cred)
}

func (s *service) GetMe(ctx context.Context, employeeID string) (AuthResponse, error) {
	cred, err := s.repo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, autherrors.ErrUserNotFound
		}
		return AuthResponse{}, apperror.Persistence(err)
	}
	return toAuthResponse(cred), nil
}

func (s *service) issue(cred *Credential) (TokenResponse, error) {
	user := toAuthResponse(cred)

	access, err := s.generateToken(user, "", AccessTokenTTL)
	if err != nil {
		s.logger.Error("sign access token failed", zap.Error(err))
		return TokenResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refresh, err := s.generateToken(user, tokenTypeRefresh, RefreshTokenTTL)
	if err != nil {
		s.logger.Error("sign refresh token failed", zap.Error(err))
		return TokenResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return TokenResponse{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

func (s *service) generateToken(user AuthResponse, typ string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":     user.EmployeeID,
		"employee_id": user.EmployeeID,
		"role":        user.Role,
		"iat":         s.now().Unix(),
		"exp":         s.now().Add(ttl).Unix(),
	}
	if typ != "" {
		claims["typ"] = typ
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func toAuthResponse(cred *Credential) AuthResponse {
	role := cred.Role
	if role == "" {
		role = domain.RoleEmployee
	}
	return AuthResponse{
		EmployeeID: cred.ID,
		Email:      cred.Email,
		Name:       cred.Name,
		Role:       role,
	}
}
