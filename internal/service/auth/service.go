package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/auth"
	"github.com/kintai-hq/kintai-backend-go/internal/domain/employee"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	jwtService   jwt.Service
}

func NewAuthService(employeeRepo employee.EmployeeRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		employeeRepo: employeeRepo,
		jwtService:   jwtService,
	}
}

func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenPair, employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenPair{}, employee.Employee{}, err
	}

	emp, err := a.employeeRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenPair{}, employee.Employee{}, auth.ErrInvalidCredentials
		}
		return auth.TokenPair{}, employee.Employee{}, err
	}
	if !emp.IsActive {
		return auth.TokenPair{}, employee.Employee{}, employee.ErrEmployeeInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenPair{}, employee.Employee{}, auth.ErrInvalidCredentials
	}

	pair, err := a.tokenPair(emp)
	if err != nil {
		return auth.TokenPair{}, employee.Employee{}, err
	}
	return pair, emp, nil
}

func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	employeeID, err := a.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenPair{}, auth.ErrInvalidToken
	}

	emp, err := a.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenPair{}, auth.ErrInvalidToken
		}
		return auth.TokenPair{}, err
	}
	if !emp.IsActive {
		return auth.TokenPair{}, employee.ErrEmployeeInactive
	}

	// Refresh tokens rotate on use.
	a.jwtService.RevokeToken(refreshToken)

	return a.tokenPair(emp)
}

func (a *AuthServiceImpl) tokenPair(emp employee.Employee) (auth.TokenPair, error) {
	accessToken, accessExpiresAt, err := a.jwtService.GenerateAccessToken(emp.ID, emp.Email, emp.Role)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("failed to create access token: %w", err)
	}
	refreshToken, refreshExpiresAt, err := a.jwtService.GenerateRefreshToken(emp.ID)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	return auth.TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        accessExpiresAt - time.Now().Unix(),
		RefreshExpiresAt: refreshExpiresAt,
	}, nil
}
