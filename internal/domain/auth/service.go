package auth

import (
	"context"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/employee"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenPair, employee.Employee, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}
