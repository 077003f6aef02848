package auth

import (
	"context"
)

type AuthService interface {
	LoginWithEmployeeCode(ctx context.Context, req LoginEmployeeCodeRequest) (EmployeeLoginResponse, error)
	LoginAdmin(ctx context.Context, req AdminLoginRequest) (AdminLoginResponse, error)
}
