package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// AdminCredentials is the single administrator account configured for the deployment.
type AdminCredentials struct {
	Username     string
	Password     string
	PasswordHash string
	Email        string
}

const adminID = "admin"

type AuthServiceImpl struct {
	jwt.Service
	employee.EmployeeRepository
	admin AdminCredentials
}

func NewAuthService(employeeRepository employee.EmployeeRepository, jwtService jwt.Service, admin AdminCredentials) auth.AuthService {
	return &AuthServiceImpl{
		Service:            jwtService,
		EmployeeRepository: employeeRepository,
		admin:              admin,
	}
}

// LoginWithEmployeeCode implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithEmployeeCode(ctx context.Context, req auth.LoginEmployeeCodeRequest) (auth.EmployeeLoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.EmployeeLoginResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByEmployeeCode(ctx, req.EmployeeCode)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.EmployeeLoginResponse{}, auth.ErrInvalidEmployeeCode
		}
		return auth.EmployeeLoginResponse{}, fmt.Errorf("failed to get employee by code: %w", err)
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(emp.ID, &emp.ID, jwt.RoleEmployee)
	if err != nil {
		return auth.EmployeeLoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	slog.Info("employee logged in", "employee_id", emp.ID)
	return auth.EmployeeLoginResponse{
		TokenResponse: auth.TokenResponse{
			AccessToken:          token,
			AccessTokenExpiresIn: expiresAt,
		},
		Employee: auth.EmployeeInfo{
			ID:           emp.ID,
			EmployeeCode: emp.EmployeeCode,
			Name:         emp.Name,
			Email:        emp.Email,
		},
	}, nil
}

// LoginAdmin implements auth.AuthService.
func (a *AuthServiceImpl) LoginAdmin(ctx context.Context, req auth.AdminLoginRequest) (auth.AdminLoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AdminLoginResponse{}, err
	}

	if !a.checkAdmin(req.Username, req.Password) {
		slog.Warn("admin login failed", "username", req.Username)
		return auth.AdminLoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(adminID, nil, jwt.RoleAdmin)
	if err != nil {
		return auth.AdminLoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	slog.Info("admin logged in", "username", a.admin.Username)
	return auth.AdminLoginResponse{
		TokenResponse: auth.TokenResponse{
			AccessToken:          token,
			AccessTokenExpiresIn: expiresAt,
		},
		User: auth.AdminInfo{
			ID:       adminID,
			Username: a.admin.Username,
			Email:    a.admin.Email,
		},
	}, nil
}

func (a *AuthServiceImpl) checkAdmin(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.admin.Username)) == 1

	var passOK bool
	switch {
	case a.admin.PasswordHash != "":
		passOK = bcrypt.CompareHashAndPassword([]byte(a.admin.PasswordHash), []byte(password)) == nil
	case a.admin.Password != "":
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(a.admin.Password)) == 1
	}

	return userOK && passOK
}
