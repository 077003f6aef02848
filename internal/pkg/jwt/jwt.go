package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Role is carried in the access token and drives route authorization.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

var ErrMissingClaims = errors.New("token claims are missing or invalid")

// Claims is the decoded subset of an access token used by handlers.
type Claims struct {
	Subject    string
	EmployeeID string
	Role       Role
}

func (c Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// CanAccessEmployee reports whether the bearer may act on employeeID's records.
func (c Claims) CanAccessEmployee(employeeID string) bool {
	return c.IsAdmin() || (c.EmployeeID != "" && c.EmployeeID == employeeID)
}

type Service interface {
	GenerateAccessToken(subject string, employeeID *string, role Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpiration time.Duration) Service {
	return &JWTService{
		accessTokenExpiration: accessTokenExpiration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(subject string, employeeID *string, role Role) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		"sub":         subject,
		"employee_id": returnValueOrNil(employeeID),
		"role":        string(role),
		"type":        "access",
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// ClaimsFromContext reads the verified token placed on ctx by jwtauth.Verifier.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	_, raw, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, err
	}

	if tokenType, _ := raw["type"].(string); tokenType != "access" {
		return Claims{}, ErrMissingClaims
	}

	role, _ := raw["role"].(string)
	if role != string(RoleEmployee) && role != string(RoleAdmin) {
		return Claims{}, ErrMissingClaims
	}

	claims := Claims{Role: Role(role)}
	claims.Subject, _ = raw["sub"].(string)
	claims.EmployeeID, _ = raw["employee_id"].(string)
	if claims.Role == RoleEmployee && claims.EmployeeID == "" {
		return Claims{}, ErrMissingClaims
	}

	return claims, nil
}

func returnValueOrNil(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}
