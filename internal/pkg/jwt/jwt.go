package jwt

import (
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// TokenTypeAccess is the only token type the payroll API accepts.
const TokenTypeAccess = "access"

type Service interface {
	// GenerateAccessToken signs claims issued by the identity service; used by tooling and tests.
	GenerateAccessToken(claims auth.Claims) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime time.Duration
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime time.Duration) Service {
	if accessTokenExpirationTime <= 0 {
		accessTokenExpirationTime = 15 * time.Minute
	}
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(claims auth.Claims) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.accessTokenExpirationTime).Unix()

	payload := map[string]any{
		"user_id":    claims.UserID,
		"company_id": claims.CompanyID,
		"role":       string(claims.Role),
		"type":       TokenTypeAccess,
		"exp":        expiresAt,
	}
	if claims.EmployeeID != "" {
		payload["employee_id"] = claims.EmployeeID
	}

	_, tokenString, err := j.tokenAuth.Encode(payload)
	return tokenString, expiresAt, err
}
