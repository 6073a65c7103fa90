package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/sweldox/payroll-backend-go/internal/domain/user"
)

// Service verifies bearer tokens and, for operational tooling, mints
// access tokens. Token issuance at login time belongs to an external
// identity service; this backend only needs the verifier and claims.
type Service interface {
	GenerateAccessToken(userID string, employeeID string, role user.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(userID string, employeeID string, role user.Role) (string, int64, error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt := time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id":     userID,
		"employee_id": employeeID,
		"role":        string(role),
		"type":        "access",
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// ViewerFromClaims builds the explicit caller identity passed into
// service calls.
func ViewerFromClaims(claims map[string]interface{}) user.Viewer {
	v := user.Viewer{}
	if id, ok := claims["user_id"].(string); ok {
		v.UserID = id
	}
	if id, ok := claims["employee_id"].(string); ok {
		v.EmployeeID = id
	}
	if role, ok := claims["role"].(string); ok {
		v.Role = user.Role(role)
	}
	return v
}
