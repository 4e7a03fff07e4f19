// Package auth resolves the opaque caller token into a principal. Token
// issuance lives in the external identity service; this side only parses
// and verifies the role/tenant claims.
package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleStudent    Role = "student"
	RoleFaculty    Role = "faculty"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
	RoleRootAdmin  Role = "root_admin"
)

// IsLearner reports whether the role is subject to window and ownership
// restrictions. Every other role acts as a previewing/administering
// principal.
func (r Role) IsLearner() bool { return r == RoleStudent }

// Principal is the resolved caller identity attached to each request.
// AdminID is the tenant claim: the admin account the user was created under.
type Principal struct {
	UserID  uint
	Role    Role
	AdminID uint
}

type Claims struct {
	UserID  uint   `json:"user_id"`
	Role    string `json:"role"`
	AdminID uint   `json:"admin_id"`
	jwt.RegisteredClaims
}

type TokenParser struct {
	hmac []byte
}

func NewTokenParser(secret string) *TokenParser {
	return &TokenParser{hmac: []byte(secret)}
}

// Parse verifies the bearer token and returns the principal it carries.
func (p *TokenParser) Parse(tokenStr string) (*Principal, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return p.hmac, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return &Principal{
		UserID:  claims.UserID,
		Role:    Role(strings.ToLower(claims.Role)),
		AdminID: claims.AdminID,
	}, nil
}

// Issue signs a token for the given principal. Used by tests and local
// tooling; production tokens come from the identity service with the same
// shared secret.
func (p *TokenParser) Issue(principal Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:  principal.UserID,
		Role:    string(principal.Role),
		AdminID: principal.AdminID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.hmac)
}
