package auth

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

// Roles recognised inside a token.
const (
	RoleAdmin      = "ADMIN"
	RoleDispatcher = "DISPATCHER"
	RoleOfficer    = "OFFICER"
	RoleClient     = "CLIENT"
)

// ctxKey represents the type of value for the context key.
type ctxKey int

// Key is used to store/retrieve Claims from a context.Context.
const Key ctxKey = 1

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	UserId int    `json:"user_id"`
	Role   string `json:"role"`
}

// Authorized returns true if the claims carry one of the given roles.
func (c Claims) Authorized(roles ...string) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}

// Auth is used to authenticate clients. It signs and validates tokens with a
// shared HS256 key.
type Auth struct {
	key             []byte
	accessDuration  time.Duration
	refreshDuration time.Duration
}

func NewAuth(key string) *Auth {
	return &Auth{
		key:             []byte(key),
		accessDuration:  12 * time.Hour,
		refreshDuration: 30 * 24 * time.Hour,
	}
}

// GenerateToken signs claims for the given user with the access lifetime.
func (a *Auth) GenerateToken(userID int, role string) (string, error) {
	return a.generate(userID, role, a.accessDuration)
}

// GenerateRefreshToken signs claims with the longer refresh lifetime.
func (a *Auth) GenerateRefreshToken(userID int, role string) (string, error) {
	return a.generate(userID, role, a.refreshDuration)
}

func (a *Auth) generate(userID int, role string, lifetime time.Duration) (string, error) {
	claims := Claims{
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(lifetime).Unix(),
		},
		UserId: userID,
		Role:   role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	str, err := token.SignedString(a.key)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}

	return str, nil
}

// ValidateToken recreates the Claims that were used to generate a token. It
// verifies the signature and the standard expiry claims.
func (a *Auth) ValidateToken(tokenStr string) (Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.key, nil
	})
	if err != nil {
		return Claims{}, errors.Wrap(err, "parsing token")
	}
	if !token.Valid {
		return Claims{}, errors.New("invalid token")
	}

	return claims, nil
}
