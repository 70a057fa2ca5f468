package middleware

import (
	"crypto/rsa"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sumit-1412/NextBillTracker-sub000/internal/models"
)

// TokenIssuer identifies the service that issues all access tokens.
const TokenIssuer = "BillTracker"

const AccessTokenTTL = 12 * time.Hour

// GenerateAccessToken issues an RS256 token carrying the user's id
// and role.
func GenerateAccessToken(priv *rsa.PrivateKey, userID uuid.UUID, role models.UserRole) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"role": string(role),
		"iss":  TokenIssuer,
		"iat":  now.Unix(),
		"exp":  now.Add(AccessTokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(priv)
}

// ValidateToken checks signature, expiry and issuer, and returns the
// subject and role claims.
func ValidateToken(tokenString string, pub *rsa.PublicKey) (uuid.UUID, models.UserRole, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return pub, nil
	})
	if err != nil {
		return uuid.Nil, "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, "", errors.New("invalid token claims")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return uuid.Nil, "", errors.New("missing expiration claim")
	}
	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return uuid.Nil, "", jwt.ErrTokenExpired
	}

	iss, ok := claims["iss"].(string)
	if !ok || iss != TokenIssuer {
		return uuid.Nil, "", errors.New("invalid token issuer")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, "", errors.New("missing subject claim")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, "", errors.New("malformed subject claim")
	}

	roleStr, ok := claims["role"].(string)
	if !ok || roleStr == "" {
		return uuid.Nil, "", errors.New("missing role claim")
	}

	return userID, models.UserRole(roleStr), nil
}
