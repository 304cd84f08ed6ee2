package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/seedcampus/seed-client/internal/types"
)

// The persisted user is wrapped in an HS256-signed token rather than raw
// JSON so a corrupted or hand-edited session blob fails verification and
// restores as no session instead of as garbage state.

type userClaims struct {
	User types.User `json:"user"`
	jwt.RegisteredClaims
}

func signUser(user *types.User, secret []byte) (string, error) {
	claims := userClaims{
		User: *user,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  string(user.ID),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func verifyUser(token string, secret []byte) (*types.User, error) {
	var claims userClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return &claims.User, nil
}
