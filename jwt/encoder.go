package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/wtorkanorka/BlogSynergy/errors"
)

const issuer = "blogsynergy"

type EncodeDecoder struct {
	key []byte
}

type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

func NewEncodeDecoder(key []byte) *EncodeDecoder {
	return &EncodeDecoder{
		key: key,
	}
}

func (e *EncodeDecoder) Encode(userID string) (string, error) {
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().AddDate(0, 2, 0)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(e.key)
}

func (e *EncodeDecoder) Decode(bearer string) (string, error) {
	claims := Claims{}

	token, err := jwt.ParseWithClaims(bearer, &claims, e.keyFunc)
	if err != nil {
		return "", errors.New("invalid token", errors.Unauthorized(), errors.WithCause(err))
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.UserID != "" {
		return claims.UserID, nil
	}

	return "", errors.New("could not get claims", errors.Unauthorized())
}

func (e *EncodeDecoder) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method", errors.Unauthorized())
	}
	return e.key, nil
}
