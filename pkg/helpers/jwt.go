package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionManager signs and parses the session cookie. The cookie is
// only transport: it wraps the domain authentication-token credential,
// and every authenticated request still proves itself against the
// stored token through the myself-certificate service.
type SessionManager struct {
	Secret []byte
	TTL    time.Duration
}

func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{Secret: []byte(secret), TTL: ttl}
}

type SessionClaims struct {
	UserID      string `json:"uid"`
	TokenID     string `json:"tid"`
	TokenSecret string `json:"tsc"`
	jwt.RegisteredClaims
}

func (m *SessionManager) Generate(userID, tokenID, tokenSecret string) (string, time.Time, error) {
	exp := time.Now().Add(m.TTL)
	claims := &SessionClaims{
		UserID:      userID,
		TokenID:     tokenID,
		TokenSecret: tokenSecret,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

func (m *SessionManager) Parse(tokenStr string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}
