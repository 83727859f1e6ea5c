package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Claims carries the agent identity the booking workflow trusts. Location is
// a snapshot taken at login; the middleware reloads the agent when it needs
// the current value.
type Claims struct {
	AgentID  string `json:"agent_id"`
	Role     string `json:"role"`
	Name     string `json:"name,omitempty"`
	Location string `json:"location,omitempty"`
	jwtlib.RegisteredClaims
}

func New(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *Service) TTL() time.Duration { return s.ttl }

func (s *Service) GenerateToken(agentID, role, name, location string) (string, error) {
	now := s.now()
	claims := Claims{
		AgentID:  agentID,
		Role:     role,
		Name:     name,
		Location: location,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   agentID,
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return s.secret, nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}), jwtlib.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.AgentID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
