package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RoundTrip(t *testing.T) {
	svc := New("secret", time.Hour)

	token, err := svc.GenerateToken("agent-1", "agent", "Asha", "Chennai")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "agent-1", claims.AgentID)
	assert.Equal(t, "agent", claims.Role)
	assert.Equal(t, "Chennai", claims.Location)
}

func TestService_RejectsWrongSecret(t *testing.T) {
	token, err := New("secret", time.Hour).GenerateToken("agent-1", "agent", "", "")
	require.NoError(t, err)

	_, err = New("other", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_RejectsExpired(t *testing.T) {
	svc := New("secret", time.Minute)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := svc.GenerateToken("agent-1", "agent", "", "")
	require.NoError(t, err)

	_, err = New("secret", time.Minute).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_RejectsOtherAlgorithms(t *testing.T) {
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, Claims{AgentID: "agent-1", Role: "admin"})
	raw, err := token.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = New("secret", time.Hour).ValidateToken(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
