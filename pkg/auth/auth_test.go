package auth

import (
	"testing"
	"time"

	"github.com/arnavshah/duty-roster-go/pkg/config"
	"github.com/arnavshah/duty-roster-go/pkg/database"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testService() *Service {
	s := NewService("jwt-secret", "master-secret")
	s.BcryptCost = bcrypt.MinCost
	return s
}

func TestHMACKey_RoundTrip(t *testing.T) {
	s := testService()

	key := s.GenerateHMACKey("ward7")
	userID, err := s.VerifyHMACKey(key)

	require.NoError(t, err)
	assert.Equal(t, "ward7", userID)
}

func TestHMACKey_Rejects(t *testing.T) {
	s := testService()
	other := NewService("jwt-secret", "another-secret")

	_, err := s.VerifyHMACKey("no-dot")
	assert.ErrorIs(t, err, ErrInvalidKeyFormat)

	_, err = s.VerifyHMACKey("a.b.c")
	assert.ErrorIs(t, err, ErrInvalidKeyFormat)

	_, err = s.VerifyHMACKey(other.GenerateHMACKey("ward7"))
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestToken_RoundTrip(t *testing.T) {
	s := testService()

	token, err := s.CreateToken("admin")
	require.NoError(t, err)

	claims, err := s.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestToken_RejectsExpiredAndForeign(t *testing.T) {
	s := testService()

	expired := jwt.NewWithClaims(jwtAlgorithm, &Claims{
		Username: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err := expired.SignedString(s.JWTSecret)
	require.NoError(t, err)
	_, err = s.VerifyToken(signed)
	assert.Error(t, err)

	foreign, err := NewService("other", "x").CreateToken("admin")
	require.NoError(t, err)
	_, err = s.VerifyToken(foreign)
	assert.Error(t, err)
}

func TestEnsureAdminExists(t *testing.T) {
	db, err := database.InitDB(config.Config{DataPath: "file:auth_admin?mode=memory&cache=shared"})
	require.NoError(t, err)
	s := testService()

	created, err := s.EnsureAdminExists(db, "admin", "hunter2")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.EnsureAdminExists(db, "someone", "else")
	require.NoError(t, err)
	assert.False(t, created)

	user, ok := s.Authenticate(db, "admin", "hunter2")
	require.True(t, ok)
	assert.Equal(t, "admin", user.Username)

	_, ok = s.Authenticate(db, "admin", "wrong")
	assert.False(t, ok)
}
