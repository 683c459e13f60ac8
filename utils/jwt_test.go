package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

// Secret dari env harus dipakai walaupun baru di-set setelah package load
// (godotenv.Load berjalan di main, setelah seluruh init).
func TestJWTSecretResolvedLazilyFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken(7, "waiter")
	assert.NoError(t, err)

	// Token harus terverifikasi dengan secret dari env, bukan default dev
	parsed, err := jwt.ParseWithClaims(token, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	assert.True(t, parsed.Valid)

	claims, err := ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "waiter", claims.Role)
}

func TestParseTokenRejectsExpiredAndForeign(t *testing.T) {
	// Token expired
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &CustomClaims{
		UserID: 1,
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	})
	signed, err := expired.SignedString(JWTSecret())
	assert.NoError(t, err)

	_, err = ParseToken(signed)
	assert.Error(t, err)

	// Token yang ditandatangani secret lain
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, &CustomClaims{
		UserID: 1,
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err = foreign.SignedString([]byte("some-other-secret"))
	assert.NoError(t, err)

	_, err = ParseToken(signed)
	assert.Error(t, err)
}
