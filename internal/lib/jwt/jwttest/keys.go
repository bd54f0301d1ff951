// Package jwttest содержит помощники для тестов, которым нужны RSA ключи.
package jwttest

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/user-auth-service/internal/lib/jwt"
)

// NewKeyPair генерирует новую пару RSA ключей.
func NewKeyPair(t *testing.T) jwt.KeyPair {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return jwt.KeyPair{Private: priv, Public: &priv.PublicKey}
}

// PrivatePEM возвращает закрытый ключ пары в PKCS#8 PEM.
func PrivatePEM(t *testing.T, pair jwt.KeyPair) string {
	t.Helper()
	der, err := x509.MarshalPKCS8PrivateKey(pair.Private)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
}

// PublicPEM возвращает открытый ключ пары в PKIX PEM.
func PublicPEM(t *testing.T, pair jwt.KeyPair) string {
	t.Helper()
	der, err := x509.MarshalPKIXPublicKey(pair.Public)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

// NewMaker возвращает Maker с новыми ключами для access и refresh.
func NewMaker(t *testing.T) *jwt.MakerImpl {
	t.Helper()
	return jwt.NewJWTMaker(map[jwt.Kind]jwt.KeyPair{
		jwt.Access:  NewKeyPair(t),
		jwt.Refresh: NewKeyPair(t),
	})
}
