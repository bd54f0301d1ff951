package jwt

import (
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ParsePrivateKey разбирает RSA закрытый ключ в PEM (PKCS#1 или PKCS#8).
// PEM может быть дополнительно закодирован в base64 целиком.
func ParsePrivateKey(encoded string) (*rsa.PrivateKey, error) {
	const op = "jwt.ParsePrivateKey"
	pem, err := decodePEM(encoded)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(pem)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return key, nil
}

// ParsePublicKey разбирает RSA открытый ключ в PEM (PKIX, PKCS#1 или сертификат).
func ParsePublicKey(encoded string) (*rsa.PublicKey, error) {
	const op = "jwt.ParsePublicKey"
	pem, err := decodePEM(encoded)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM(pem)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return key, nil
}

// LoadKeyPair собирает KeyPair из закодированных ключей.
func LoadKeyPair(privateKey, publicKey string) (KeyPair, error) {
	priv, err := ParsePrivateKey(privateKey)
	if err != nil {
		return KeyPair{}, err
	}
	pub, err := ParsePublicKey(publicKey)
	if err != nil {
		return KeyPair{}, err
	}
	return KeyPair{Private: priv, Public: pub}, nil
}

func decodePEM(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, fmt.Errorf("empty key")
	}
	if strings.Contains(encoded, "-----BEGIN") {
		return []byte(encoded), nil
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("key is neither PEM nor base64 PEM: %w", err)
	}
	return decoded, nil
}
