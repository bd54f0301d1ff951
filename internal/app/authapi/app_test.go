package authapi

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/user-auth-service/internal/config"
	"github.com/magabrotheeeer/user-auth-service/internal/lib/jwt"
	"github.com/magabrotheeeer/user-auth-service/internal/lib/jwt/jwttest"
)

func TestNewMaker(t *testing.T) {
	access := jwttest.NewKeyPair(t)
	refresh := jwttest.NewKeyPair(t)

	t.Run("access only, base64 encoded", func(t *testing.T) {
		maker, err := newMaker(config.Tokens{
			AccessPrivateKey: base64.StdEncoding.EncodeToString([]byte(jwttest.PrivatePEM(t, access))),
			AccessPublicKey:  base64.StdEncoding.EncodeToString([]byte(jwttest.PublicPEM(t, access))),
		})
		require.NoError(t, err)

		tok, err := maker.Issue("u1", jwt.Access, time.Minute)
		require.NoError(t, err)
		sub, ok := maker.Verify(tok, jwt.Access)
		assert.True(t, ok)
		assert.Equal(t, "u1", sub)

		_, err = maker.Issue("u1", jwt.Refresh, time.Minute)
		assert.ErrorIs(t, err, jwt.ErrUnknownKind)
	})

	t.Run("access and refresh", func(t *testing.T) {
		maker, err := newMaker(config.Tokens{
			AccessPrivateKey:  jwttest.PrivatePEM(t, access),
			AccessPublicKey:   jwttest.PublicPEM(t, access),
			RefreshPrivateKey: jwttest.PrivatePEM(t, refresh),
			RefreshPublicKey:  jwttest.PublicPEM(t, refresh),
		})
		require.NoError(t, err)

		tok, err := maker.Issue("u1", jwt.Refresh, time.Minute)
		require.NoError(t, err)
		_, ok := maker.Verify(tok, jwt.Access)
		assert.False(t, ok)
	})

	t.Run("broken access key", func(t *testing.T) {
		_, err := newMaker(config.Tokens{AccessPrivateKey: "nope", AccessPublicKey: "nope"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access keys")
	})

	t.Run("broken refresh key", func(t *testing.T) {
		_, err := newMaker(config.Tokens{
			AccessPrivateKey:  jwttest.PrivatePEM(t, access),
			AccessPublicKey:   jwttest.PublicPEM(t, access),
			RefreshPrivateKey: "nope",
			RefreshPublicKey:  "nope",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "refresh keys")
	})
}
