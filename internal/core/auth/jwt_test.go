package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTer(ttl time.Duration) *JWTer {
	return &JWTer{Secret: []byte("k"), Issuer: "bucketlist", TTL: ttl}
}

func TestIssueAndParse(t *testing.T) {
	j := newJWTer(7 * 24 * time.Hour)
	tok, exp, err := j.Issue("user-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), exp, 5*time.Second)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", c.UID)
}

func TestParse_Expired(t *testing.T) {
	j := newJWTer(-2 * time.Minute)
	tok, _, err := j.Issue("user-1")
	require.NoError(t, err)
	_, err = j.Parse(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParse_WrongSecretOrIssuer(t *testing.T) {
	tok, _, err := newJWTer(time.Hour).Issue("user-1")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("other"), Issuer: "bucketlist", TTL: time.Hour}
	_, err = other.Parse(tok)
	assert.Error(t, err)

	otherIss := &JWTer{Secret: []byte("k"), Issuer: "someone-else", TTL: time.Hour}
	_, err = otherIss.Parse(tok)
	assert.Error(t, err)
}

func TestParse_RejectsNoneAlg(t *testing.T) {
	claims := Claims{UID: "u", RegisteredClaims: jwt.RegisteredClaims{
		Issuer: "bucketlist", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = newJWTer(time.Hour).Parse(tok)
	assert.Error(t, err)
}
