package crypto

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T, subject string) []byte {
	t.Helper()
	d, err := NewKeyDeriver(0, "")
	require.NoError(t, err)
	k, err := d.DeriveKey(subject)
	require.NoError(t, err)
	return k
}

func TestEncryptField_RoundTrip(t *testing.T) {
	c := NewFieldCipher()
	key := testKey(t, "subject")

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "text", value: "mild cramps after run", want: "mild cramps after run"},
		{name: "empty string", value: "", want: ""},
		{name: "unicode", value: "résumé 日本 ✓", want: "résumé 日本 ✓"},
		{name: "float", value: 42.5, want: "42.5"},
		{name: "integral float", value: float64(15), want: "15"},
		{name: "int", value: 7, want: "7"},
		{name: "negative int64", value: int64(-3), want: "-3"},
		{name: "uint8", value: uint8(200), want: "200"},
		{name: "json number", value: json.Number("1.25"), want: "1.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := c.EncryptField(tt.value, key)
			require.NoError(t, err)

			got, err := c.DecryptField(env, key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncryptField_UnsupportedType(t *testing.T) {
	c := NewFieldCipher()
	_, err := c.EncryptField(true, testKey(t, "subject"))
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestEncryptField_EnvelopeLayout(t *testing.T) {
	c := NewFieldCipher()
	env, err := c.EncryptField("abc", testKey(t, "subject"))
	require.NoError(t, err)

	blob, err := base64.StdEncoding.DecodeString(env)
	require.NoError(t, err)
	// 12-byte nonce + 3 bytes plaintext + 16-byte tag
	assert.Len(t, blob, 12+3+16)
}

func TestEncryptField_NonceUniqueness(t *testing.T) {
	c := NewFieldCipher()
	key := testKey(t, "subject")

	seen := make(map[string]struct{}, 1000)
	nonces := make(map[string]struct{}, 1000)
	for range 1000 {
		env, err := c.EncryptField("42.5", key)
		require.NoError(t, err)

		_, dup := seen[env]
		require.False(t, dup, "duplicate envelope")
		seen[env] = struct{}{}

		blob, err := base64.StdEncoding.DecodeString(env)
		require.NoError(t, err)
		nonce := string(blob[:12])
		_, dup = nonces[nonce]
		require.False(t, dup, "duplicate nonce")
		nonces[nonce] = struct{}{}
	}
}

func TestDecryptField_CrossSubjectIsolation(t *testing.T) {
	c := NewFieldCipher()
	keyA := testKey(t, "subject-a")
	keyB := testKey(t, "subject-b")

	env, err := c.EncryptField("secret", keyA)
	require.NoError(t, err)

	_, err = c.DecryptField(env, keyB)
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestDecryptField_Failures(t *testing.T) {
	c := NewFieldCipher()
	key := testKey(t, "subject")

	valid, err := c.EncryptField("secret", key)
	require.NoError(t, err)
	blob, err := base64.StdEncoding.DecodeString(valid)
	require.NoError(t, err)

	flipped := append([]byte(nil), blob...)
	flipped[len(flipped)-1] ^= 0x01

	tests := []struct {
		name     string
		envelope string
	}{
		{name: "not base64", envelope: "%%%not-base64%%%"},
		{name: "empty", envelope: ""},
		{name: "truncated", envelope: base64.StdEncoding.EncodeToString(blob[:10])},
		{name: "nonce only", envelope: base64.StdEncoding.EncodeToString(blob[:12])},
		{name: "tampered tag", envelope: base64.StdEncoding.EncodeToString(flipped)},
		{name: "plaintext stored", envelope: "42.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.DecryptField(tt.envelope, key)
			assert.ErrorIs(t, err, ErrDecryption)
			assert.NotErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestFieldCipher_BadKeyIsConfigurationError(t *testing.T) {
	c := NewFieldCipher()

	_, err := c.EncryptField("x", []byte("short"))
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = c.DecryptField("AAAA", nil)
	assert.ErrorIs(t, err, ErrConfiguration)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

func TestEncryptField_RandomSourceFailure(t *testing.T) {
	c := newFieldCipherWithRandom(failingReader{})
	_, err := c.EncryptField("x", testKey(t, "subject"))
	assert.ErrorIs(t, err, ErrConfiguration)
}
