package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSalt() []byte {
	salt := make([]byte, SaltSize)
	for i := range salt {
		salt[i] = byte(i) // заполняем тестовыми данными
	}
	return salt
}

func TestGenerateSalt(t *testing.T) {
	a, err := GenerateSalt()
	require.NoError(t, err)
	b, err := GenerateSalt()
	require.NoError(t, err)

	assert.Len(t, a, SaltSize)
	assert.NotEqual(t, a, b, "соли должны различаться")
}

func TestDeriveKey(t *testing.T) {
	tests := []struct {
		name       string
		passphrase string
		errMsg     string
		saltLength int
		wantErr    bool
	}{
		{name: "successful derivation", passphrase: "correct horse", saltLength: SaltSize},
		{name: "empty passphrase", passphrase: "", saltLength: SaltSize, wantErr: true, errMsg: "passphrase cannot be empty"},
		{name: "invalid salt length", passphrase: "x", saltLength: 16, wantErr: true, errMsg: "salt must be"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := DeriveKey(tt.passphrase, make([]byte, tt.saltLength), PurposeStore)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Len(t, key, KeySize)
		})
	}
}

func TestDeriveKey_Determinism(t *testing.T) {
	a, err := DeriveKey("pass", testSalt(), PurposeStore)
	require.NoError(t, err)
	b, err := DeriveKey("pass", testSalt(), PurposeStore)
	require.NoError(t, err)
	other, err := DeriveKey("pass", testSalt(), "other")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, other, "разные назначения дают разные ключи")
}

func TestSealer(t *testing.T) {
	key, err := DeriveKey("pass", testSalt(), PurposeStore)
	require.NoError(t, err)
	s, err := NewSealer(key)
	require.NoError(t, err)

	sealed, err := s.Seal([]byte(`{"Name":"Ann"}`), []byte("Acme/Person/42"))
	require.NoError(t, err)

	plain, err := s.Open(sealed, []byte("Acme/Person/42"))
	require.NoError(t, err)
	assert.Equal(t, `{"Name":"Ann"}`, string(plain))

	_, err = s.Open(sealed, []byte("Acme/Person/43"))
	assert.Error(t, err, "значение привязано к ключу")

	sealed[len(sealed)-1] ^= 0xff
	_, err = s.Open(sealed, []byte("Acme/Person/42"))
	assert.Error(t, err)

	_, err = s.Open([]byte("short"), nil)
	assert.Error(t, err)

	_, err = NewSealer(make([]byte, 16))
	assert.Error(t, err)
}

func TestHashBody(t *testing.T) {
	h := HashBody([]byte("hello"))
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", h)
	assert.True(t, VerifyBodyHash([]byte("hello"), h))
	assert.False(t, VerifyBodyHash([]byte("hello!"), h))
}
