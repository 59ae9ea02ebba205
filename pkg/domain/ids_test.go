package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "penledger/pkg/domain-errors"
)

// TestParseAccountID validates the parsing invariant:
// "IDs must be valid, non-empty, non-nil UUIDs"
func TestParseAccountID(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseAccountID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseAccountID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseAccountID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts and round-trips a valid UUID", func(t *testing.T) {
		raw := uuid.NewString()
		account, err := ParseAccountID(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, account.String())
		assert.False(t, account.IsNil())
	})
}

func TestAccountIDText(t *testing.T) {
	account := AccountID(uuid.New())

	raw, err := account.MarshalText()
	require.NoError(t, err)

	var decoded AccountID
	require.NoError(t, decoded.UnmarshalText(raw))
	assert.Equal(t, account, decoded)

	var bad AccountID
	assert.Error(t, bad.UnmarshalText([]byte("nope")))
}
