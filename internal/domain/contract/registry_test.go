package contract

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClauseRegistry_Decode(t *testing.T) {
	registry := NewClauseRegistry()

	t.Run("decodes an entity clause payload", func(t *testing.T) {
		entityID := uuid.New()
		raw := []byte(`{"action":"add","new_entity_id":"` + entityID.String() + `"}`)

		data, err := registry.Decode(ClauseKindEntity, raw)
		require.NoError(t, err)

		payload, ok := data.(*EntityClauseData)
		require.True(t, ok)
		assert.Equal(t, ActionAdd, payload.Action)
		assert.Equal(t, entityID, payload.NewEntityID)
		assert.Nil(t, payload.OldEntityID)
	})

	t.Run("decodes an expiry clause payload", func(t *testing.T) {
		raw := []byte(`{"expiry_type":"fixed_date","expiry_date":"2030-12-31T00:00:00Z"}`)

		data, err := registry.Decode(ClauseKindExpiry, raw)
		require.NoError(t, err)

		payload, ok := data.(*ExpiryClauseData)
		require.True(t, ok)
		assert.Equal(t, ExpiryFixedDate, payload.ExpiryType)
		require.NotNil(t, payload.ExpiryDate)
		assert.Equal(t, time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC), *payload.ExpiryDate)
	})

	t.Run("empty payload yields the zero variant", func(t *testing.T) {
		data, err := registry.Decode(ClauseKindText, nil)
		require.NoError(t, err)
		assert.Equal(t, ClauseKindText, data.Kind())
	})

	t.Run("unregistered kind fails", func(t *testing.T) {
		_, err := registry.Decode(ClauseKind("clause_mystery"), []byte(`{}`))
		assert.Error(t, err)
	})

	t.Run("malformed payload fails", func(t *testing.T) {
		_, err := registry.Decode(ClauseKindEntity, []byte(`{not json`))
		assert.Error(t, err)
	})
}

func TestClauseRegistry_Encode(t *testing.T) {
	registry := NewClauseRegistry()

	t.Run("round trips through decode", func(t *testing.T) {
		linked := uuid.New()
		original := &ExpiryClauseData{
			ExpiryType:       ExpiryLinkedToContract,
			LinkedContractID: &linked,
		}

		kind, raw, err := registry.Encode(original)
		require.NoError(t, err)
		assert.Equal(t, ClauseKindExpiry, kind)

		decoded, err := registry.Decode(kind, raw)
		require.NoError(t, err)
		assert.Equal(t, original, decoded)
	})

	t.Run("nil payload fails", func(t *testing.T) {
		_, _, err := registry.Encode(nil)
		assert.Error(t, err)
	})
}

func TestClauseRegistry_Kinds(t *testing.T) {
	registry := NewClauseRegistry()
	kinds := registry.Kinds()

	assert.Equal(t, []ClauseKind{
		ClauseKindEntity,
		ClauseKindExpiry,
		ClauseKindScope,
		ClauseKindTermination,
		ClauseKindText,
	}, kinds)
}
