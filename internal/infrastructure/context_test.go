package infrastructure

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTraceID(t *testing.T) {
	id := GenerateTraceID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.NotEqual(t, id, GenerateTraceID())
}

func TestEnsureTraceID(t *testing.T) {
	t.Run("generates when absent", func(t *testing.T) {
		ctx := EnsureTraceID(context.Background())
		assert.NotEmpty(t, GetTraceID(ctx))
	})

	t.Run("preserves an existing trace id", func(t *testing.T) {
		ctx := WithTraceID(context.Background(), "fixed-id")
		assert.Equal(t, "fixed-id", GetTraceID(EnsureTraceID(ctx)))
	})
}
