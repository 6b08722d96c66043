package store

import (
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDGenerator(t *testing.T) {
	for _, strategy := range []string{"", NumericIDs, UUIDs} {
		gen, err := NewIDGenerator(strategy)
		require.NoError(t, err, strategy)
		require.NotNil(t, gen)
	}

	_, err := NewIDGenerator("snowflake")
	require.Error(t, err)
}

func TestNumericGenerator(t *testing.T) {
	gen, err := NewIDGenerator(NumericIDs)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		id, err := gen.NewID(func(string) bool { return false })
		require.NoError(t, err)
		n, err := strconv.Atoi(id)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 10000)
	}
}

func TestNumericGenerator_Exhausted(t *testing.T) {
	gen := &NumericGenerator{Intn: func(int) int { return 7 }}
	_, err := gen.NewID(func(id string) bool { return id == "7" })
	require.ErrorIs(t, err, ErrIDSpaceExhausted)
}

func TestUUIDGenerator(t *testing.T) {
	gen := UUIDGenerator{}
	id, err := gen.NewID(func(string) bool { return false })
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)

	_, err = gen.NewID(func(string) bool { return true })
	assert.ErrorIs(t, err, ErrIDSpaceExhausted)
}
