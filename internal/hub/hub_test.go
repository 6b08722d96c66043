package hub

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHub_Broadcast(t *testing.T) {
	h := NewHub(zap.NewNop())
	a := h.Subscribe(1)
	b := h.Subscribe(1)
	require.Equal(t, 2, h.Len())

	h.Broadcast(Event{Type: "game.deleted", Payload: map[string]string{"id": "4"}})

	for _, client := range []Client{a, b} {
		msg := <-client
		var got Event
		require.NoError(t, json.Unmarshal(msg, &got))
		assert.Equal(t, "game.deleted", got.Type)
		assert.Equal(t, map[string]interface{}{"id": "4"}, got.Payload)
	}
}

func TestHub_SlowClientDoesNotBlock(t *testing.T) {
	h := NewHub(nil)
	client := h.Subscribe(1)

	h.Broadcast(Event{Type: "first"})
	h.Broadcast(Event{Type: "second"})

	var got Event
	require.NoError(t, json.Unmarshal(<-client, &got))
	assert.Equal(t, "first", got.Type)
	assert.Len(t, client, 0)
}

func TestHub_Unsubscribe(t *testing.T) {
	h := NewHub(nil)
	client := h.Subscribe(1)

	h.Unsubscribe(client)
	h.Unsubscribe(client)

	_, open := <-client
	assert.False(t, open)
	assert.Equal(t, 0, h.Len())

	h.Broadcast(Event{Type: "ignored"})
}

func TestHub_EncodeFailure(t *testing.T) {
	h := NewHub(nil)
	client := h.Subscribe(1)

	h.Broadcast(Event{Type: "bad", Payload: make(chan int)})
	assert.Len(t, client, 0)
}
