package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gamereviews/backend/internal/hub"
)

const eventBuffer = 16

// StreamEvents sends every game mutation to the client as server-sent events
// until the client goes away.
func (h *Handler) StreamEvents(c *gin.Context) {
	client := h.Hub.Subscribe(eventBuffer)
	defer h.Hub.Unsubscribe(client)

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("game", string(msg))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// ResetStore restores the seed rows.
func (h *Handler) ResetStore(c *gin.Context) {
	if err := h.Store.Reset(c.Request.Context()); err != nil {
		if h.Logger != nil {
			h.Logger.Error("Failed to reset store", zap.Error(err))
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to reset store"})
		return
	}
	h.Hub.Broadcast(hub.Event{Type: "games.reset"})
	c.JSON(http.StatusOK, gin.H{"message": "Store reset"})
}

// Ping is the health check.
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
	})
}
