package handler

import (
	"io"
	"net/http"
	"slices"

	"gamecatalog/backend/internal/hub"

	"github.com/gin-gonic/gin"
)

// Topics are the event feeds clients can subscribe to.
var Topics = []string{"developers", "games", "consoles", "accessories", "reviews", hub.TopicAll}

const clientBuffer = 16

// StreamEvents godoc
// @Summary      Catalog change feed
// @Description  Server-sent events for catalog changes. Each event's data is a JSON object with type, topic and payload.
// @Tags         events
// @Produce      text/event-stream
// @Param        topic query string false "developers, games, consoles, accessories, reviews or all" default(all)
// @Success      200 {object} hub.Event
// @Failure      400 {object} ErrorResponse "Unknown topic"
// @Router       /events [get]
func (h *Handler) StreamEvents(c *gin.Context) {
	topic := c.DefaultQuery("topic", hub.TopicAll)
	if !slices.Contains(Topics, topic) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown topic"})
		return
	}

	client := make(hub.Client, clientBuffer)
	h.events.Subscribe(topic, client)
	defer h.events.Unsubscribe(topic, client)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("message", string(msg))
			return true
		case <-ctx.Done():
			return false
		}
	})
}
