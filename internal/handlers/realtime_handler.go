package handlers

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/crm-manager/internal/httperr"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
)

const keepAlive = 25 * time.Second

type RealtimeHandler struct {
	broker realtime.Broker
}

func NewRealtimeHandler(broker realtime.Broker) *RealtimeHandler {
	return &RealtimeHandler{broker: broker}
}

// Stream pushes change events as server-sent events. ?tables=clients,payments
// narrows the feed; it is closed when the client goes away.
func (h *RealtimeHandler) Stream(c *gin.Context) {
	var tables []string
	for _, t := range strings.Split(c.Query("tables"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			tables = append(tables, t)
		}
	}

	if h.broker == nil {
		httperr.Unavailable(c, "realtime_unavailable", "Atualizações em tempo real indisponíveis.")
		return
	}

	events, err := h.broker.Subscribe(c.Request.Context(), tables...)
	if err != nil {
		httperr.Unavailable(c, "realtime_unavailable", "Atualizações em tempo real indisponíveis.")
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("change", ev)
			return true
		case <-ticker.C:
			c.SSEvent("ping", time.Now().UTC().Format(time.RFC3339))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
