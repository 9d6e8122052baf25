package handler

import (
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/parkreg-io/parkreg/internal/middleware"
	"github.com/parkreg-io/parkreg/internal/notify"
)

const heartbeatInterval = 25 * time.Second

// EventsHandler streams the project change feed over server-sent events.
type EventsHandler struct {
	hub *notify.Hub
}

func NewEventsHandler(hub *notify.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// StreamEvents godoc
//
//	@Summary		Project change feed
//	@Description	Server-sent events stream; reconnect with Last-Event-ID to replay missed events
//	@Tags			events
//	@Produce		text/event-stream
//	@Param			projectID	path	string	true	"Project ID"
//	@Security		BearerAuth
//	@Success		200	{string}	string	"event stream"
//	@Router			/projects/{projectID}/events [get]
func (h *EventsHandler) StreamEvents(c *gin.Context) {
	projectID := middleware.GetProjectID(c)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ch, unsub := h.hub.Subscribe(projectID)
	defer unsub()

	// replay before live delivery so the client sees a gap-free sequence
	if lastID := c.GetHeader("Last-Event-ID"); lastID != "" {
		from := notify.ParseLastEventID(lastID) + 1
		missed, err := h.hub.ReplayFrom(c.Request.Context(), projectID, from)
		if err == nil {
			for _, ev := range missed {
				writeEvent(c.Writer, ev)
			}
			c.Writer.Flush()
		}
	}

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			writeEvent(w, ev)
			return true
		case <-ticker.C:
			fmt.Fprint(w, ": ping\n\n")
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func writeEvent(w io.Writer, ev notify.Event) {
	fmt.Fprintf(w, "id: %d\nevent: change\ndata: {\"table\":%q,\"action\":%q,\"row_id\":%q}\n\n",
		ev.ID, ev.Table, ev.Action, ev.RowID)
}
