package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"merchflow/internal/broadcast"
	"merchflow/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// streamKeepAlive is how often a comment line is written to hold idle
// connections open through proxies.
const streamKeepAlive = 30 * time.Second

// StreamEvent is the wire shape of one server-sent event.
type StreamEvent struct {
	Type          string    `json:"type"`
	EntityType    string    `json:"entity_type"`
	EntityID      string    `json:"entity_id"`
	ActorID       string    `json:"actor_id"`
	PreviousState string    `json:"previous_state,omitempty"`
	NewState      string    `json:"new_state,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Stream handles GET /api/v1/stream. It bridges a broadcast subscription to
// a text/event-stream response. The subscription is scoped to the actor's
// organization; the channel parameter narrows it to one user or one record.
func (s *Server) Stream(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	kind := broadcast.ChannelKind(ctx.QueryParam("channel"))
	filter := ctx.QueryParam("id")

	switch kind {
	case "", broadcast.ChannelOrganization:
		kind = broadcast.ChannelOrganization
		filter = ""
	case broadcast.ChannelUser:
		if filter == "" {
			filter = actor.UserID.String()
		}
	case broadcast.ChannelRecord:
		if filter == "" {
			return badRequest(ctx, "record channel requires an id")
		}
	default:
		return badRequest(ctx, "unknown channel")
	}

	sub := s.dispatcher.Subscribe(actor.OrganizationID, kind, filter)
	defer sub.Close()

	response := ctx.Response()
	response.Header().Set(echo.HeaderContentType, "text/event-stream")
	response.Header().Set(echo.HeaderCacheControl, "no-store")
	response.Header().Set(echo.HeaderConnection, "keep-alive")
	response.WriteHeader(http.StatusOK)
	response.Flush()

	keepAlive := time.NewTicker(streamKeepAlive)
	defer keepAlive.Stop()

	done := ctx.Request().Context().Done()
	for {
		select {
		case <-done:
			return nil
		case <-keepAlive.C:
			if _, err = fmt.Fprint(response, ": keep-alive\n\n"); err != nil {
				return nil
			}
			response.Flush()
		case event, ok := <-sub.C():
			if !ok {
				return nil
			}
			if err = writeStreamEvent(response, event); err != nil {
				return nil
			}
			response.Flush()
		}
	}
}

func writeStreamEvent(response *echo.Response, event ports.Event) error {
	data, err := json.Marshal(StreamEvent{
		Type:          event.Type,
		EntityType:    event.EntityType,
		EntityID:      event.EntityID.String(),
		ActorID:       event.ActorID.String(),
		PreviousState: event.PreviousState,
		NewState:      event.NewState,
		OccurredAt:    event.OccurredAt,
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(response, "event: %s\ndata: %s\n\n", event.Type, data)
	return err
}
