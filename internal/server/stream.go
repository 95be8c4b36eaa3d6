package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/lucidquery/lucid/internal/agent"
)

var streamTracer trace.Tracer = otel.Tracer("lucid/internal/server/stream")

// StreamHandler serves the streaming turn protocol.
type StreamHandler struct {
	Pipeline *agent.Pipeline
	Logger   *log.Logger
}

func (h *StreamHandler) Register(g *echo.Group, secret []byte) {
	g.Use(func(next echo.HandlerFunc) echo.HandlerFunc { return withAuth(next, secret) })
	g.POST("/stream", h.stream)
}

// eventWriter frames stream events as newline-delimited JSON, flushing
// per event. Headers are written lazily so a pre-stream failure can still
// surface as a plain HTTP error.
type eventWriter struct {
	resp    *echo.Response
	flusher http.Flusher
	started bool
}

func (w *eventWriter) emit(event agent.StreamEvent) error {
	if !w.started {
		w.resp.Header().Set(echo.HeaderContentType, "application/x-ndjson")
		w.resp.Header().Set(echo.HeaderCacheControl, "no-cache")
		w.resp.Header().Set("Connection", "keep-alive")
		w.resp.WriteHeader(http.StatusOK)
		w.started = true
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := w.resp.Write(append(data, '\n')); err != nil {
		return err
	}
	w.flusher.Flush()
	return nil
}

// Chat stream
//
//	@Summary		Streaming conversational turn
//	@Description	Emits newline-delimited StreamEvent JSON objects; the connection closes after the terminal event
//	@Tags			chat
//	@Security		BearerAuth
//	@Security		CookieAuth
//	@Accept			json
//	@Param			payload	body	StreamRequest	true	"Turn payload"
//	@Produce		application/x-ndjson
//	@Success		200	{string}	string
//	@Failure		400	{object}	HTTPError
//	@Failure		500	{object}	HTTPError
//	@Failure		503	{object}	HTTPError
//	@Router			/api/chat/stream [post]
func (h *StreamHandler) stream(c echo.Context) error {
	req := c.Request()
	ctx := req.Context()
	ctx, span := streamTracer.Start(ctx, "StreamHandler.stream")
	defer span.End()
	c.SetRequest(req.WithContext(ctx))

	var turn StreamRequest
	if err := c.Bind(&turn); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if turn.Input == "" {
		span.SetStatus(codes.Error, "input required")
		return echo.NewHTTPError(http.StatusBadRequest, "input required")
	}
	span.SetAttributes(attribute.Int("input_length", len(turn.Input)))

	resp := c.Response()
	flusher, ok := resp.Writer.(http.Flusher)
	if !ok {
		span.SetStatus(codes.Error, "streaming unsupported")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "streaming unsupported")
	}
	writer := &eventWriter{resp: resp, flusher: flusher}

	// The request context is cancelled when the consumer disconnects,
	// which terminates the pipeline at its next suspension point.
	if err := h.Pipeline.Run(ctx, turn.Input, turn.MessageHistory, writer.emit); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if writer.started {
			// Mid-stream failures can't change the status line; log and close.
			h.Logger.Printf("turn aborted mid-stream: %v", err)
			return nil
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return nil
}
