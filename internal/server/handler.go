// Package server exposes the game engine as a JSON API over hertz. Every
// request is executed on the runner goroutine that owns the engine.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"catidle/internal/loop"
	"catidle/internal/metrics"
	"catidle/internal/pet"
)

type Handler struct {
	Runner  *loop.Runner
	Events  *EventLog
	Metrics *metrics.Recorder
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	api := s.Group("/api/pet")
	api.GET("/state", h.state)
	api.GET("/shop", h.shop)
	api.GET("/events", h.events)
	api.GET("/metrics", h.metrics)

	api.POST("/feed", h.feed)
	api.POST("/water", h.water)
	api.POST("/interact", h.interact)
	api.POST("/purchase", h.purchase)
	api.POST("/use", h.use)
	api.POST("/restart", h.restart)
	api.POST("/quit", h.quit)
}

type interactRequest struct {
	Target string `json:"target"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

type purchaseRequest struct {
	ID string `json:"id"`
}

type useRequest struct {
	Slot int `json:"slot"`
}

type eventsResponse struct {
	Events []EventEntry `json:"events"`
	Next   uint64       `json:"next"`
}

func (h Handler) state(c context.Context, ctx *app.RequestContext) {
	h.act(c, ctx, func(*pet.Engine) error { return nil })
}

func (h Handler) shop(c context.Context, ctx *app.RequestContext) {
	var offers []pet.Offer
	if err := h.Runner.Do(c, func(e *pet.Engine) {
		offers = e.Listing()
	}); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"items": offers})
}

func (h Handler) events(_ context.Context, ctx *app.RequestContext) {
	if h.Events == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "event log not configured")
		return
	}
	var since uint64
	if raw := string(ctx.Query("since")); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeErrorBody(ctx, consts.StatusBadRequest, "invalid_since", "since must be a non-negative integer")
			return
		}
		since = n
	}
	entries, next := h.Events.Since(since)
	ctx.JSON(consts.StatusOK, eventsResponse{Events: entries, Next: next})
}

func (h Handler) metrics(_ context.Context, ctx *app.RequestContext) {
	if h.Metrics == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "metrics recorder not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.Metrics.Snapshot())
}

func (h Handler) feed(c context.Context, ctx *app.RequestContext) {
	h.act(c, ctx, (*pet.Engine).Feed)
}

func (h Handler) water(c context.Context, ctx *app.RequestContext) {
	h.act(c, ctx, (*pet.Engine).Water)
}

func (h Handler) interact(c context.Context, ctx *app.RequestContext) {
	body := interactRequest{Target: pet.TargetPet.String()}
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	target, ok := pet.ParseTarget(body.Target)
	if !ok {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_target", "target must be pet, background or button")
		return
	}
	h.act(c, ctx, func(e *pet.Engine) error {
		return e.Interact(target, pet.Point{X: body.X, Y: body.Y})
	})
}

func (h Handler) purchase(c context.Context, ctx *app.RequestContext) {
	var body purchaseRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if body.ID == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_id", "id is required")
		return
	}
	h.act(c, ctx, func(e *pet.Engine) error {
		return e.Purchase(body.ID)
	})
}

func (h Handler) use(c context.Context, ctx *app.RequestContext) {
	var body useRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	h.act(c, ctx, func(e *pet.Engine) error {
		return e.UseItem(body.Slot)
	})
}

func (h Handler) restart(c context.Context, ctx *app.RequestContext) {
	h.act(c, ctx, func(e *pet.Engine) error {
		e.Restart()
		return nil
	})
}

func (h Handler) quit(c context.Context, ctx *app.RequestContext) {
	h.act(c, ctx, func(e *pet.Engine) error {
		if e.GameOver() {
			return pet.ErrGameOver
		}
		e.Quit()
		return nil
	})
}

// act runs fn on the engine and responds with the resulting snapshot
func (h Handler) act(c context.Context, ctx *app.RequestContext, fn func(*pet.Engine) error) {
	var (
		snap   pet.Snapshot
		actErr error
	)
	if err := h.Runner.Do(c, func(e *pet.Engine) {
		actErr = fn(e)
		snap = e.Snapshot()
	}); err != nil {
		writeError(ctx, err)
		return
	}
	if actErr != nil {
		writeError(ctx, actErr)
		return
	}
	ctx.JSON(consts.StatusOK, snap)
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, pet.ErrGameOver):
		writeErrorBody(ctx, consts.StatusConflict, "game_over", err.Error())
	case errors.Is(err, pet.ErrOnCooldown):
		writeErrorBody(ctx, consts.StatusConflict, "on_cooldown", err.Error())
	case errors.Is(err, pet.ErrInventoryFull):
		writeErrorBody(ctx, consts.StatusConflict, "inventory_full", err.Error())
	case errors.Is(err, pet.ErrInsufficientFunds):
		writeErrorBody(ctx, consts.StatusConflict, "insufficient_funds", err.Error())
	case errors.Is(err, pet.ErrEmptySlot):
		writeErrorBody(ctx, consts.StatusConflict, "empty_slot", err.Error())
	case errors.Is(err, pet.ErrIgnoredTarget):
		writeErrorBody(ctx, consts.StatusConflict, "ignored_target", err.Error())
	case errors.Is(err, pet.ErrUnknownItem):
		writeErrorBody(ctx, consts.StatusNotFound, "unknown_item", err.Error())
	case errors.Is(err, loop.ErrStopped),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		writeErrorBody(ctx, consts.StatusServiceUnavailable, "unavailable", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
