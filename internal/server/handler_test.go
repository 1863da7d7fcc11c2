package server

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catidle/internal/loop"
	"catidle/internal/metrics"
	"catidle/internal/pet"
	"catidle/internal/storage"
)

// slowPeriods keeps timers out of the way of request assertions
var slowPeriods = loop.Periods{
	Decay:        time.Hour,
	Coin:         time.Hour,
	Autosave:     time.Hour,
	CooldownStep: time.Hour,
}

func newTestHandler(t *testing.T) Handler {
	t.Helper()
	events := NewEventLog(0)
	recorder := metrics.NewRecorder()
	e := pet.NewEngine(pet.DefaultConfig(), storage.NewMemorySlot(),
		pet.WithNotifier(events), pet.WithNotifier(recorder))
	r := loop.NewRunner(e, loop.WithPeriods(slowPeriods))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = r.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	return Handler{Runner: r, Events: events, Metrics: recorder}
}

func call(h func(context.Context, *app.RequestContext), body string) *app.RequestContext {
	ctx := &app.RequestContext{}
	if body != "" {
		ctx.Request.SetBody([]byte(body))
	}
	h(context.Background(), ctx)
	return ctx
}

func decodeSnapshot(t *testing.T, ctx *app.RequestContext) pet.Snapshot {
	t.Helper()
	require.Equal(t, consts.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))
	var snap pet.Snapshot
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &snap))
	return snap
}

func errorCode(t *testing.T, ctx *app.RequestContext) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &body))
	return body.Error.Code
}

func TestState(t *testing.T) {
	h := newTestHandler(t)
	snap := decodeSnapshot(t, call(h.state, ""))
	assert.Equal(t, pet.DefaultHunger, snap.Hunger)
	assert.Equal(t, pet.DefaultInventorySize, snap.Capacity)
	assert.False(t, snap.GameOver)
}

func TestFeedThenCooldownConflict(t *testing.T) {
	h := newTestHandler(t)
	require.Equal(t, consts.StatusOK, call(h.restart, "").Response.StatusCode())

	snap := decodeSnapshot(t, call(h.feed, ""))
	assert.True(t, snap.Cooldowns[pet.ActionFeed].Active)

	ctx := call(h.feed, "")
	assert.Equal(t, consts.StatusConflict, ctx.Response.StatusCode())
	assert.Equal(t, "on_cooldown", errorCode(t, ctx))

	snap = decodeSnapshot(t, call(h.water, ""))
	assert.True(t, snap.Cooldowns[pet.ActionWater].Active)
}

func TestInteract(t *testing.T) {
	h := newTestHandler(t)

	ctx := call(h.interact, `{"target":"button"}`)
	assert.Equal(t, consts.StatusConflict, ctx.Response.StatusCode())
	assert.Equal(t, "ignored_target", errorCode(t, ctx))

	ctx = call(h.interact, `{"target":"sofa"}`)
	assert.Equal(t, consts.StatusBadRequest, ctx.Response.StatusCode())

	ctx = call(h.interact, `{"target":`)
	assert.Equal(t, consts.StatusBadRequest, ctx.Response.StatusCode())
	assert.Equal(t, "invalid_json", errorCode(t, ctx))

	decodeSnapshot(t, call(h.interact, `{"target":"pet","x":4,"y":2}`))
}

func TestPurchaseAndUse(t *testing.T) {
	h := newTestHandler(t)

	ctx := call(h.purchase, `{"id":"treat"}`)
	assert.Equal(t, consts.StatusConflict, ctx.Response.StatusCode())
	assert.Equal(t, "insufficient_funds", errorCode(t, ctx))

	ctx = call(h.purchase, `{"id":"catnip"}`)
	assert.Equal(t, consts.StatusNotFound, ctx.Response.StatusCode())

	ctx = call(h.purchase, `{}`)
	assert.Equal(t, consts.StatusBadRequest, ctx.Response.StatusCode())

	ctx = call(h.use, `{"slot":0}`)
	assert.Equal(t, consts.StatusConflict, ctx.Response.StatusCode())
	assert.Equal(t, "empty_slot", errorCode(t, ctx))

	shop := call(h.shop, "")
	require.Equal(t, consts.StatusOK, shop.Response.StatusCode())
	var listing struct {
		Items []pet.Offer `json:"items"`
	}
	require.NoError(t, json.Unmarshal(shop.Response.Body(), &listing))
	assert.Len(t, listing.Items, len(pet.DefaultCatalog()))
	for _, o := range listing.Items {
		assert.False(t, o.Affordable, o.Item.ID)
	}
}

func TestQuitThenActionsRejected(t *testing.T) {
	h := newTestHandler(t)

	snap := decodeSnapshot(t, call(h.quit, ""))
	assert.True(t, snap.GameOver)

	ctx := call(h.quit, "")
	assert.Equal(t, "game_over", errorCode(t, ctx))

	ctx = call(h.water, "")
	assert.Equal(t, consts.StatusConflict, ctx.Response.StatusCode())
	assert.Equal(t, "game_over", errorCode(t, ctx))

	ctx = call(h.purchase, `{"id":"treat"}`)
	assert.Equal(t, consts.StatusConflict, ctx.Response.StatusCode())
	assert.Equal(t, "game_over", errorCode(t, ctx))
	assert.Empty(t, decodeSnapshot(t, call(h.state, "")).Inventory)

	snap = decodeSnapshot(t, call(h.restart, ""))
	assert.False(t, snap.GameOver)

	m := call(h.metrics, "")
	require.Equal(t, consts.StatusOK, m.Response.StatusCode())
	var counts metrics.Snapshot
	require.NoError(t, json.Unmarshal(m.Response.Body(), &counts))
	assert.Equal(t, uint64(1), counts.Quits)
}

func TestEventsSince(t *testing.T) {
	h := newTestHandler(t)
	decodeSnapshot(t, call(h.interact, `{"target":"pet"}`))

	ctx := &app.RequestContext{}
	ctx.Request.SetRequestURI("/api/pet/events?since=0")
	h.events(context.Background(), ctx)
	require.Equal(t, consts.StatusOK, ctx.Response.StatusCode())

	var resp struct {
		Events []struct {
			Seq  uint64 `json:"seq"`
			Type string `json:"type"`
		} `json:"events"`
		Next uint64 `json:"next"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	require.NotEmpty(t, resp.Events)
	assert.Equal(t, resp.Next, resp.Events[len(resp.Events)-1].Seq)
	assert.Equal(t, "stats_changed", resp.Events[len(resp.Events)-1].Type)

	ctx = &app.RequestContext{}
	ctx.Request.SetRequestURI("/api/pet/events?since=abc")
	h.events(context.Background(), ctx)
	assert.Equal(t, consts.StatusBadRequest, ctx.Response.StatusCode())
}

func TestEventLogIsBounded(t *testing.T) {
	l := NewEventLog(3)
	for i := 0; i < 5; i++ {
		l.Notify(pet.CoinsChanged{Coins: i})
	}
	entries, next := l.Since(0)
	require.Len(t, entries, 3)
	assert.Equal(t, uint64(3), entries[0].Seq)
	assert.Equal(t, uint64(5), next)

	entries, _ = l.Since(next)
	assert.Empty(t, entries)
}
