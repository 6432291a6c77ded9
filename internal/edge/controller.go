package edge

import (
	"context"

	"github.com/tupyy/editor-heartbeat/internal/entity"
	"github.com/tupyy/editor-heartbeat/internal/events"
	"github.com/tupyy/editor-heartbeat/internal/heartbeat"
	"github.com/tupyy/editor-heartbeat/internal/metrics"
	"github.com/tupyy/editor-heartbeat/internal/scheduler"
	"github.com/tupyy/editor-heartbeat/internal/settings"
	"go.uber.org/zap"
)

const (
	heartbeatHandler = "edge.heartbeat"
	tickHandler      = "edge.tick"
)

//go:generate mockgen -package=edge -destination=mock_client.go --build_flags=--mod=mod . Client
type Client interface {
	// PostHeartbeat sends the heartbeat in background. It must not block.
	PostHeartbeat(ctx context.Context, heartbeat entity.Heartbeat, creds entity.Credentials) *scheduler.Future[entity.HeartbeatResult]
}

type Builder interface {
	Build(activePath string, isSave bool) entity.Heartbeat
}

// Controller decides which heartbeats are sent and keeps track of the last one acknowledged.
// All its methods are meant to be called from the host's tick goroutine.
type Controller struct {
	client   Client
	settings settings.Provider
	builder  Builder
	queue    *scheduler.Queue[entity.HeartbeatResult]

	// lastSent is written only by the completion callback
	lastSent entity.HeartbeatResponse
}

func New(client Client, s settings.Provider, builder Builder) *Controller {
	return &Controller{
		client:   client,
		settings: s,
		builder:  builder,
		queue:    scheduler.NewQueue[entity.HeartbeatResult](),
	}
}

// SendHeartbeat builds a heartbeat for activePath and sends it if the throttle lets it through.
// forced is set for saves: the heartbeat is sent regardless of the throttle and marked as a write.
// It returns true if a request has been enqueued.
func (c *Controller) SendHeartbeat(activePath string, forced bool) bool {
	if !c.settings.Bool(settings.Enabled) {
		return false
	}

	hb := c.builder.Build(activePath, forced)

	if !heartbeat.ShouldSend(hb, c.lastSent, forced) {
		metrics.HeartbeatsThrottled.Inc()
		return false
	}

	creds := entity.Credentials{
		BaseURL: c.settings.String(settings.BaseURL),
		APIKey:  c.settings.String(settings.ApiKey),
	}

	future := c.client.PostHeartbeat(context.Background(), hb, creds)
	c.queue.Enqueue(future, c.onComplete(hb))
	metrics.PendingRequests.Set(float64(c.queue.Len()))

	return true
}

// Tick polls one pending request.
func (c *Controller) Tick() {
	if c.queue.Tick() {
		metrics.PendingRequests.Set(float64(c.queue.Len()))
	}
}

func (c *Controller) LastSent() entity.HeartbeatResponse {
	return c.lastSent
}

// Pending returns the number of requests not yet completed.
func (c *Controller) Pending() int {
	return c.queue.Len()
}

// Link subscribes the controller to the host events.
func (c *Controller) Link(table *events.Table) {
	table.Subscribe(events.Update, tickHandler, func(events.Event) { c.Tick() })

	for _, kind := range events.Kinds() {
		if kind == events.Update {
			continue
		}
		table.Subscribe(kind, heartbeatHandler, c.handle)
	}
}

func (c *Controller) Unlink(table *events.Table) {
	table.Unsubscribe(events.Update, tickHandler)

	for _, kind := range events.Kinds() {
		table.Unsubscribe(kind, heartbeatHandler)
	}
}

// Relink unlinks then links the controller. It is called after the host reloaded.
func (c *Controller) Relink(table *events.Table) {
	c.Unlink(table)
	c.Link(table)
}

func (c *Controller) handle(e events.Event) {
	c.SendHeartbeat(e.Path, e.Kind == events.SceneSaved)
}

func (c *Controller) onComplete(hb entity.Heartbeat) func(entity.HeartbeatResult) {
	return func(result entity.HeartbeatResult) {
		if result.Failed() {
			metrics.HeartbeatsFailed.Inc()
			zap.S().Errorw("cannot send heartbeat", "error", result.Error, "entity", hb.Entity)
			return
		}

		metrics.HeartbeatsSent.Inc()
		c.lastSent = result.Value

		zap.S().Debugw("heartbeat sent", "id", result.Value.ID, "entity", result.Value.Entity, "is_write", hb.IsWrite)
	}
}
