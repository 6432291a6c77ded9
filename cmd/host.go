package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	config "github.com/tupyy/editor-heartbeat/configuration"
	httpClient "github.com/tupyy/editor-heartbeat/internal/client/http"
	"github.com/tupyy/editor-heartbeat/internal/edge"
	"github.com/tupyy/editor-heartbeat/internal/events"
	"github.com/tupyy/editor-heartbeat/internal/heartbeat"
	"github.com/tupyy/editor-heartbeat/internal/metrics"
	"github.com/tupyy/editor-heartbeat/internal/settings"
	"github.com/tupyy/editor-heartbeat/internal/vcs"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	reloadAction = "reload"

	// drainTimeout bounds the time spent waiting for pending requests once the input is exhausted.
	drainTimeout = 10 * time.Second
)

// action is either a host event or a reload of the host.
type action struct {
	event  events.Event
	reload bool
}

func parseAction(line string) (action, bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return action{}, false, nil
	}

	path := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))

	if strings.EqualFold(fields[0], reloadAction) {
		return action{reload: true}, true, nil
	}

	kind, err := events.ParseKind(fields[0])
	if err != nil {
		return action{}, false, err
	}

	return action{event: events.Event{Kind: kind, Path: path}}, true, nil
}

func readActions(ctx context.Context, r io.Reader, actions chan<- action) {
	defer close(actions)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		a, ok, err := parseAction(scanner.Text())
		if err != nil {
			zap.S().Warnw("invalid event", "error", err, "line", scanner.Text())
			continue
		}

		if !ok {
			continue
		}

		select {
		case actions <- a:
		case <-ctx.Done():
			return
		}
	}

	if err := scanner.Err(); err != nil {
		zap.S().Errorw("cannot read events", "error", err)
	}
}

// host plays the role of the editor: it keeps track of the active scene and sends events.
type host struct {
	table       *events.Table
	controller  *edge.Controller
	activeScene string
}

func newHost() (*host, error) {
	store, err := settings.NewStore(config.GetSettingsFile(), config.GetAppName())
	if err != nil {
		return nil, err
	}

	identity := heartbeat.NewIdentity(config.GetEditor(), config.GetLanguage())
	resolver := vcs.New(store, vcs.WithDirectory(config.GetWorkDir()))
	builder := heartbeat.NewBuilder(store, resolver, identity)

	client, err := httpClient.New(httpClient.UserAgent(config.GetPluginVersion(), identity.OperatingSystem, identity.Editor))
	if err != nil {
		return nil, err
	}

	h := &host{
		table:      events.NewTable(),
		controller: edge.New(client, store, builder),
	}
	h.controller.Link(h.table)

	if !store.Bool(settings.Enabled) {
		zap.S().Warnw("heartbeats are disabled", "settings file", config.GetSettingsFile())
	}

	return h, nil
}

func (h *host) dispatch(a action) {
	if a.reload {
		zap.S().Info("host reloaded")
		h.controller.Relink(h.table)
		h.table.Emit(events.Event{Kind: events.AfterReload, Path: h.activeScene})
		return
	}

	e := a.event
	switch e.Kind {
	case events.SceneOpened, events.SceneSaved:
		if e.Path != "" {
			h.activeScene = e.Path
		}
	case events.SceneCreated:
		// a new scene is not saved yet
		h.activeScene = e.Path
	}

	if e.Path == "" {
		e.Path = h.activeScene
	}

	h.table.Emit(e)

	if e.Kind == events.SceneClosing {
		h.activeScene = ""
	}
}

// loop runs until ctx is done or until actions is closed and every pending request completed.
func (h *host) loop(ctx context.Context, actions <-chan action, tickPeriod time.Duration) error {
	ticker := time.NewTicker(tickPeriod)
	defer ticker.Stop()

	var drainDeadline <-chan time.Time

	for {
		select {
		case a, ok := <-actions:
			if !ok {
				actions = nil
				drainDeadline = time.After(drainTimeout)
				break
			}
			h.dispatch(a)
		case <-ticker.C:
			h.table.Emit(events.Event{Kind: events.Update, Path: h.activeScene})
			if actions == nil && h.controller.Pending() == 0 {
				return nil
			}
		case <-drainDeadline:
			return fmt.Errorf("%d heartbeat requests still pending", h.controller.Pending())
		case <-ctx.Done():
			return nil
		}
	}
}

func run(ctx context.Context, actions <-chan action) error {
	h, err := newHost()
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	loopCtx, cancelLoop := context.WithCancel(ctx)
	defer cancelLoop()

	if address := config.GetMetricsAddress(); address != "" {
		g.Go(func() error {
			return metrics.Serve(loopCtx, address)
		})
	}

	g.Go(func() error {
		// stop the metrics server when the loop ends
		defer cancelLoop()
		return h.loop(loopCtx, actions, config.GetTickPeriod())
	})

	return g.Wait()
}
