package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const namespace = "editor_heartbeat"

var (
	HeartbeatsSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sent_total",
		Help:      "Number of heartbeats acknowledged by the server.",
	})

	HeartbeatsThrottled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "throttled_total",
		Help:      "Number of heartbeats dropped by the throttle.",
	})

	HeartbeatsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "failed_total",
		Help:      "Number of heartbeats which could not be delivered.",
	})

	PendingRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "pending_requests",
		Help:      "Number of heartbeat requests waiting for completion.",
	})
)

// Serve exposes the metrics on address until ctx is done.
func Serve(ctx context.Context, address string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			zap.S().Errorw("cannot shutdown metrics server", "error", err)
		}
	}()

	zap.S().Infow("metrics server started", "address", address)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
