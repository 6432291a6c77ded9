package heartbeat

import (
	"time"

	"github.com/tupyy/editor-heartbeat/internal/entity"
)

// HeartbeatBuffer is the minimum time between two heartbeats of the same entity.
const HeartbeatBuffer = 120 * time.Second

// ShouldSend reports whether candidate is worth sending given the last acknowledged heartbeat.
// Forced heartbeats are always sent, as is the first one (last is the zero value). Otherwise the
// candidate is sent if the entity changed or if at least HeartbeatBuffer elapsed since last.
func ShouldSend(candidate entity.Heartbeat, last entity.HeartbeatResponse, forced bool) bool {
	if forced || last == (entity.HeartbeatResponse{}) {
		return true
	}

	if candidate.Entity != last.Entity {
		return true
	}

	return float64(candidate.Time)-last.Time >= HeartbeatBuffer.Seconds()
}
