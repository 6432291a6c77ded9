package entity

const (
	// UnsavedEntity is the entity reported when no saved scene is active.
	UnsavedEntity = "Unsaved Scene"

	// HeartbeatType is the entity type of every heartbeat sent by the editor.
	HeartbeatType = "app"
)

// Heartbeat is a single activity report. It is built once and never modified.
type Heartbeat struct {
	// absolute path of the active scene or UnsavedEntity
	Entity string

	// always HeartbeatType
	Type string

	// Category is always empty. It is sent as null.
	Category string

	// project name taken from settings
	Project string

	// version control branch
	Branch string

	// language of the host environment
	Language string

	// IsWrite is true only when the heartbeat has been triggered by a save.
	IsWrite bool

	Editor          string
	OperatingSystem string
	Machine         string

	// Time is the unix time in seconds when the heartbeat has been built.
	Time int64
}

// HeartbeatResponse is the heartbeat as acknowledged by the server.
// The last one received is the baseline of the throttle.
type HeartbeatResponse struct {
	ID     string
	Entity string
	Type   string
	// Time is in seconds. The server may return fractional seconds.
	Time float64
}

// HeartbeatResult is the outcome of an asynchronous heartbeat request.
type HeartbeatResult = Result[HeartbeatResponse]

// Credentials are read from settings each time a heartbeat is sent.
type Credentials struct {
	BaseURL string
	APIKey  string
}
