package heartbeat

import (
	"os"
	"runtime"
	"strings"

	"github.com/denisbrodbeck/machineid"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	WindowsFamily = "Windows"
	LinuxFamily   = "Linux"
	MacOSFamily   = "macOS"
	OtherFamily   = "Other"
)

// Identity describes the client and the host sending heartbeats.
type Identity struct {
	Editor          string
	Language        string
	OperatingSystem string
	Machine         string
}

// NewIdentity returns the identity of the current host.
func NewIdentity(editor, language string) Identity {
	return Identity{
		Editor:          editor,
		Language:        language,
		OperatingSystem: OSFamily(runtime.GOOS),
		Machine:         MachineName(),
	}
}

// OSFamily maps an operating system name to its family by prefix.
func OSFamily(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	switch {
	case strings.HasPrefix(name, "windows"):
		return WindowsFamily
	case strings.HasPrefix(name, "linux"):
		return LinuxFamily
	case strings.HasPrefix(name, "darwin"), strings.HasPrefix(name, "mac"):
		return MacOSFamily
	default:
		return OtherFamily
	}
}

// MachineName returns the host name. If it cannot be read, the machine id is used instead
// and, as a last resort, a random id.
func MachineName() string {
	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		return hostname
	}

	id, err := machineid.ID()
	if err != nil {
		zap.S().Warnw("cannot read machine id", "error", err)
		return uuid.NewString()
	}

	return id
}
