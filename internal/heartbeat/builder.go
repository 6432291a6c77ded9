package heartbeat

import (
	"sync"
	"time"

	"github.com/tupyy/editor-heartbeat/internal/entity"
	"github.com/tupyy/editor-heartbeat/internal/settings"
)

type BranchResolver interface {
	CurrentBranch() string
}

// Builder builds heartbeats from the current editor context.
type Builder struct {
	settings settings.Provider
	branch   BranchResolver
	identity Identity
	now      func() time.Time

	lock     sync.Mutex
	lastTime int64
}

func NewBuilder(s settings.Provider, branch BranchResolver, identity Identity) *Builder {
	return NewBuilderWithClock(s, branch, identity, time.Now)
}

func NewBuilderWithClock(s settings.Provider, branch BranchResolver, identity Identity, now func() time.Time) *Builder {
	return &Builder{
		settings: s,
		branch:   branch,
		identity: identity,
		now:      now,
	}
}

// Build returns a new heartbeat for activePath. An empty path means that no saved scene is active.
// The time of the heartbeat never goes backwards even if the wall clock does.
func (b *Builder) Build(activePath string, isSave bool) entity.Heartbeat {
	e := activePath
	if e == "" {
		e = entity.UnsavedEntity
	}

	return entity.Heartbeat{
		Entity:          e,
		Type:            entity.HeartbeatType,
		Project:         b.settings.String(settings.ActiveProject),
		Branch:          b.branch.CurrentBranch(),
		Language:        b.identity.Language,
		IsWrite:         isSave,
		Editor:          b.identity.Editor,
		OperatingSystem: b.identity.OperatingSystem,
		Machine:         b.identity.Machine,
		Time:            b.timestamp(),
	}
}

func (b *Builder) timestamp() int64 {
	b.lock.Lock()
	defer b.lock.Unlock()

	t := b.now().Unix()
	if t < b.lastTime {
		t = b.lastTime
	}
	b.lastTime = t

	return t
}
