package events

import (
	"fmt"
	"strings"
)

// Kind is the kind of a host trigger event.
type Kind int

const (
	// Update is sent by the host on every tick.
	Update Kind = iota
	AfterReload
	PlayModeChanged
	PropertyContextMenu
	HierarchyChanged
	SceneSaved
	SceneOpened
	SceneClosing
	SceneCreated
)

var kindNames = map[Kind]string{
	Update:              "update",
	AfterReload:         "after_reload",
	PlayModeChanged:     "play_mode_changed",
	PropertyContextMenu: "property_context_menu",
	HierarchyChanged:    "hierarchy_changed",
	SceneSaved:          "scene_saved",
	SceneOpened:         "scene_opened",
	SceneClosing:        "scene_closing",
	SceneCreated:        "scene_created",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind returns the kind named name.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}

	return Update, fmt.Errorf("unknown event kind '%s'", name)
}

// Kinds returns all the kinds in declaration order.
func Kinds() []Kind {
	return []Kind{Update, AfterReload, PlayModeChanged, PropertyContextMenu, HierarchyChanged, SceneSaved, SceneOpened, SceneClosing, SceneCreated}
}

// Event is a trigger event sent by the host.
type Event struct {
	Kind Kind
	// Path of the active scene. Empty if the scene has never been saved or if the host sent no scene.
	Path string
}

func (e Event) String() string {
	return fmt.Sprintf("%s[%s]", e.Kind, e.Path)
}
