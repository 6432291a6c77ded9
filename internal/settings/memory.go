package settings

import (
	"fmt"
	"sync"
)

// Memory is a Provider which keeps the values in memory.
type Memory struct {
	lock   sync.RWMutex
	values map[string]interface{}
}

func NewMemory(appName string) *Memory {
	return &Memory{values: Defaults(appName)}
}

func (m *Memory) Bool(key string) bool {
	m.lock.RLock()
	defer m.lock.RUnlock()

	v, _ := m.values[key].(bool)
	return v
}

func (m *Memory) SetBool(key string, value bool) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.values[key] = value
}

func (m *Memory) String(key string) string {
	m.lock.RLock()
	defer m.lock.RUnlock()

	v, ok := m.values[key]
	if !ok || v == nil {
		return ""
	}

	return fmt.Sprintf("%v", v)
}

func (m *Memory) SetString(key string, value string) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.values[key] = value
}
