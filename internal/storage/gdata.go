package storage

import (
	"fmt"
	"sync"

	"github.com/quasilyte/gdata/v2"
)

// gdataObject groups every key this game writes.
const gdataObject = "scores"

// GData stores values through gdata, which picks the platform's user data
// directory. A nil manager degrades to an in-memory store so the game still
// runs where no data directory is available.
type GData struct {
	mu       sync.Mutex
	manager  *gdata.Manager
	fallback *Memory
}

// OpenGData opens the data directory for appName.
func OpenGData(appName string) (*GData, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return NewGData(nil), fmt.Errorf("open gdata %q: %w", appName, err)
	}
	return NewGData(m), nil
}

// NewGData wraps an already opened manager. m may be nil.
func NewGData(m *gdata.Manager) *GData {
	return &GData{manager: m, fallback: NewMemory()}
}

// Persistent reports whether values survive the process.
func (g *GData) Persistent() bool {
	return g.manager != nil
}

// Get implements Store.
func (g *GData) Get(key string) (string, bool, error) {
	if g.manager == nil {
		return g.fallback.Get(key)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return g.load(key)
}

func (g *GData) load(key string) (string, bool, error) {
	if !g.manager.ObjectPropExists(gdataObject, key) {
		return "", false, nil
	}
	data, err := g.manager.LoadObjectProp(gdataObject, key)
	if err != nil {
		return "", false, fmt.Errorf("load %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set implements Store.
func (g *GData) Set(key, value string) error {
	if g.manager == nil {
		return g.fallback.Set(key, value)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return g.save(key, value)
}

func (g *GData) save(key, value string) error {
	if err := g.manager.SaveObjectProp(gdataObject, key, []byte(value)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Update implements Updater. Concurrent sessions sharing one GData never
// interleave between the read and the write.
func (g *GData) Update(key string, fn func(string, bool) (string, bool)) error {
	if g.manager == nil {
		return g.fallback.Update(key, fn)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	cur, ok, err := g.load(key)
	if err != nil {
		return err
	}
	next, write := fn(cur, ok)
	if !write {
		return nil
	}
	return g.save(key, next)
}
