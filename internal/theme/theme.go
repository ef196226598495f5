package theme

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/arcanaland/cardex/internal/logging"
)

// Persisted values for the dark mode flag.
const (
	Enabled  = "enabled"
	Disabled = "disabled"
)

// Indicators shown on the toggle control.
const (
	DarkIndicator  = "🌞"
	LightIndicator = "🌓"
)

// Store persists the dark mode flag.
type Store interface {
	Get() (bool, error)
	Set(dark bool) error
}

// Encode maps the flag to its persisted string.
func Encode(dark bool) string {
	if dark {
		return Enabled
	}
	return Disabled
}

// Decode maps a persisted string to the flag. Anything but "enabled" is light.
func Decode(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), Enabled)
}

// Preference is the in-memory dark mode flag backed by a Store.
type Preference struct {
	mu     sync.Mutex
	dark   bool
	store  Store
	logger *zap.Logger
}

// Load reads the persisted flag. A missing or unreadable value means light.
func Load(store Store, logger *zap.Logger) *Preference {
	p := &Preference{store: store, logger: logging.OrNop(logger)}
	if store == nil {
		return p
	}
	dark, err := store.Get()
	if err != nil {
		p.logger.Warn("reading theme preference", zap.Error(err))
		return p
	}
	p.dark = dark
	return p
}

// Dark reports whether dark mode is on.
func (p *Preference) Dark() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dark
}

// Indicator is the glyph for the toggle control.
func (p *Preference) Indicator() string {
	if p.Dark() {
		return DarkIndicator
	}
	return LightIndicator
}

// Toggle flips the flag and writes it back before returning. The in-memory
// flag is flipped even if the write fails.
func (p *Preference) Toggle() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dark = !p.dark
	if p.store == nil {
		return p.dark, nil
	}
	if err := p.store.Set(p.dark); err != nil {
		return p.dark, fmt.Errorf("saving theme preference: %w", err)
	}
	return p.dark, nil
}

// MemoryStore keeps the flag in memory.
type MemoryStore struct {
	mu    sync.Mutex
	value string
}

// NewMemoryStore returns a store holding the given persisted value ("" for unset).
func NewMemoryStore(value string) *MemoryStore {
	return &MemoryStore{value: value}
}

func (m *MemoryStore) Get() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Decode(m.value), nil
}

func (m *MemoryStore) Set(dark bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = Encode(dark)
	return nil
}

// Value returns the raw persisted string.
func (m *MemoryStore) Value() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value
}
