package theme

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{ getErr, setErr error }

func (f failingStore) Get() (bool, error) { return false, f.getErr }
func (f failingStore) Set(bool) error     { return f.setErr }

func TestLoadDefaultsToLight(t *testing.T) {
	p := Load(NewMemoryStore(""), nil)
	assert.False(t, p.Dark())
	assert.Equal(t, LightIndicator, p.Indicator())

	p = Load(nil, nil)
	assert.False(t, p.Dark())

	p = Load(failingStore{getErr: errors.New("boom")}, nil)
	assert.False(t, p.Dark())
}

func TestLoadPersistedDark(t *testing.T) {
	p := Load(NewMemoryStore("enabled"), nil)
	assert.True(t, p.Dark())
	assert.Equal(t, DarkIndicator, p.Indicator())
}

func TestToggleWritesThrough(t *testing.T) {
	store := NewMemoryStore("")
	p := Load(store, nil)

	dark, err := p.Toggle()
	require.NoError(t, err)
	assert.True(t, dark)
	assert.Equal(t, Enabled, store.Value())

	dark, err = p.Toggle()
	require.NoError(t, err)
	assert.False(t, dark)
	assert.Equal(t, Disabled, store.Value())

	// A fresh session sees the last written value.
	assert.False(t, Load(store, nil).Dark())
}

func TestToggleReportsWriteFailure(t *testing.T) {
	p := Load(failingStore{setErr: errors.New("read-only")}, nil)
	dark, err := p.Toggle()
	require.Error(t, err)
	assert.True(t, dark)
	assert.True(t, p.Dark())
}

func TestEncodeDecode(t *testing.T) {
	assert.Equal(t, "enabled", Encode(true))
	assert.Equal(t, "disabled", Encode(false))
	assert.True(t, Decode(" Enabled "))
	assert.False(t, Decode("yes"))
}

func TestPaletteFor(t *testing.T) {
	assert.Equal(t, "dark", PaletteFor(true).Name)
	assert.Equal(t, "light", PaletteFor(false).Name)
	assert.NotEqual(t, PaletteFor(true).Background, PaletteFor(false).Background)
}
