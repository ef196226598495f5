package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const bareArray = `[
  {"id": "koopa", "name": "Koopa Troopa", "type": "Common Creature", "stats": {"attack": 2}},
  {"id": "bob-omb", "name": "Bob-omb", "type": "Explosive", "rules": ["Explodes after one turn."]}
]`

const wrapped = `{"cards": [{"id": "boo", "name": "Boo", "type": "Ghost"}]}`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDecodeAcceptsBothShapes(t *testing.T) {
	cards, err := Decode([]byte(bareArray))
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "koopa", cards[0].ID)
	assert.Equal(t, 2.0, cards[0].Stats["attack"])

	cards, err = Decode([]byte(wrapped))
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Boo", cards[0].Name)
}

func TestDecodeRejectsMalformed(t *testing.T) {
	for name, body := range map[string]string{
		"empty":        "",
		"scalar":       `"cards"`,
		"broken":       `[{"id": }]`,
		"missingField": `{"items": []}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(body))
			require.Error(t, err)
		})
	}
}

func TestDecodeTOML(t *testing.T) {
	cards, err := DecodeTOML([]byte(`
[[cards]]
id = "piranha"
name = "Piranha Plant"
type = "Hazard"
rules = ["Cannot move."]

[cards.stats]
attack = 3
`))
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, []string{"Cannot move."}, cards[0].Rules)
	assert.Equal(t, 3.0, cards[0].Stats["attack"])
}

func TestLoadFromFile(t *testing.T) {
	s := Load(context.Background(), writeFile(t, "database.json", bareArray))
	require.False(t, s.Fallback())
	require.Equal(t, 2, s.Len())

	c, ok := s.Lookup("bob-omb")
	require.True(t, ok)
	assert.Equal(t, "Bob-omb", c.Name)
}

func TestLoadTOMLFile(t *testing.T) {
	s := Load(context.Background(), writeFile(t, "database.toml", "[[cards]]\nid = \"a\"\nname = \"A\"\n"))
	require.False(t, s.Fallback())
	require.Equal(t, 1, s.Len())
}

func TestLoadFromHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(wrapped))
	}))
	defer srv.Close()

	s := Load(context.Background(), srv.URL+"/database.json", WithHTTPClient(srv.Client()))
	require.False(t, s.Fallback())
	_, ok := s.Lookup("boo")
	require.True(t, ok)
}

func TestLoadFallsBackAndWarns(t *testing.T) {
	notFound := httptest.NewServer(http.NotFoundHandler())
	defer notFound.Close()

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer slow.Close()

	cases := map[string]struct {
		source string
		opts   []Option
	}{
		"missing file":  {source: filepath.Join(t.TempDir(), "nope.json")},
		"malformed":     {source: writeFile(t, "database.json", "{not json")},
		"empty source":  {source: "  "},
		"http 404":      {source: notFound.URL, opts: []Option{WithHTTPClient(notFound.Client())}},
		"fetch timeout": {source: slow.URL, opts: []Option{WithHTTPClient(slow.Client()), WithTimeout(50 * time.Millisecond)}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			opts := append([]Option{WithLogger(zap.New(core))}, tc.opts...)

			s := Load(context.Background(), tc.source, opts...)
			require.True(t, s.Fallback())
			require.GreaterOrEqual(t, s.Len(), 2)

			_, ok := s.Lookup("goomba")
			assert.True(t, ok)
			_, ok = s.Lookup("baseline-earth")
			assert.True(t, ok)

			require.Equal(t, 1, logs.FilterMessage("using fallback card data").Len())
		})
	}
}

func TestLoadRejectsOversizedDatabase(t *testing.T) {
	defer func(n int64) { maxPayload = n }(maxPayload)
	maxPayload = int64(len(bareArray)) - 1

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(bareArray))
	}))
	defer srv.Close()

	sources := map[string][]Option{
		writeFile(t, "database.json", bareArray): nil,
		srv.URL + "/database.json":               {WithHTTPClient(srv.Client())},
	}
	for source, opts := range sources {
		core, logs := observer.New(zapcore.WarnLevel)
		s := Load(context.Background(), source, append(opts, WithLogger(zap.New(core)))...)
		require.True(t, s.Fallback(), source)

		entries := logs.FilterMessage("using fallback card data").All()
		require.Len(t, entries, 1)
		assert.Contains(t, entries[0].ContextMap()["error"], "too large", source)
	}

	maxPayload = int64(len(bareArray))
	s := Load(context.Background(), writeFile(t, "exact.json", bareArray))
	assert.False(t, s.Fallback())
}

func TestStoreIsReadOnly(t *testing.T) {
	s := Load(context.Background(), writeFile(t, "database.json", bareArray))

	c, _ := s.Lookup("koopa")
	c.Stats["attack"] = 99
	c.Name = "changed"

	all := s.All()
	all[0].Name = "changed"

	again, _ := s.Lookup("koopa")
	assert.Equal(t, "Koopa Troopa", again.Name)
	assert.Equal(t, 2.0, again.Stats["attack"])
}

func TestDuplicateIDsKeepFirst(t *testing.T) {
	s := New(Fallback(), "test", false)
	dup := append(s.All(), s.All()[0])
	dup[len(dup)-1].Name = "Second Goomba"

	s = New(dup, "test", false)
	require.Equal(t, 3, s.Len())
	c, _ := s.Lookup("goomba")
	assert.Equal(t, "Goomba", c.Name)
}

func TestGetWrapsErrNotFound(t *testing.T) {
	s := New(Fallback(), "test", true)
	_, err := s.Get("missing")
	require.ErrorIs(t, err, ErrNotFound)
}
