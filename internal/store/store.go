package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/arcanaland/cardex/internal/card"
	"github.com/arcanaland/cardex/internal/logging"
)

// DefaultFetchTimeout bounds the single remote fetch made by Load.
const DefaultFetchTimeout = 10 * time.Second

// maxPayload caps the size of a card database read into memory, for files
// and remote sources alike.
var maxPayload int64 = 32 << 20

var errTooLarge = errors.New("card database too large")

// ErrNotFound is returned when a card ID is not in the store.
var ErrNotFound = errors.New("card not found")

// Store is a read-only card collection. It is built once by Load and never
// mutated afterwards, so it is safe for concurrent readers.
type Store struct {
	cards    []card.Card
	byID     map[string]int
	source   string
	fallback bool
}

// Option configures Load.
type Option func(*loader)

type loader struct {
	client  *http.Client
	timeout time.Duration
	logger  *zap.Logger
}

// WithHTTPClient overrides the client used for http(s) sources.
func WithHTTPClient(c *http.Client) Option {
	return func(l *loader) { l.client = c }
}

// WithTimeout overrides DefaultFetchTimeout. Zero or negative keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(l *loader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithLogger sets the logger that receives the fallback warning.
func WithLogger(logger *zap.Logger) Option {
	return func(l *loader) { l.logger = logger }
}

// Load reads the card database at source, which may be a file path or an
// http(s) URL. It never fails: any error is logged as a warning and the
// built-in fallback cards are returned instead.
func Load(ctx context.Context, source string, opts ...Option) *Store {
	l := &loader{client: http.DefaultClient, timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = logging.OrNop(l.logger)

	cards, err := l.fetch(ctx, source)
	if err != nil {
		l.logger.Warn("using fallback card data",
			zap.String("source", source),
			zap.Error(err),
		)
		return New(Fallback(), "fallback", true)
	}

	l.logger.Info("card database loaded",
		zap.String("source", source),
		zap.Int("cards", len(cards)),
	)
	return New(cards, source, false)
}

// New builds a store from an in-memory collection.
func New(cards []card.Card, source string, fallback bool) *Store {
	s := &Store{
		cards:    make([]card.Card, 0, len(cards)),
		byID:     make(map[string]int, len(cards)),
		source:   source,
		fallback: fallback,
	}
	for _, c := range cards {
		c = c.Clone()
		// First record wins for duplicated IDs; every record stays iterable.
		if _, dup := s.byID[c.ID]; !dup {
			s.byID[c.ID] = len(s.cards)
		}
		s.cards = append(s.cards, c)
	}
	return s
}

func (l *loader) fetch(ctx context.Context, source string) ([]card.Card, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, fmt.Errorf("no card database configured")
	}

	var (
		data []byte
		err  error
	)
	if isRemote(source) {
		data, err = l.fetchRemote(ctx, source)
	} else {
		data, err = readFile(source)
	}
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(source), ".toml") {
		return DecodeTOML(data)
	}
	return Decode(data)
}

func (l *loader) fetchRemote(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}
	return readPayload(resp.Body)
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readPayload(f)
}

// readPayload reads at most maxPayload bytes and fails when there is more.
func readPayload(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxPayload+1))
	if err != nil {
		return nil, fmt.Errorf("reading card database: %w", err)
	}
	if int64(len(data)) > maxPayload {
		return nil, fmt.Errorf("%w: over %d bytes", errTooLarge, maxPayload)
	}
	return data, nil
}

// Decode parses a JSON card database. Both a bare array of cards and an
// object of the form {"cards": [...]} are accepted.
func Decode(data []byte) ([]card.Card, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty card database")
	}

	var cards []card.Card
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &cards); err != nil {
			return nil, fmt.Errorf("parsing card array: %w", err)
		}
	case '{':
		var wrapped struct {
			Cards *[]card.Card `json:"cards"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("parsing card database: %w", err)
		}
		if wrapped.Cards == nil {
			return nil, fmt.Errorf("card database object has no \"cards\" field")
		}
		cards = *wrapped.Cards
	default:
		return nil, fmt.Errorf("card database must be an array or an object")
	}
	return cards, nil
}

// DecodeTOML parses a TOML card database made of [[cards]] tables.
func DecodeTOML(data []byte) ([]card.Card, error) {
	var doc struct {
		Cards []card.Card `toml:"cards"`
	}
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("parsing card database: %w", err)
	}
	if doc.Cards == nil {
		return nil, fmt.Errorf("card database has no [[cards]] tables")
	}
	return doc.Cards, nil
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Lookup gets a card by its ID
func (s *Store) Lookup(id string) (card.Card, bool) {
	i, ok := s.byID[id]
	if !ok {
		return card.Card{}, false
	}
	return s.cards[i].Clone(), true
}

// Get is Lookup with an error for callers that propagate failures.
func (s *Store) Get(id string) (card.Card, error) {
	c, ok := s.Lookup(id)
	if !ok {
		return card.Card{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c, nil
}

// All returns every card in load order.
func (s *Store) All() []card.Card {
	out := make([]card.Card, len(s.cards))
	for i, c := range s.cards {
		out[i] = c.Clone()
	}
	return out
}

// Len returns the number of loaded records.
func (s *Store) Len() int { return len(s.cards) }

// Source describes where the cards came from.
func (s *Store) Source() string { return s.source }

// Fallback reports whether the built-in fallback set is in use.
func (s *Store) Fallback() bool { return s.fallback }
