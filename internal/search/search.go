package search

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/arcanaland/cardex/internal/card"
)

// Fields selects which card fields a query is matched against.
type Fields string

const (
	// FieldsAll matches name, type and description. This is the default.
	FieldsAll Fields = "all"
	// FieldsName matches the name only.
	FieldsName Fields = "name"
)

// ParseFields maps a config value to a Fields policy, defaulting to FieldsAll.
func ParseFields(s string) Fields {
	if Fields(strings.ToLower(strings.TrimSpace(s))) == FieldsName {
		return FieldsName
	}
	return FieldsAll
}

// Result is the outcome of a single query.
type Result struct {
	Query string
	Cards []card.Card
	// Visible is false for blank queries: the results panel must be hidden.
	Visible bool
	// NoResults is true when a non-blank query matched nothing.
	NoResults bool
}

// Index answers substring queries over a fixed card set.
type Index struct {
	entries []entry
	fields  Fields
	limit   int

	// collate.Collator is not safe for concurrent use.
	mu   sync.Mutex
	coll *collate.Collator
}

type entry struct {
	card  card.Card
	name  string
	typ   string
	descr string
}

// Option configures an Index.
type Option func(*Index)

// WithFields sets the matching policy.
func WithFields(f Fields) Option {
	return func(ix *Index) { ix.fields = f }
}

// WithLocale sets the collation language used to order results.
func WithLocale(tag language.Tag) Option {
	return func(ix *Index) { ix.coll = collate.New(tag) }
}

// WithLimit caps the number of returned cards. Zero means no limit.
func WithLimit(n int) Option {
	return func(ix *Index) {
		if n >= 0 {
			ix.limit = n
		}
	}
}

// New indexes cards. The slice is copied.
func New(cards []card.Card, opts ...Option) *Index {
	ix := &Index{
		entries: make([]entry, 0, len(cards)),
		fields:  FieldsAll,
		coll:    collate.New(language.English),
	}
	for _, opt := range opts {
		opt(ix)
	}
	for _, c := range cards {
		ix.entries = append(ix.entries, entry{
			card:  c.Clone(),
			name:  strings.ToLower(c.Name),
			typ:   strings.ToLower(c.Type),
			descr: strings.ToLower(c.Description),
		})
	}
	return ix
}

// Fields reports the matching policy in use.
func (ix *Index) Fields() Fields { return ix.fields }

// Search returns the cards whose fields contain query, case-insensitively,
// sorted by name in locale order.
func (ix *Index) Search(query string) Result {
	q := strings.TrimSpace(query)
	res := Result{Query: q}
	if q == "" {
		return res
	}
	res.Visible = true

	needle := strings.ToLower(q)
	var matches []entry
	for _, e := range ix.entries {
		if e.matches(needle, ix.fields) {
			matches = append(matches, e)
		}
	}
	if len(matches) == 0 {
		res.NoResults = true
		return res
	}

	ix.mu.Lock()
	sort.SliceStable(matches, func(i, j int) bool {
		if c := ix.coll.CompareString(matches[i].card.Name, matches[j].card.Name); c != 0 {
			return c < 0
		}
		return matches[i].card.ID < matches[j].card.ID
	})
	ix.mu.Unlock()

	if ix.limit > 0 && len(matches) > ix.limit {
		matches = matches[:ix.limit]
	}
	res.Cards = make([]card.Card, len(matches))
	for i, e := range matches {
		res.Cards[i] = e.card.Clone()
	}
	return res
}

// Compare orders two names the way Search does.
func (ix *Index) Compare(a, b string) int {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.coll.CompareString(a, b)
}

func (e entry) matches(needle string, fields Fields) bool {
	if strings.Contains(e.name, needle) {
		return true
	}
	if fields == FieldsName {
		return false
	}
	return strings.Contains(e.typ, needle) || strings.Contains(e.descr, needle)
}
