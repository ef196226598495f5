package router

import (
	"sync"

	"go.uber.org/zap"

	"github.com/arcanaland/cardex/internal/card"
	"github.com/arcanaland/cardex/internal/logging"
	"github.com/arcanaland/cardex/internal/search"
)

// View is one of the two mutually exclusive screens.
type View int

const (
	// ViewList shows search and the rules/info panel.
	ViewList View = iota
	// ViewDetail shows a single card.
	ViewDetail
)

func (v View) String() string {
	if v == ViewDetail {
		return "detail"
	}
	return "list"
}

// Catalog resolves card IDs.
type Catalog interface {
	Lookup(id string) (card.Card, bool)
}

// Searcher answers queries.
type Searcher interface {
	Search(query string) search.Result
}

// State is a snapshot of the router.
type State struct {
	View     View
	Fragment string
	Query    string
	Results  search.Result
	// Card is set in ViewDetail.
	Card *card.Card
	// NotFound holds the ID of a deep link that did not resolve.
	NotFound string
	// Highlight is the keyboard-selected result, -1 when none.
	Highlight int
}

// Router is the list/detail state machine. All transitions are synchronous;
// listeners run on the caller's goroutine after the state has changed.
type Router struct {
	mu        sync.Mutex
	catalog   Catalog
	searcher  Searcher
	state     State
	listeners []func(State)
	logger    *zap.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the router's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Router) { r.logger = logger }
}

// New returns a router in the list view.
func New(catalog Catalog, searcher Searcher, opts ...Option) *Router {
	r := &Router{
		catalog:  catalog,
		searcher: searcher,
		state:    State{View: ViewList, Highlight: -1},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.OrNop(r.logger)
	return r
}

// Subscribe registers fn to be called after every transition.
func (r *Router) Subscribe(fn func(State)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// State returns the current snapshot.
func (r *Router) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.copy()
}

// Navigate resolves a location (fragment, URL or query) and enters the
// matching view. It is used both at start-up and whenever the location
// changes from outside, e.g. history navigation or a hand-edited URL.
func (r *Router) Navigate(loc string) State {
	return r.transition(func(s *State) {
		id, ok := ParseLocation(loc)
		if !ok {
			s.toList()
			s.Fragment = ""
			return
		}
		r.open(s, id)
	})
}

// Search re-runs the query. The latest call wins; the view is unchanged.
func (r *Router) Search(query string) State {
	return r.transition(func(s *State) {
		s.Results = r.searcher.Search(query)
		s.Query = query
		s.Highlight = -1
	})
}

// Select opens a card, as when a result is clicked, and updates the fragment
// so the view can be bookmarked.
func (r *Router) Select(id string) State {
	return r.transition(func(s *State) { r.open(s, id) })
}

// Highlight moves the keyboard selection through the visible results by
// delta, wrapping at either end.
func (r *Router) Highlight(delta int) State {
	return r.transition(func(s *State) {
		n := len(s.Results.Cards)
		if n == 0 || !s.Results.Visible {
			s.Highlight = -1
			return
		}
		h := s.Highlight
		if h < 0 && delta < 0 {
			h = 0
		}
		s.Highlight = ((h+delta)%n + n) % n
	})
}

// Confirm selects the highlighted result, if any.
func (r *Router) Confirm() State {
	return r.transition(func(s *State) {
		if s.Highlight < 0 || s.Highlight >= len(s.Results.Cards) || !s.Results.Visible {
			return
		}
		r.open(s, s.Results.Cards[s.Highlight].ID)
	})
}

// Back returns to the list: clears the fragment and query and hides results.
func (r *Router) Back() State {
	return r.transition(func(s *State) {
		s.toList()
		s.Fragment = ""
		s.Query = ""
		s.Results = search.Result{}
		s.Highlight = -1
	})
}

func (r *Router) open(s *State, id string) {
	c, ok := r.catalog.Lookup(id)
	if !ok {
		r.logger.Info("deep link to unknown card", zap.String("id", id))
		s.toList()
		s.NotFound = id
		s.Fragment = FragmentFor(id)
		return
	}
	s.View = ViewDetail
	s.Card = &c
	s.NotFound = ""
	s.Fragment = FragmentFor(id)
	s.Results.Visible = false
	s.Highlight = -1
}

func (r *Router) transition(fn func(*State)) State {
	r.mu.Lock()
	fn(&r.state)
	snapshot := r.state.copy()
	listeners := append([]func(State){}, r.listeners...)
	r.mu.Unlock()

	for _, l := range listeners {
		l(snapshot)
	}
	return snapshot
}

func (s *State) toList() {
	s.View = ViewList
	s.Card = nil
	s.NotFound = ""
}

func (s State) copy() State {
	if s.Card != nil {
		c := s.Card.Clone()
		s.Card = &c
	}
	if s.Results.Cards != nil {
		s.Results.Cards = append([]card.Card(nil), s.Results.Cards...)
	}
	return s
}
