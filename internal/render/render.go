package render

import (
	"net/url"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/arcanaland/cardex/internal/card"
)

const (
	// PlaceholderImage is substituted when a card has no image or its image
	// fails to load.
	PlaceholderImage = "https://via.placeholder.com/200x280?text=Card+Image"
	// NoDescription is shown for cards without a description.
	NoDescription = "No description available."
	// UnknownType labels cards without a type.
	UnknownType = "Unknown type"
)

// Stat is one attribute row of the detail view.
type Stat struct {
	Label string
	Value string
	Raw   float64
}

// ViewModel is everything the detail panel displays for one card.
type ViewModel struct {
	ID             string
	Title          string
	TypeLabel      string
	Stats          []Stat   // nil when the card has no stats
	Rules          []string // nil when the card has no rules
	Description    string
	HasDescription bool
	Image          string
	ImageAlt       string
	Placeholder    string
}

// Renderer turns cards into view models. It holds no mutable state.
type Renderer struct {
	base        string
	placeholder string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithPlaceholder overrides PlaceholderImage.
func WithPlaceholder(ref string) Option {
	return func(r *Renderer) {
		if strings.TrimSpace(ref) != "" {
			r.placeholder = ref
		}
	}
}

// New returns a Renderer resolving relative image paths against base, which
// may be a directory path or a URL.
func New(base string, opts ...Option) *Renderer {
	r := &Renderer{base: strings.TrimSpace(base), placeholder: PlaceholderImage}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render builds the view model for c. The same card always yields the same
// view model.
func (r *Renderer) Render(c card.Card) ViewModel {
	vm := ViewModel{
		ID:          c.ID,
		Title:       c.DisplayName(),
		TypeLabel:   strings.TrimSpace(c.Type),
		Description: strings.TrimSpace(c.Description),
		Placeholder: r.placeholder,
	}
	vm.ImageAlt = vm.Title
	if vm.TypeLabel == "" {
		vm.TypeLabel = UnknownType
	}
	vm.HasDescription = vm.Description != ""
	if !vm.HasDescription {
		vm.Description = NoDescription
	}

	if len(c.Stats) > 0 {
		keys := make([]string, 0, len(c.Stats))
		for k := range c.Stats {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		vm.Stats = make([]Stat, 0, len(keys))
		for _, k := range keys {
			vm.Stats = append(vm.Stats, Stat{Label: k, Value: FormatStat(c.Stats[k]), Raw: c.Stats[k]})
		}
	}

	for _, rule := range c.Rules {
		if rule = strings.TrimSpace(rule); rule != "" {
			vm.Rules = append(vm.Rules, rule)
		}
	}

	vm.Image = r.ResolveImage(c.Image)
	return vm
}

// ResolveImage normalizes an image reference against the base path. Absolute
// URLs and rooted paths are returned unchanged; an empty reference yields the
// placeholder.
func (r *Renderer) ResolveImage(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return r.placeholder
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		return ref
	}
	if strings.HasPrefix(ref, "/") || r.base == "" {
		return path.Clean(ref)
	}

	if baseURL, err := url.Parse(r.base); err == nil && baseURL.Scheme != "" && baseURL.Host != "" {
		if !strings.HasSuffix(baseURL.Path, "/") {
			baseURL.Path += "/"
		}
		rel, err := url.Parse(ref)
		if err != nil {
			return r.placeholder
		}
		return baseURL.ResolveReference(rel).String()
	}
	return path.Join(r.base, ref)
}

// FormatStat prints a stat value without trailing zeros.
func FormatStat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// NotFoundMessage is the text shown for a deep link to an unknown card.
func NotFoundMessage(id string) string {
	if strings.TrimSpace(id) == "" {
		return "Card not found."
	}
	return "Card not found: " + id
}
