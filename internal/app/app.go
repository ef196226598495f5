package app

import (
	"context"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/arcanaland/cardex/internal/config"
	"github.com/arcanaland/cardex/internal/logging"
	"github.com/arcanaland/cardex/internal/render"
	"github.com/arcanaland/cardex/internal/router"
	"github.com/arcanaland/cardex/internal/search"
	"github.com/arcanaland/cardex/internal/store"
	"github.com/arcanaland/cardex/internal/theme"
)

// App is the state shared by every front-end. It is built once at start-up.
type App struct {
	Config   *config.Config
	Store    *store.Store
	Index    *search.Index
	Router   *router.Router
	Renderer *render.Renderer
	Theme    *theme.Preference
	Logger   *zap.Logger
}

// Options carries the collaborators New cannot derive from the config.
type Options struct {
	Logger     *zap.Logger
	ThemeStore theme.Store
	StoreOpts  []store.Option
	// SearchLimit caps every search result. Zero means no limit.
	SearchLimit int
}

// New loads the card database and wires the components around it. Loading
// completes before the search index is built.
func New(ctx context.Context, cfg *config.Config, opts Options) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	logger := logging.OrNop(opts.Logger)

	storeOpts := append([]store.Option{
		store.WithLogger(logger.Named("store")),
		store.WithTimeout(cfg.Timeout()),
	}, opts.StoreOpts...)
	cards := store.Load(ctx, cfg.Database, storeOpts...)

	tag, err := language.Parse(strings.TrimSpace(cfg.Locale))
	if err != nil {
		logger.Warn("invalid locale, sorting with English rules", zap.String("locale", cfg.Locale), zap.Error(err))
		tag = language.English
	}
	index := search.New(cards.All(),
		search.WithFields(search.ParseFields(cfg.SearchFields)),
		search.WithLocale(tag),
		search.WithLimit(opts.SearchLimit),
	)

	return &App{
		Config:   cfg,
		Store:    cards,
		Index:    index,
		Router:   router.New(cards, index, router.WithLogger(logger.Named("router"))),
		Renderer: render.New(ImageBase(cfg, cards), render.WithPlaceholder(cfg.PlaceholderImage)),
		Theme:    theme.Load(opts.ThemeStore, logger.Named("theme")),
		Logger:   logger,
	}
}

// RendererFor returns a renderer like a.Renderer that resolves relative
// images against base instead.
func (a *App) RendererFor(base string) *render.Renderer {
	return render.New(base, render.WithPlaceholder(a.Config.PlaceholderImage))
}

// AssetsDir returns the local directory relative card images live in, for
// serving them over HTTP. It is empty when images resolve against a URL or
// when fallback data is in use.
func AssetsDir(cfg *config.Config, s *store.Store) string {
	if s.Fallback() {
		return ""
	}
	base := ImageBase(cfg, s)
	if strings.Contains(base, "://") {
		return ""
	}
	if base == "" {
		return "."
	}
	return base
}

// ImageBase picks the base for relative image references: the configured
// base_path, else the directory holding the database, else nothing. Fallback
// data keeps its references relative.
func ImageBase(cfg *config.Config, s *store.Store) string {
	if base := strings.TrimSpace(cfg.BasePath); base != "" {
		return base
	}
	if s.Fallback() {
		return ""
	}
	src := s.Source()
	if i := strings.LastIndex(src, "/"); strings.Contains(src, "://") && i > strings.Index(src, "://")+2 {
		return src[:i+1]
	}
	if dir := filepath.Dir(src); dir != "." {
		return dir
	}
	return ""
}
