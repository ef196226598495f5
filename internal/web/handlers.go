package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/arcanaland/cardex/internal/render"
	"github.com/arcanaland/cardex/internal/router"
	"github.com/arcanaland/cardex/internal/search"
	"github.com/arcanaland/cardex/internal/store"
	"github.com/arcanaland/cardex/internal/theme"
)

func searchHint(f search.Fields) string {
	if f == search.FieldsName {
		return "name"
	}
	return "name, type or description"
}

// ThemeCookie stores the dark mode preference for the web front-end.
const ThemeCookie = "darkMode"

// handlePage serves both views. The location is resolved by a router
// created for the request, exactly as a browser session resolves its URL.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	rt := s.newRouter()
	st := rt.Navigate(r.URL.RequestURI())
	if st.View == router.ViewList {
		st = rt.Search(r.URL.Query().Get("q"))
	}
	s.writeState(w, r, st)
}

func (s *Server) handleCardPath(w http.ResponseWriter, r *http.Request) {
	st := s.newRouter().Select(chi.URLParam(r, "id"))
	s.writeState(w, r, st)
}

func (s *Server) writeState(w http.ResponseWriter, r *http.Request, st router.State) {
	pref := preferenceFromRequest(r)
	data := pageData{
		Title:     "Card Catalog",
		Dark:      pref.Dark(),
		Indicator: pref.Indicator(),
		Palette:   theme.PaletteFor(pref.Dark()),
		Return:    r.URL.RequestURI(),
		View:      st.View.String(),
		Query:     strings.TrimSpace(st.Query),
		Visible:   st.Results.Visible,
		Empty:     st.Results.NoResults,
		Results:   resultItems(st.Results.Cards),
		Fallback:  s.store.Fallback(),
		Total:     s.store.Len(),
		Hint:      searchHint(s.index.Fields()),
	}

	status := http.StatusOK
	switch {
	case st.View == router.ViewDetail && st.Card != nil:
		vm := s.renderer.Render(*st.Card)
		data.Card = s.pages.cardView(vm)
		data.Title = vm.Title + " · Card Catalog"
	case st.NotFound != "":
		status = http.StatusNotFound
		data.NotFound = st.NotFound
		data.Message = render.NotFoundMessage(st.NotFound)
	}

	if err := s.pages.render(w, status, data); err != nil {
		s.logger.Error("rendering page", zap.Error(err))
	}
}

type searchResponse struct {
	Query     string       `json:"query"`
	Visible   bool         `json:"visible"`
	NoResults bool         `json:"no_results"`
	Cards     []resultItem `json:"cards"`
}

func (s *Server) handleSearchAPI(w http.ResponseWriter, r *http.Request) {
	res := s.index.Search(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, searchResponse{
		Query:     res.Query,
		Visible:   res.Visible,
		NoResults: res.NoResults,
		Cards:     resultItems(res.Cards),
	})
}

type cardResponse struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Type        string        `json:"type"`
	Stats       []statPayload `json:"stats,omitempty"`
	Rules       []string      `json:"rules,omitempty"`
	Description string        `json:"description"`
	Image       string        `json:"image"`
	Placeholder string        `json:"placeholder"`
	Fragment    string        `json:"fragment"`
}

type statPayload struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

func (s *Server) handleCardAPI(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, err := s.store.Get(id)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": render.NotFoundMessage(id)})
		return
	}
	vm := s.renderer.Render(c)
	resp := cardResponse{
		ID:          vm.ID,
		Title:       vm.Title,
		Type:        vm.TypeLabel,
		Rules:       vm.Rules,
		Description: vm.Description,
		Image:       vm.Image,
		Placeholder: vm.Placeholder,
		Fragment:    router.FragmentFor(vm.ID),
	}
	for _, st := range vm.Stats {
		resp.Stats = append(resp.Stats, statPayload{Label: st.Label, Value: st.Raw})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	prefs := theme.NewMemoryStore(cookieValue(r, ThemeCookie))
	pref := theme.Load(prefs, s.logger)
	if _, err := pref.Toggle(); err != nil {
		s.logger.Warn("toggling theme", zap.Error(err))
	}

	http.SetCookie(w, &http.Cookie{
		Name:     ThemeCookie,
		Value:    prefs.Value(),
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, safeReturn(r.FormValue("return")), http.StatusSeeOther)
}

func (s *Server) newRouter() *router.Router {
	return router.New(s.store, s.index, router.WithLogger(s.logger.Named("router")))
}

func preferenceFromRequest(r *http.Request) *theme.Preference {
	return theme.Load(theme.NewMemoryStore(cookieValue(r, ThemeCookie)), nil)
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

// safeReturn only allows local paths as redirect targets.
func safeReturn(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return "/"
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host != "" || u.Scheme != "" {
		return "/"
	}
	return raw
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
