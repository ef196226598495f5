package web

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"github.com/arcanaland/cardex/internal/card"
	"github.com/arcanaland/cardex/internal/render"
	"github.com/arcanaland/cardex/internal/router"
	"github.com/arcanaland/cardex/internal/theme"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

type pages struct {
	tmpl *template.Template
	md   *markdown
}

type pageData struct {
	Title     string
	Dark      bool
	Indicator string
	Palette   theme.Palette
	Return    string

	View     string
	Query    string
	Visible  bool
	Empty    bool
	Results  []resultItem
	NotFound string
	Message  string
	Fallback bool
	Total    int
	Hint     string

	Card *cardView
}

type resultItem struct {
	ID   string
	Name string
	Type string
	Link string
}

type cardView struct {
	render.ViewModel
	DescriptionHTML template.HTML
	RulesHTML       []template.HTML
	Fragment        string
}

func parsePages() (*pages, error) {
	tmpl, err := template.New("_root").ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	return &pages{tmpl: tmpl, md: newMarkdown()}, nil
}

func (p *pages) render(w http.ResponseWriter, status int, data pageData) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return p.tmpl.ExecuteTemplate(w, "base", data)
}

func (p *pages) cardView(vm render.ViewModel) *cardView {
	cv := &cardView{ViewModel: vm, Fragment: router.FragmentFor(vm.ID)}
	if vm.HasDescription {
		cv.DescriptionHTML = p.md.Block(vm.Description)
	}
	for _, rule := range vm.Rules {
		cv.RulesHTML = append(cv.RulesHTML, p.md.Inline(rule))
	}
	return cv
}

func resultItems(cards []card.Card) []resultItem {
	items := make([]resultItem, 0, len(cards))
	for _, c := range cards {
		items = append(items, resultItem{
			ID:   c.ID,
			Name: c.DisplayName(),
			Type: c.Type,
			Link: cardLink(c.ID),
		})
	}
	return items
}

func cardLink(id string) string {
	return "/card?id=" + url.QueryEscape(id)
}
