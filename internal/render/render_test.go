package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/cardex/internal/card"
)

func TestRenderFullCard(t *testing.T) {
	r := New("/catalog")
	vm := r.Render(card.Card{
		ID:          "koopa",
		Name:        "Koopa Troopa",
		Type:        "Common Creature",
		Description: "Retreats into its shell.",
		Stats:       map[string]float64{"defense": 3, "attack": 1.5},
		Rules:       []string{"Shell bounces.", "  ", "Cannot fly."},
		Image:       "Images/koopa.png",
	})

	assert.Equal(t, "Koopa Troopa", vm.Title)
	assert.Equal(t, "Common Creature", vm.TypeLabel)
	assert.Equal(t, []Stat{{Label: "attack", Value: "1.5", Raw: 1.5}, {Label: "defense", Value: "3", Raw: 3}}, vm.Stats)
	assert.Equal(t, []string{"Shell bounces.", "Cannot fly."}, vm.Rules)
	assert.True(t, vm.HasDescription)
	assert.Equal(t, "/catalog/Images/koopa.png", vm.Image)
	assert.Equal(t, PlaceholderImage, vm.Placeholder)
}

func TestRenderPlaceholders(t *testing.T) {
	vm := New("").Render(card.Card{ID: "mystery", Stats: map[string]float64{}})

	assert.Equal(t, "mystery", vm.Title)
	assert.Equal(t, UnknownType, vm.TypeLabel)
	assert.Nil(t, vm.Stats)
	assert.Nil(t, vm.Rules)
	assert.False(t, vm.HasDescription)
	assert.Equal(t, NoDescription, vm.Description)
	assert.Equal(t, PlaceholderImage, vm.Image)
}

func TestRenderIsIdempotent(t *testing.T) {
	r := New("https://cards.example.com/app", WithPlaceholder("/static/blank.png"))
	c := card.Card{
		ID:    "boo",
		Name:  "Boo",
		Stats: map[string]float64{"speed": 4, "attack": 2, "stealth": 9},
		Rules: []string{"Hides when watched."},
		Image: "Images/boo.png",
	}
	first := r.Render(c)
	second := r.Render(c)
	require.Equal(t, first, second)
	assert.Equal(t, "/static/blank.png", first.Placeholder)
}

func TestResolveImage(t *testing.T) {
	cases := []struct {
		base, ref, want string
	}{
		{"", "Images/goomba.png", "Images/goomba.png"},
		{"", "./Images/../Images/goomba.png", "Images/goomba.png"},
		{"static", "Images/goomba.png", "static/Images/goomba.png"},
		{"/srv/cards", "/abs/goomba.png", "/abs/goomba.png"},
		{"/srv/cards", "https://cdn.example.com/g.png", "https://cdn.example.com/g.png"},
		{"https://cards.example.com/app", "Images/goomba.png", "https://cards.example.com/app/Images/goomba.png"},
		{"https://cards.example.com/app/", "./Images/goomba.png", "https://cards.example.com/app/Images/goomba.png"},
		{"/srv/cards", "", PlaceholderImage},
	}
	for _, tc := range cases {
		r := New(tc.base)
		assert.Equal(t, tc.want, r.ResolveImage(tc.ref), "base=%q ref=%q", tc.base, tc.ref)
	}
}

func TestNotFoundMessage(t *testing.T) {
	assert.Equal(t, "Card not found: unknown", NotFoundMessage("unknown"))
	assert.Equal(t, "Card not found.", NotFoundMessage(""))
}
