package store

import "github.com/arcanaland/cardex/internal/card"

var fallbackCards = []card.Card{
	{
		ID:          "goomba",
		Name:        "Goomba",
		Type:        "Common Creature",
		Description: "A small, brown mushroom-like creature. Weak but appears in large numbers. (Fallback Data)",
		Stats:       map[string]float64{},
		Image:       "Images/goomba.png",
	},
	{
		ID:          "baseline-earth",
		Name:        "Baseline Earth",
		Type:        "Terrain",
		Description: "Fundamental earth element that provides stability and defense. (Fallback Data)",
		Stats:       map[string]float64{},
		Image:       "Images/earth.png",
	},
}

// Fallback returns a copy of the built-in card set used when the database
// cannot be loaded.
func Fallback() []card.Card {
	out := make([]card.Card, len(fallbackCards))
	for i, c := range fallbackCards {
		out[i] = c.Clone()
	}
	return out
}
