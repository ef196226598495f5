package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/arcanaland/cardex/internal/card"
)

var sample = []card.Card{
	{ID: "goomba", Name: "Goomba", Type: "Common Creature", Description: "A small, brown mushroom-like creature."},
	{ID: "baseline-earth", Name: "Baseline Earth", Type: "Terrain", Description: "Provides stability and defense."},
	{ID: "koopa", Name: "Koopa Troopa", Type: "Common Creature", Description: "Retreats into its shell."},
	{ID: "eclair", Name: "éclair", Type: "Item", Description: "Restores health."},
	{ID: "boo", Name: "Boo", Type: "Ghost", Description: "Shy when watched."},
}

func TestBlankQueryHidesResults(t *testing.T) {
	ix := New(sample)
	for _, q := range []string{"", " ", "\t\n  "} {
		res := ix.Search(q)
		assert.Empty(t, res.Cards)
		assert.False(t, res.Visible, "query %q", q)
		assert.False(t, res.NoResults, "query %q", q)
	}
}

func TestNoMatchesIsVisible(t *testing.T) {
	res := New(sample).Search("zzz")
	assert.Empty(t, res.Cards)
	assert.True(t, res.Visible)
	assert.True(t, res.NoResults)
}

func TestCaseInsensitiveSubstring(t *testing.T) {
	res := New(sample).Search("  OOMB ")
	require.Len(t, res.Cards, 1)
	assert.Equal(t, "goomba", res.Cards[0].ID)
	assert.Equal(t, "OOMB", res.Query)
}

func TestMatchesTypeAndDescription(t *testing.T) {
	ix := New(sample)

	res := ix.Search("creature")
	require.Len(t, res.Cards, 2)
	assert.Equal(t, []string{"Goomba", "Koopa Troopa"}, names(res.Cards))

	res = ix.Search("shell")
	require.Len(t, res.Cards, 1)
	assert.Equal(t, "koopa", res.Cards[0].ID)
}

func TestNameOnlyPolicy(t *testing.T) {
	ix := New(sample, WithFields(FieldsName))
	assert.Equal(t, FieldsName, ix.Fields())
	assert.True(t, ix.Search("creature").NoResults)
	assert.Len(t, ix.Search("boo").Cards, 1)
}

func TestResultsSortedByLocale(t *testing.T) {
	ix := New(sample, WithLocale(language.French))
	res := ix.Search("e")
	require.NotEmpty(t, res.Cards)
	for i := 1; i < len(res.Cards); i++ {
		assert.LessOrEqual(t, ix.Compare(res.Cards[i-1].Name, res.Cards[i].Name), 0)
	}
	// Accented names collate with their base letter, not after "z".
	assert.Equal(t, []string{"Baseline Earth", "Boo", "éclair", "Goomba", "Koopa Troopa"}, names(ix.Search("e").Cards))
}

func TestLimit(t *testing.T) {
	res := New(sample, WithLimit(1)).Search("creature")
	require.Len(t, res.Cards, 1)
	assert.Equal(t, "Goomba", res.Cards[0].Name)
}

func TestParseFields(t *testing.T) {
	assert.Equal(t, FieldsName, ParseFields(" Name "))
	assert.Equal(t, FieldsAll, ParseFields(""))
	assert.Equal(t, FieldsAll, ParseFields("everything"))
}

func names(cards []card.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Name
	}
	return out
}
