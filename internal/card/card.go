package card

import "strings"

// Card represents one catalog entry
type Card struct {
	ID          string             `json:"id" toml:"id"`                                       // Stable identifier used in deep links (e.g., goomba)
	Name        string             `json:"name" toml:"name"`                                   // Display name
	Type        string             `json:"type" toml:"type"`                                   // Free-text category (e.g., Common Creature)
	Description string             `json:"description,omitempty" toml:"description,omitempty"` // Flavor or rules text
	Stats       map[string]float64 `json:"stats,omitempty" toml:"stats,omitempty"`             // Attribute name to value
	Rules       []string           `json:"rules,omitempty" toml:"rules,omitempty"`             // Special rules, in order
	Image       string             `json:"image,omitempty" toml:"image,omitempty"`             // Relative path or absolute URL
}

// Clone returns a deep copy so callers cannot mutate loaded data
func (c Card) Clone() Card {
	out := c
	if c.Stats != nil {
		out.Stats = make(map[string]float64, len(c.Stats))
		for k, v := range c.Stats {
			out.Stats[k] = v
		}
	}
	if c.Rules != nil {
		out.Rules = append([]string(nil), c.Rules...)
	}
	return out
}

// DisplayName falls back to the ID when a card has no name
func (c Card) DisplayName() string {
	if name := strings.TrimSpace(c.Name); name != "" {
		return name
	}
	return c.ID
}
