package router

import (
	"net/url"
	"strings"
)

// FragmentPrefix precedes the card ID in a deep-link fragment.
const FragmentPrefix = "card-"

// FragmentFor returns the deep-link fragment for a card, e.g. "#card-goomba".
func FragmentFor(id string) string {
	return "#" + FragmentPrefix + id
}

// ParseLocation extracts a card ID from a deep link. It understands
// "#card-<id>", "card-<id>", full URLs carrying such a fragment, and the
// query form "?id=<id>". ok is false when the location selects no card.
// A card fragment whose escapes are malformed still yields its raw ID.
func ParseLocation(loc string) (id string, ok bool) {
	loc = strings.TrimSpace(loc)
	if loc == "" || loc == "#" {
		return "", false
	}

	if strings.HasPrefix(loc, FragmentPrefix) {
		return unescapeID(strings.TrimPrefix(loc, FragmentPrefix))
	}
	if i := strings.Index(loc, "#"+FragmentPrefix); i >= 0 {
		return unescapeID(loc[i+1+len(FragmentPrefix):])
	}

	u, err := url.Parse(loc)
	if err != nil {
		return "", false
	}
	// Query values are already unescaped.
	return trimID(u.Query().Get("id"))
}

func unescapeID(raw string) (string, bool) {
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}
	return trimID(raw)
}

func trimID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}
