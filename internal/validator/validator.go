package validator

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/arcanaland/cardex/internal/card"
	"github.com/arcanaland/cardex/internal/store"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	DatabasePath string
	// ImageBase is where relative image paths are looked up; defaults to the
	// database's directory.
	ImageBase string
	Results   ValidationResults

	cards []card.Card
}

// idPattern keeps IDs usable in "#card-<id>" fragments without escaping.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._~-]*$`)

var imageExtensions = []string{".svg", ".png", ".jpg", ".jpeg", ".webp", ".gif"}

func NewValidator(databasePath string) *Validator {
	return &Validator{
		DatabasePath: databasePath,
		ImageBase:    filepath.Dir(databasePath),
		Results:      ValidationResults{},
	}
}

// Validate parses the database and checks every record. Only an unreadable
// or unparseable database is returned as an error; problems with individual
// cards are collected in the results.
func (v *Validator) Validate() (ValidationResults, error) {
	if err := v.validateDatabase(); err != nil {
		return v.Results, err
	}

	v.validateIdentifiers()
	v.validateRequiredFields()
	v.validateStats()
	v.validateRules()
	v.validateImages()

	return v.Results, nil
}

func (v *Validator) validateDatabase() error {
	data, err := os.ReadFile(v.DatabasePath)
	if err != nil {
		return fmt.Errorf("reading card database: %w", err)
	}

	if strings.EqualFold(filepath.Ext(v.DatabasePath), ".toml") {
		v.cards, err = store.DecodeTOML(data)
	} else {
		v.cards, err = store.Decode(data)
	}
	if err != nil {
		return err
	}

	if len(v.cards) == 0 {
		v.Results.Errors = append(v.Results.Errors, "card database contains no cards")
	}
	return nil
}

// validateIdentifiers checks that IDs are present, unique and link-safe
func (v *Validator) validateIdentifiers() {
	seen := make(map[string]int, len(v.cards))
	for i, c := range v.cards {
		if strings.TrimSpace(c.ID) == "" {
			v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("card #%d: id is required", i+1))
			continue
		}
		if first, dup := seen[c.ID]; dup {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("card #%d: duplicate id %q (first used by card #%d)", i+1, c.ID, first+1))
			continue
		}
		seen[c.ID] = i
		if !idPattern.MatchString(c.ID) {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("card %q: id contains characters that must be escaped in deep links", c.ID))
		}
	}
}

func (v *Validator) validateRequiredFields() {
	names := make(map[string]string, len(v.cards))
	for i, c := range v.cards {
		label := cardLabel(i, c)
		if strings.TrimSpace(c.Name) == "" {
			v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("%s: name is required", label))
		} else {
			key := strings.ToLower(strings.TrimSpace(c.Name))
			if other, dup := names[key]; dup {
				v.Results.Warnings = append(v.Results.Warnings,
					fmt.Sprintf("%s: name %q is also used by %s", label, c.Name, other))
			} else {
				names[key] = label
			}
		}
		if strings.TrimSpace(c.Type) == "" {
			v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("%s: type is required", label))
		}
		if strings.TrimSpace(c.Description) == "" {
			v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf("%s: no description", label))
		}
	}
}

// validateStats rejects values that cannot be displayed
func (v *Validator) validateStats() {
	for i, c := range v.cards {
		for name, value := range c.Stats {
			if strings.TrimSpace(name) == "" {
				v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("%s: stat with empty name", cardLabel(i, c)))
			}
			if math.IsNaN(value) || math.IsInf(value, 0) {
				v.Results.Errors = append(v.Results.Errors,
					fmt.Sprintf("%s: stat %q is not a finite number", cardLabel(i, c), name))
			}
		}
	}
}

func (v *Validator) validateRules() {
	for i, c := range v.cards {
		for j, rule := range c.Rules {
			if strings.TrimSpace(rule) == "" {
				v.Results.Warnings = append(v.Results.Warnings,
					fmt.Sprintf("%s: rule %d is empty", cardLabel(i, c), j+1))
			}
		}
	}
}

// validateImages checks that local image references exist
func (v *Validator) validateImages() {
	for i, c := range v.cards {
		ref := strings.TrimSpace(c.Image)
		label := cardLabel(i, c)
		if ref == "" {
			v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf("%s: no image, placeholder will be shown", label))
			continue
		}
		if strings.Contains(ref, "://") || strings.HasPrefix(ref, "data:") {
			continue
		}

		if !hasImageExtension(ref) {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("%s: image %s has an unrecognised extension", label, ref))
		}

		imagePath := ref
		if !filepath.IsAbs(imagePath) {
			imagePath = filepath.Join(v.ImageBase, filepath.FromSlash(ref))
		}
		if _, err := os.Stat(imagePath); os.IsNotExist(err) {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("%s: image not found: %s", label, ref))
		}
	}
}

func hasImageExtension(ref string) bool {
	ext := strings.ToLower(filepath.Ext(ref))
	for _, e := range imageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

func cardLabel(i int, c card.Card) string {
	if c.ID != "" {
		return fmt.Sprintf("card %q", c.ID)
	}
	return fmt.Sprintf("card #%d", i+1)
}
