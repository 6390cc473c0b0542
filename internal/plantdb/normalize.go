package plantdb

import (
	"errors"
	"strings"
	"unicode"
)

// ErrEmptyPlantName rejects input with no usable characters.
var ErrEmptyPlantName = errors.New("empty plant name")

// maxSlugLen bounds derived slugs so they stay cache-safe keys.
const maxSlugLen = 50

// Normalize maps a free-text plant name in any script to a stable
// lowercase key. Resolution order: exact alias match, then substring
// containment (either direction) over the canonical plant list in its
// fixed order, then a slug derived from the raw text. It never fails
// for input containing at least one word character.
func Normalize(raw string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return "", ErrEmptyPlantName
	}

	for _, p := range plants {
		for _, alias := range p.aliases {
			if name == strings.ToLower(alias) {
				return p.key, nil
			}
		}
	}

	for _, p := range plants {
		for _, alias := range p.aliases {
			a := strings.ToLower(alias)
			if strings.Contains(name, a) || strings.Contains(a, name) {
				return p.key, nil
			}
		}
	}

	slug := slugify(name)
	if slug == "" {
		return "", ErrEmptyPlantName
	}
	return slug, nil
}

// slugify keeps letters, digits and underscores, collapses everything
// else into single hyphens, and truncates to maxSlugLen runes.
func slugify(s string) string {
	var b strings.Builder
	pendingSep := false
	count := 0
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			if pendingSep && count > 0 {
				b.WriteByte('-')
				count++
				if count >= maxSlugLen {
					break
				}
			}
			pendingSep = false
			b.WriteRune(r)
			count++
			if count >= maxSlugLen {
				break
			}
			continue
		}
		pendingSep = true
	}
	return strings.TrimRight(b.String(), "-")
}
