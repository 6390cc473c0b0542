// Package plantdb holds the static plant knowledge shipped with the
// backend: the alias table that turns free-text plant names into stable
// slugs, and the built-in target-range tables for the plants the Nasgh
// project was piloted with.
package plantdb

import "github.com/haithamsoil/nasgh/internal/domain"

// plant is one canonical plant with its accepted spellings.
type plant struct {
	key         string
	displayName string
	aliases     []string
	ranges      map[domain.Stage]domain.RangeRecord
}

// plants is the canonical plant list. Order matters: the substring
// phase of Normalize scans it front to back and returns the first hit.
var plants = []plant{
	{
		key:         "tomato",
		displayName: "طماطم",
		aliases:     []string{"طماطم", "طماطة", "بندورة", "tomato"},
		ranges:      vegetableRanges,
	},
	{
		key:         "cucumber",
		displayName: "خيار",
		aliases:     []string{"خيار", "cucumber"},
		ranges:      vegetableRanges,
	},
	{
		key:         "lemon",
		displayName: "ليمون",
		aliases:     []string{"ليمون", "lemon"},
		ranges:      fruitTreeRanges,
	},
	{
		key:         "date-palm",
		displayName: "نخيل تمر",
		aliases:     []string{"نخيل", "نخيل تمر", "نخل", "تمر", "date palm", "date"},
		ranges:      palmRanges,
	},
	{
		key:         "lettuce",
		displayName: "خس",
		aliases:     []string{"خس", "lettuce"},
		ranges:      leafyRanges,
	},
	{
		key:         "pepper",
		displayName: "فلفل",
		aliases:     []string{"فلفل", "فلفل حلو", "فلفل رومي", "pepper"},
		ranges:      vegetableRanges,
	},
	{
		key:         "eggplant",
		displayName: "باذنجان",
		aliases:     []string{"باذنجان", "eggplant", "aubergine"},
		ranges:      vegetableRanges,
	},
	{
		key:         "strawberry",
		displayName: "فراولة",
		aliases:     []string{"فراولة", "فريز", "strawberry"},
		ranges:      berryRanges,
	},
	{
		key:         "olive",
		displayName: "زيتون",
		aliases:     []string{"زيتون", "olive"},
		ranges:      fruitTreeRanges,
	},
	{
		key:         "grape",
		displayName: "عنب",
		aliases:     []string{"عنب", "كرمة", "grape"},
		ranges:      fruitTreeRanges,
	},
}

// DisplayName returns the Arabic display name for a known plant key,
// or the key itself for generated (slugged) plants.
func DisplayName(plantKey string) string {
	for _, p := range plants {
		if p.key == plantKey {
			return p.displayName
		}
	}
	return plantKey
}

// Known reports whether plantKey is one of the built-in plants.
func Known(plantKey string) bool {
	for _, p := range plants {
		if p.key == plantKey {
			return true
		}
	}
	return false
}
