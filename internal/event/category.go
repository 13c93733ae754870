package event

import "strings"

// Fixed category taxonomy. Events whose category does not map onto one of
// these fall back to CategoryOther.
const (
	CategoryMusic    = "Music"
	CategorySports   = "Sports"
	CategoryArts     = "Arts"
	CategoryFood     = "Food"
	CategoryBusiness = "Business"
	CategoryOther    = "Other"
)

// categorySynonyms maps lowercased raw category labels onto the taxonomy.
// Exact taxonomy names are included so already-clean values pass through.
var categorySynonyms = map[string]string{
	"music":          CategoryMusic,
	"concert":        CategoryMusic,
	"concerts":       CategoryMusic,
	"live music":     CategoryMusic,
	"dj":             CategoryMusic,
	"sports":         CategorySports,
	"sport":          CategorySports,
	"fitness":        CategorySports,
	"running":        CategorySports,
	"arts":           CategoryArts,
	"art":            CategoryArts,
	"theater":        CategoryArts,
	"theatre":        CategoryArts,
	"culture":        CategoryArts,
	"cultural":       CategoryArts,
	"festival":       CategoryArts,
	"film":           CategoryArts,
	"comedy":         CategoryArts,
	"food":           CategoryFood,
	"food & drink":   CategoryFood,
	"food and drink": CategoryFood,
	"dining":         CategoryFood,
	"wine":           CategoryFood,
	"beer":           CategoryFood,
	"business":       CategoryBusiness,
	"networking":     CategoryBusiness,
	"conference":     CategoryBusiness,
	"tech":           CategoryBusiness,
	"technology":     CategoryBusiness,
	"other":          CategoryOther,
}

// MapCategory maps a raw category label onto the fixed taxonomy.
// The lookup is case-insensitive; empty or unmatched labels map to Other.
func MapCategory(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if mapped, ok := categorySynonyms[key]; ok {
		return mapped
	}
	return CategoryOther
}
