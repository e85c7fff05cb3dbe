package models

import "strings"

const (
	CategoryAccessories   = "accessories"
	CategoryClothes       = "clothes"
	CategoryCar           = "car"
	CategoryUncategorized = "uncategorized"

	// CategoryAll is the listing filter that matches every product.
	CategoryAll = "all"
)

var Categories = []string{
	CategoryAccessories,
	CategoryClothes,
	CategoryCar,
	CategoryUncategorized,
}

var categoryDisplayNames = map[string]string{
	CategoryAccessories:   "Accessories",
	CategoryClothes:       "Clothes",
	CategoryCar:           "Car Accessories",
	CategoryUncategorized: "Other",
}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// NormalizeCategory lower-cases the input and maps an empty value to
// CategoryUncategorized.
func NormalizeCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return CategoryUncategorized
	}
	return category
}

func CategoryDisplayName(category string) string {
	if name, ok := categoryDisplayNames[category]; ok {
		return name
	}
	return category
}
