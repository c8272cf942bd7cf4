package tracker

import "fmt"

// Category classifies habits and goals. The set is closed; see Categories.
type Category string

const (
	CategoryHealth       Category = "health"
	CategoryProductivity Category = "productivity"
	CategoryLearning     Category = "learning"
	CategoryWellness     Category = "wellness"
	CategoryFitness      Category = "fitness"
	CategoryPersonal     Category = "personal"
)

// Categories lists every category in canonical order.
var Categories = []Category{
	CategoryHealth,
	CategoryProductivity,
	CategoryLearning,
	CategoryWellness,
	CategoryFitness,
	CategoryPersonal,
}

// Valid reports whether c is a member of Categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory converts s into a Category, rejecting unknown values.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", &Error{
			Kind:  KindMalformedRecord,
			Field: "category",
			Value: s,
			Err:   fmt.Errorf("must be one of %v", Categories),
		}
	}
	return c, nil
}

// MissingCategories returns the categories in canonical order that do not
// appear in present.
func MissingCategories(present map[Category]bool) []Category {
	var missing []Category
	for _, c := range Categories {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	return missing
}
