package domain

import (
	"sort"

	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/resource"
)

const EntityName = "category"

// Join tables linking categories to foods and menus.
const (
	FoodJoinTable = "food_category"
	MenuJoinTable = "menu_category"
)

type Category struct {
	resource.Model
	Title string `gorm:"size:64;not null" json:"title" validate:"required,max=64"`
}

type CategoryPatch struct {
	Title resource.Optional[string] `json:"title"`
}

func (p CategoryPatch) Apply(c *Category) {
	p.Title.ApplyTo(&c.Title)
}

// IDs returns the sorted identifiers of categories.
func IDs(categories []Category) []uint {
	ids := make([]uint, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
