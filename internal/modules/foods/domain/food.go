package domain

import (
	categories "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/categories/domain"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/resource"
	"gorm.io/gorm"
)

const EntityName = "food"

// Food is a dish of the card. Price is expressed in cents.
type Food struct {
	resource.Model
	Title       string                `gorm:"size:64;not null" json:"title" validate:"required,max=64"`
	Description string                `gorm:"type:text;not null" json:"description"`
	Price       int                   `gorm:"not null" json:"price" validate:"min=0"`
	Categories  []categories.Category `gorm:"many2many:food_category;constraint:OnDelete:CASCADE" json:"-"`
	CategoryIDs []uint                `gorm:"-" json:"categoryIds"`
}

// AfterFind exposes the preloaded categories as identifiers.
func (f *Food) AfterFind(*gorm.DB) error {
	f.CategoryIDs = categories.IDs(f.Categories)
	return nil
}

// CategorySet returns the category identifiers to persist.
func (f *Food) CategorySet() []uint { return f.CategoryIDs }

// SetCategories records the persisted category set.
func (f *Food) SetCategories(linked []categories.Category) {
	f.Categories = linked
	f.CategoryIDs = categories.IDs(linked)
}

type FoodPatch struct {
	Title       resource.Optional[string] `json:"title"`
	Description resource.Optional[string] `json:"description"`
	Price       resource.Optional[int]    `json:"price"`
	CategoryIDs resource.Optional[[]uint] `json:"categoryIds"`
}

func (p FoodPatch) Apply(f *Food) {
	p.Title.ApplyTo(&f.Title)
	p.Description.ApplyTo(&f.Description)
	p.Price.ApplyTo(&f.Price)
	p.CategoryIDs.ApplyTo(&f.CategoryIDs)
}
