package domain

import (
	categories "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/categories/domain"
	restaurants "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/restaurants/domain"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/resource"
	"gorm.io/gorm"
)

const EntityName = "menu"

// Menu belongs to a restaurant and is removed with it.
type Menu struct {
	resource.Model
	Title        string                  `gorm:"size:64;not null" json:"title" validate:"required,max=64"`
	Description  string                  `gorm:"type:text;not null" json:"description"`
	Price        int                     `gorm:"not null" json:"price" validate:"min=0"`
	RestaurantID uint                    `gorm:"not null;index" json:"restaurantId" validate:"required"`
	Restaurant   *restaurants.Restaurant `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Categories   []categories.Category   `gorm:"many2many:menu_category;constraint:OnDelete:CASCADE" json:"-"`
	CategoryIDs  []uint                  `gorm:"-" json:"categoryIds"`
}

func (m *Menu) AfterFind(*gorm.DB) error {
	m.CategoryIDs = categories.IDs(m.Categories)
	return nil
}

// CategorySet returns the category identifiers to persist.
func (m *Menu) CategorySet() []uint { return m.CategoryIDs }

// SetCategories records the persisted category set.
func (m *Menu) SetCategories(linked []categories.Category) {
	m.Categories = linked
	m.CategoryIDs = categories.IDs(linked)
}

type MenuPatch struct {
	Title        resource.Optional[string] `json:"title"`
	Description  resource.Optional[string] `json:"description"`
	Price        resource.Optional[int]    `json:"price"`
	RestaurantID resource.Optional[uint]   `json:"restaurantId"`
	CategoryIDs  resource.Optional[[]uint] `json:"categoryIds"`
}

func (p MenuPatch) Apply(m *Menu) {
	p.Title.ApplyTo(&m.Title)
	p.Description.ApplyTo(&m.Description)
	p.Price.ApplyTo(&m.Price)
	p.RestaurantID.ApplyTo(&m.RestaurantID)
	p.CategoryIDs.ApplyTo(&m.CategoryIDs)
}
