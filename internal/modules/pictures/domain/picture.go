package domain

import (
	restaurants "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/restaurants/domain"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/resource"
)

const EntityName = "picture"

// Picture illustrates a restaurant and is removed with it.
type Picture struct {
	resource.Model
	Title        string                  `gorm:"size:128;not null" json:"title" validate:"required,max=128"`
	Slug         string                  `gorm:"size:128;not null" json:"slug" validate:"required,max=128"`
	RestaurantID uint                    `gorm:"not null;index" json:"restaurantId" validate:"required"`
	Restaurant   *restaurants.Restaurant `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type PicturePatch struct {
	Title        resource.Optional[string] `json:"title"`
	Slug         resource.Optional[string] `json:"slug"`
	RestaurantID resource.Optional[uint]   `json:"restaurantId"`
}

func (p PicturePatch) Apply(pic *Picture) {
	p.Title.ApplyTo(&pic.Title)
	p.Slug.ApplyTo(&pic.Slug)
	p.RestaurantID.ApplyTo(&pic.RestaurantID)
}
