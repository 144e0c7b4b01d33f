package domain

import "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/resource"

// EntityName identifies restaurants in routes and change events.
const EntityName = "restaurant"

// Restaurant owns its pictures and menus; bookings reference it without cascading.
type Restaurant struct {
	resource.Model
	Name          string   `gorm:"size:32;not null" json:"name" validate:"required,max=32"`
	Description   string   `gorm:"type:text;not null" json:"description"`
	AmOpeningTime []string `gorm:"serializer:json;type:text;not null" json:"amOpeningTime"`
	PmOpeningTime []string `gorm:"serializer:json;type:text;not null" json:"pmOpeningTime"`
	MaxGuest      int      `gorm:"not null" json:"maxGuest" validate:"min=0"`
}

// RestaurantPatch lists the writable fields of a restaurant.
type RestaurantPatch struct {
	Name          resource.Optional[string]   `json:"name"`
	Description   resource.Optional[string]   `json:"description"`
	AmOpeningTime resource.Optional[[]string] `json:"amOpeningTime"`
	PmOpeningTime resource.Optional[[]string] `json:"pmOpeningTime"`
	MaxGuest      resource.Optional[int]      `json:"maxGuest"`
}

func (p RestaurantPatch) Apply(r *Restaurant) {
	p.Name.ApplyTo(&r.Name)
	p.Description.ApplyTo(&r.Description)
	p.AmOpeningTime.ApplyTo(&r.AmOpeningTime)
	p.PmOpeningTime.ApplyTo(&r.PmOpeningTime)
	p.MaxGuest.ApplyTo(&r.MaxGuest)
	if r.AmOpeningTime == nil {
		r.AmOpeningTime = []string{}
	}
	if r.PmOpeningTime == nil {
		r.PmOpeningTime = []string{}
	}
}

// PictureSummary is the picture projection embedded in the public restaurant view.
type PictureSummary struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// PublicRestaurant is the read projection served by GET /api/restaurant/{id}.
type PublicRestaurant struct {
	*Restaurant
	Pictures []PictureSummary `json:"pictures"`
}
