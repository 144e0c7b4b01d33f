package domain

import (
	restaurants "github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/modules/restaurants/domain"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/resource"
)

const EntityName = "booking"

// Layouts of OrderDate and OrderHour.
const (
	DateLayout = "2006-01-02"
	HourLayout = "15:04"
)

// Booking reserves seats in a restaurant. A restaurant cannot be removed while it has bookings.
type Booking struct {
	resource.Model
	GuestNumber  int                     `gorm:"not null" json:"guestNumber" validate:"min=1"`
	OrderDate    string                  `gorm:"size:10;not null" json:"orderDate" validate:"required,datetime=2006-01-02"`
	OrderHour    string                  `gorm:"size:5;not null" json:"orderHour" validate:"required,datetime=15:04"`
	Allergy      *string                 `gorm:"size:255" json:"allergy" validate:"omitempty,max=255"`
	RestaurantID uint                    `gorm:"not null;index" json:"restaurantId" validate:"required"`
	Restaurant   *restaurants.Restaurant `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}

type BookingPatch struct {
	GuestNumber  resource.Optional[int]     `json:"guestNumber"`
	OrderDate    resource.Optional[string]  `json:"orderDate"`
	OrderHour    resource.Optional[string]  `json:"orderHour"`
	Allergy      resource.Optional[*string] `json:"allergy"`
	RestaurantID resource.Optional[uint]    `json:"restaurantId"`
}

func (p BookingPatch) Apply(b *Booking) {
	p.GuestNumber.ApplyTo(&b.GuestNumber)
	p.OrderDate.ApplyTo(&b.OrderDate)
	p.OrderHour.ApplyTo(&b.OrderHour)
	p.Allergy.ApplyTo(&b.Allergy)
	p.RestaurantID.ApplyTo(&b.RestaurantID)
}
