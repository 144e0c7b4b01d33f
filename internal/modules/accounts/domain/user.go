package domain

import (
	"crypto/rand"
	"encoding/hex"
	"slices"
	"time"

	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/shared/resource"
)

const (
	EntityName = "user"
	// RoleUser is granted to every account.
	RoleUser = "ROLE_USER"
	// apiTokenBytes random bytes give a 40 character hexadecimal token.
	apiTokenBytes = 20
)

// User is an account. Password holds the bcrypt hash and is never serialized.
type User struct {
	resource.Model
	Email       string   `gorm:"size:180;not null;uniqueIndex" json:"email" validate:"required,email,max=180"`
	Password    string   `gorm:"size:255;not null" json:"-"`
	FirstName   string   `gorm:"size:32;not null" json:"firstName" validate:"max=32"`
	LastName    string   `gorm:"size:32;not null" json:"lastName" validate:"max=32"`
	Roles       []string `gorm:"serializer:json;type:text;not null" json:"roles"`
	GuestNumber *int     `json:"guestNumber" validate:"omitempty,min=0"`
	Allergy     *string  `gorm:"size:255" json:"allergy" validate:"omitempty,max=255"`
	APIToken    string   `gorm:"size:40;not null;uniqueIndex" json:"apiToken"`
}

// NewUser returns an account holding RoleUser and a fresh API token.
func NewUser() *User {
	return &User{
		Roles:    []string{RoleUser},
		APIToken: GenerateAPIToken(),
	}
}

// GenerateAPIToken returns 20 random bytes hex encoded.
func GenerateAPIToken() string {
	buf := make([]byte, apiTokenBytes)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

// Identifier is the login name of the account.
func (u *User) Identifier() string { return u.Email }

// GetRoles returns the stored roles, always including RoleUser.
func (u *User) GetRoles() []string {
	roles := make([]string, 0, len(u.Roles)+1)
	for _, r := range u.Roles {
		if r != "" && !slices.Contains(roles, r) {
			roles = append(roles, r)
		}
	}
	if !slices.Contains(roles, RoleUser) {
		roles = append(roles, RoleUser)
	}
	return roles
}

// UserPatch lists the fields a client may write on its account.
type UserPatch struct {
	Email       resource.Optional[string]  `json:"email"`
	Password    resource.Optional[string]  `json:"password"`
	FirstName   resource.Optional[string]  `json:"firstName"`
	LastName    resource.Optional[string]  `json:"lastName"`
	GuestNumber resource.Optional[*int]    `json:"guestNumber"`
	Allergy     resource.Optional[*string] `json:"allergy"`
}

// Apply merges every present field except Password, which must be hashed first.
func (p UserPatch) Apply(u *User) {
	p.Email.ApplyTo(&u.Email)
	p.FirstName.ApplyTo(&u.FirstName)
	p.LastName.ApplyTo(&u.LastName)
	p.GuestNumber.ApplyTo(&u.GuestNumber)
	p.Allergy.ApplyTo(&u.Allergy)
}

// UserView is the read projection of an account.
type UserView struct {
	ID          uint       `json:"id"`
	Email       string     `json:"email"`
	Roles       []string   `json:"roles"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	APIToken    string     `json:"apiToken"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	GuestNumber *int       `json:"guestNumber"`
	Allergy     *string    `json:"allergy"`
}

func (u *User) View() UserView {
	return UserView{
		ID:          u.ID,
		Email:       u.Email,
		Roles:       u.GetRoles(),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
		APIToken:    u.APIToken,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		GuestNumber: u.GuestNumber,
		Allergy:     u.Allergy,
	}
}

// Credentials is returned by registration and login.
type Credentials struct {
	User     string   `json:"user"`
	APIToken string   `json:"apiToken"`
	Roles    []string `json:"roles"`
}

func (u *User) Credentials() Credentials {
	return Credentials{User: u.Identifier(), APIToken: u.APIToken, Roles: u.GetRoles()}
}

// Profile is the account data carried by change events; it leaves out the credentials.
type Profile struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName}
}
