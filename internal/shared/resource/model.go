// Package resource implements the create/show/edit/delete cycle shared by every REST resource.
package resource

import "time"

// Model carries the identity and timestamps common to every persisted entity.
// CreatedAt is stamped once by Service.Create; UpdatedAt stays nil until the first edit.
type Model struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime:false" json:"createdAt"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt,omitempty"`
}

func (m *Model) PrimaryKey() uint { return m.ID }

func (m *Model) MarkCreated(now time.Time) { m.CreatedAt = now }

func (m *Model) MarkUpdated(now time.Time) { m.UpdatedAt = &now }

// Record is satisfied by pointers to entities embedding Model.
type Record[T any] interface {
	*T
	PrimaryKey() uint
	MarkCreated(time.Time)
	MarkUpdated(time.Time)
}

// Patch merges the fields present in a request body onto an entity.
type Patch[T any] interface {
	Apply(*T)
}
