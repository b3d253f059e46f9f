package child

import (
	"time"

	"chore-tracker/internal/domain/chore"
)

type Child struct {
	ID        int64     `gorm:"primaryKey"`
	FamilyID  int64     `gorm:"not null;index"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Child) TableName() string {
	return "children"
}

// Stamp attaches the child to its family. Ownership is inherited from the
// family, so the user id is not stored.
func (c *Child) Stamp(_ int64, familyID int64) {
	c.FamilyID = familyID
}

// Expanded is a child together with its chores. Chores is nil unless the
// child was loaded with expansion.
type Expanded struct {
	Child
	Chores []chore.Chore
}

type ListFilter struct {
	FamilyID *int64
}

type CreateInput struct {
	FamilyID int64
	Name     string
}

type UpdateInput struct {
	FamilyID *int64
	Name     *string
}
