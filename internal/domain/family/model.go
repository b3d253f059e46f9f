package family

import (
	"time"

	"chore-tracker/internal/domain/child"
)

type Family struct {
	ID          int64     `gorm:"primaryKey"`
	OwnerUserID int64     `gorm:"not null;index"`
	Surname     string    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Family) TableName() string {
	return "families"
}

func (f *Family) Stamp(userID, _ int64) {
	f.OwnerUserID = userID
}

// Expanded is a family with its children, each carrying its chores.
// Children is nil unless the family was loaded with expansion.
type Expanded struct {
	Family
	Children []child.Expanded
}

type CreateInput struct {
	Surname string
}

type UpdateInput struct {
	Surname *string
}
