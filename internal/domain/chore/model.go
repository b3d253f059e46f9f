package chore

import "time"

type Chore struct {
	ID          int64      `gorm:"primaryKey"`
	ChildID     int64      `gorm:"not null;index"`
	OwnerUserID int64      `gorm:"not null;index"`
	Title       string     `gorm:"not null"`
	DueDate     *time.Time `gorm:"type:date"`
	Completed   bool       `gorm:"not null;default:false"`
	Description *string
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Chore) TableName() string {
	return "chores"
}

// Stamp sets the owner and child from the authenticated caller, never from
// request input.
func (c *Chore) Stamp(userID, childID int64) {
	c.OwnerUserID = userID
	c.ChildID = childID
}

type ListFilter struct {
	ChildID   *int64
	Completed *bool
}

type CreateInput struct {
	ChildID     int64
	Title       string
	DueDate     *time.Time
	Completed   bool
	Description *string
}

type UpdateInput struct {
	ChildID *int64
	Title   *string
	DueDate *time.Time
	// ClearDueDate removes the due date. It wins over DueDate.
	ClearDueDate bool
	Completed    *bool
	Description  *string
}
