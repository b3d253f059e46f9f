package ownership

import "slices"

// Scope describes how rows of one table resolve to their owning user.
//
// A scope is owned either directly, through OwnerColumn holding the user id,
// or transitively, through ParentColumn pointing at a row of Parent. A scope
// may have both: the owner column is then used for filtering while Parent is
// still consulted whenever a row is attached to a (new) parent.
type Scope struct {
	Table        string
	OwnerColumn  string
	ParentColumn string
	Parent       *Scope
	// Filterable lists the columns List accepts in a Filter.
	Filterable []string
	// Mutable lists the columns Update accepts in Changes.
	Mutable []string
}

func (s Scope) CanFilter(column string) bool {
	return column == "id" || slices.Contains(s.Filterable, column)
}

func (s Scope) CanChange(column string) bool {
	return slices.Contains(s.Mutable, column)
}

// Direct reports whether ownership is stored on the row itself.
func (s Scope) Direct() bool {
	return s.OwnerColumn != ""
}

var (
	Families = Scope{
		Table:       "families",
		OwnerColumn: "owner_user_id",
		Filterable:  []string{"surname"},
		Mutable:     []string{"surname"},
	}

	Children = Scope{
		Table:        "children",
		ParentColumn: "family_id",
		Parent:       &Families,
		Filterable:   []string{"family_id", "name"},
		Mutable:      []string{"family_id", "name"},
	}

	Chores = Scope{
		Table:        "chores",
		OwnerColumn:  "owner_user_id",
		ParentColumn: "child_id",
		Parent:       &Children,
		Filterable:   []string{"child_id", "completed"},
		Mutable:      []string{"child_id", "title", "due_date", "completed", "description"},
	}
)
