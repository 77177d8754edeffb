// Package ads implements the advertisement resource: creation, lookup,
// owner-guarded updates and deletion.
package ads

import "time"

// Ad is the persisted advertisement record, joined with its author's name for
// presentation.
type Ad struct {
	ID          int
	Title       string
	Description string
	CreatedAt   time.Time
	AuthorID    int
	AuthorName  string
}

// Patch describes a partial update. Nil fields are left unchanged.
type Patch struct {
	Title       *string
	Description *string
}

// IsEmpty reports whether the patch carries no changes.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil
}
