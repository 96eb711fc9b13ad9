package valueobjects

import "fmt"

// Column identifies a kanban board column. The board groups urgent and
// high tickets into their own columns; everything else lands in normal.
type Column string

const (
	ColumnUrgent Column = "urgent"
	ColumnHigh   Column = "high"
	ColumnNormal Column = "normal"
)

var validColumns = map[Column]bool{
	ColumnUrgent: true,
	ColumnHigh:   true,
	ColumnNormal: true,
}

// columnPriorities maps a drop target deterministically to exactly one
// priority value.
var columnPriorities = map[Column]Priority{
	ColumnUrgent: PriorityUrgent,
	ColumnHigh:   PriorityHigh,
	ColumnNormal: PriorityMedium,
}

func (c Column) String() string {
	return string(c)
}

func (c Column) IsValid() bool {
	return validColumns[c]
}

// Priority returns the priority a drop into this column maps to.
func (c Column) Priority() Priority {
	return columnPriorities[c]
}

// ColumnFor returns the column a ticket with the given priority is
// rendered in.
func ColumnFor(p Priority) Column {
	switch p {
	case PriorityUrgent:
		return ColumnUrgent
	case PriorityHigh:
		return ColumnHigh
	default:
		return ColumnNormal
	}
}

func NewColumn(s string) (Column, error) {
	c := Column(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid kanban column: %s", s)
	}
	return c, nil
}
