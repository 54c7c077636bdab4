package report

import "fmt"

// Lookup stages reported by NotFoundError
const (
	StageWeek           = "week"
	StageWeekCollection = "week-collection"
	StageDay            = "day"
)

// NotFoundError is returned when a lookup that expects exactly one match
// finds none
type NotFoundError struct {
	Stage string
	Date  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found for %s", e.Stage, e.Date)
}
