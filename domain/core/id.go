package core

import (
	"github.com/google/uuid"
)

// ReportID identifies a single reporting invocation in logs and API responses.
type ReportID string

// NewReportID creates a new unique identifier using UUID v7 for time-ordered
// generation, falling back to v4 if v7 is not available.
func NewReportID() ReportID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ReportID(id.String())
}

// String returns the string representation
func (id ReportID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ReportID) IsEmpty() bool {
	return id == ""
}
