package domain

// DefaultRelationship is used when a record is created without one.
const DefaultRelationship = "Friend"

// Birthday is a stored birthday entry. Records are never edited, only
// created and deleted.
type Birthday struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Date         Date   `json:"date"`
	Relationship string `json:"relationship"`
}

// CreateBirthdayRequest carries user input for a new record
type CreateBirthdayRequest struct {
	Name         string
	Date         string // YYYY-MM-DD
	Relationship string
}

// Entry pairs a record with its computed next occurrence
type Entry struct {
	Birthday   Birthday   `json:"birthday"`
	Occurrence Occurrence `json:"occurrence"`
}
