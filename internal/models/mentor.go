package models

// MentorAssignment reports which mentor a mentee request was routed to
type MentorAssignment struct {
	MentorID string
	Position int // place in the mentor's pending queue, 1-based
}
