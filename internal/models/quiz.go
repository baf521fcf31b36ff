package models

import "time"

// Answer records a single quiz answer for a (user, category) run
type Answer struct {
	Question   int
	Choice     string
	AnsweredAt time.Time
}

// Classification is the outcome of a completed quiz run
type Classification struct {
	LanguageLevel string
	Institution   string
	Profession    string
}

// Summary renders the classification as the persisted one-line summary
func (c Classification) Summary() string {
	return "Language: " + c.LanguageLevel + ", Institution: " + c.Institution + ", Profession: " + c.Profession
}
