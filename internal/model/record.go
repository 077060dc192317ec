package model

import "fmt"

// Record is one notebook entry. Date and Time are opaque strings, expected
// to be ISO-like so that plain string comparison orders them.
type Record struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description"`
}

// Matches reports whether r is the entry identified by the triple.
func (r Record) Matches(date, time, description string) bool {
	return r.Date == date && r.Time == time && r.Description == description
}

// Format renders a record as a single display line.
func Format(r Record) string {
	return fmt.Sprintf("Date: %s, Time: %s, Description: %s", r.Date, r.Time, r.Description)
}
