package models

import "time"

type Member struct {
	Name       string `json:"name"`
	RollNumber string `json:"roll_number"`
	Phone      string `json:"phone"`
}

// Registration is one accepted submission. Solo registrations carry Name,
// team registrations carry TeamID and Members.
type Registration struct {
	Timestamp  time.Time `json:"timestamp"`
	EventID    string    `json:"event_id"`
	Name       string    `json:"name,omitempty"`
	TeamID     string    `json:"team_id,omitempty"`
	Members    []Member  `json:"members,omitempty"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	RollNumber string    `json:"roll_number,omitempty"`
}

func (r Registration) IsTeam() bool {
	return r.TeamID != ""
}
