package model

import "time"

// Wire layouts shared by the store documents and the API.
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	DateTimeLayout = "2006-01-02 15:04"
)

// VisitorState tags the two lifecycle states. The only transition is
// Open → Closed; closing again just overwrites the exit time.
type VisitorState string

const (
	StateOpen   VisitorState = "open"
	StateClosed VisitorState = "closed"
)

// Visitor is a single logged visit. EntryDatetime/ExitDatetime use
// DateTimeLayout, VisitDate uses DateLayout. A nil ExitDatetime means the
// visitor is still on site.
type Visitor struct {
	ID            int       `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Company       string    `json:"company"`
	Plate         string    `json:"plate"`
	VisitorType   string    `json:"visitor_type"`
	VisitDate     string    `json:"visit_date"`
	EntryDatetime string    `json:"entry_datetime"`
	ExitDatetime  *string   `json:"exit_datetime"`
	CreatorID     int       `json:"creator_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func (v Visitor) RecordID() int { return v.ID }

func (v Visitor) State() VisitorState {
	if v.ExitDatetime == nil {
		return StateOpen
	}
	return StateClosed
}
