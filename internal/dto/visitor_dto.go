package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// SaveVisitorRequest serves both add and update; company, plate and exit time
// are optional. Service-level validation checks the date/time layouts.
type SaveVisitorRequest struct {
	FirstName   string `json:"first_name" validate:"required,min=1,max=100"`
	LastName    string `json:"last_name"  validate:"required,min=1,max=100"`
	Company     string `json:"company"    validate:"max=150"`
	Plate       string `json:"plate"      validate:"max=20"`
	VisitorType string `json:"visitor_type" validate:"max=50"`
	EntryDate   string `json:"entry_date" validate:"required"`
	EntryTime   string `json:"entry_time" validate:"required"`
	ExitTime    string `json:"exit_time"`
}

type CloseVisitorRequest struct {
	ExitTime string `json:"exit_time" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// VisitorResponse is a list/detail row; CreatorName is resolved at read time
// and falls back to "Unknown" when the creator user no longer exists.
type VisitorResponse struct {
	ID            int       `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Company       string    `json:"company"`
	Plate         string    `json:"plate"`
	VisitorType   string    `json:"visitor_type"`
	VisitDate     string    `json:"visit_date"`
	EntryDatetime string    `json:"entry_datetime"`
	ExitDatetime  *string   `json:"exit_datetime"`
	State         string    `json:"state"`
	CreatorID     int       `json:"creator_id"`
	CreatorName   string    `json:"creator_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`

	// Display fields derived from the combined timestamps on get.
	EntryDate string `json:"entry_date,omitempty"`
	EntryTime string `json:"entry_time,omitempty"`
	ExitTime  string `json:"exit_time,omitempty"`
}

type CreateVisitorResponse struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}
