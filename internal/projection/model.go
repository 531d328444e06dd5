package projection

import (
	"time"

	"github.com/google/uuid"

	"entryledger/internal/domain"
)

// DataEntry is the read model row for one data entry. It is a performance
// cache derived from the event stream, never authoritative: Rebuild must
// always be able to reproduce it from the events alone.
type DataEntry struct {
	EntryID   uuid.UUID      `json:"entry_id"`
	EntryType string         `json:"entry_type"`
	Data      map[string]any `json:"data"`
	Status    string         `json:"status"`

	CreatedBy         uuid.UUID `json:"created_by"`
	CreatedByRole     string    `json:"created_by_role"`
	CreatedByUsername string    `json:"created_by_username"`
	CreatedAt         time.Time `json:"created_at"`

	SubmittedAt *time.Time `json:"submitted_at,omitempty"`

	ConfirmedBy       *uuid.UUID `json:"confirmed_by,omitempty"`
	ConfirmedByName   string     `json:"confirmed_by_username,omitempty"`
	ConfirmedAt       *time.Time `json:"confirmed_at,omitempty"`
	ConfirmationNote  string     `json:"confirmation_note,omitempty"`

	RejectedBy      *uuid.UUID `json:"rejected_by,omitempty"`
	RejectedByName  string     `json:"rejected_by_username,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`

	CorrectionCount int        `json:"correction_count"`
	LastCorrectedAt *time.Time `json:"last_corrected_at,omitempty"`
	LastCorrectedBy *uuid.UUID `json:"last_corrected_by,omitempty"`

	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Unconfirmed reports whether the entry counts as unconfirmed for the policy
// engine's constraint check.
func (d DataEntry) Unconfirmed() bool {
	return d.Status != string(domain.StateConfirmed)
}
