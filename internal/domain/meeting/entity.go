package meeting

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusAccepted  Status = "ACCEPTED"
	StatusRejected  Status = "REJECTED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// CancellableStatuses are the states a party may still cancel from.
var CancellableStatuses = []Status{StatusPending, StatusAccepted}

type Meeting struct {
	ID           uuid.UUID
	ConnectionID uuid.UUID
	InvestorID   uuid.UUID
	StartupID    uuid.UUID
	Date         time.Time
	Place        string
	Message      *string
	Status       Status
	CreatedAt    time.Time
	RespondedAt  *time.Time
}

func (m Meeting) CanBeCancelled() bool {
	for _, s := range CancellableStatuses {
		if m.Status == s {
			return true
		}
	}
	return false
}

// Response is the startup's answer to a pending meeting.
type Response int

const (
	ResponseAccept Response = iota + 1
	ResponseReject
)

func (r Response) Status() Status {
	if r == ResponseAccept {
		return StatusAccepted
	}
	return StatusRejected
}

func (r Response) String() string {
	if r == ResponseAccept {
		return "accept"
	}
	return "reject"
}

// Reschedule holds the new slot. A nil Message keeps the current one.
type Reschedule struct {
	Date    time.Time
	Place   string
	Message *string
}
