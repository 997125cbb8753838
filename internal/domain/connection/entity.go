package connection

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
)

// Request is a startup's solicitation to engage an investor. It leaves
// PENDING exactly once, by the investor's decision.
type Request struct {
	ID          uuid.UUID
	StartupID   uuid.UUID
	InvestorID  uuid.UUID
	Message     *string
	Status      Status
	CreatedAt   time.Time
	RespondedAt *time.Time
}

func (r Request) IsPending() bool {
	return r.Status == StatusPending
}

// Decision is the investor's answer to a pending request.
type Decision int

const (
	DecisionAccept Decision = iota + 1
	DecisionReject
)

func (d Decision) Status() Status {
	if d == DecisionAccept {
		return StatusAccepted
	}
	return StatusRejected
}

func (d Decision) String() string {
	if d == DecisionAccept {
		return "accept"
	}
	return "reject"
}
