package usecase

import (
	"errors"
	"fmt"
)

// Error kinds. Every error a usecase returns wraps exactly one of these so
// the transport can map it with errors.Is.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrValidation      = errors.New("validation failed")
	ErrInternal        = errors.New("internal error")
)

var (
	ErrInvalidCredential = fmt.Errorf("%w: invalid or expired credential", ErrUnauthenticated)

	ErrStartupRoleRequired  = fmt.Errorf("%w: only startups can perform this action", ErrForbidden)
	ErrInvestorRoleRequired = fmt.Errorf("%w: only investors can perform this action", ErrForbidden)
	ErrNotRequestOwner      = fmt.Errorf("%w: connection request belongs to another investor", ErrForbidden)
	ErrNotConnectionOwner   = fmt.Errorf("%w: connection belongs to another investor", ErrForbidden)
	ErrNotMeetingParty      = fmt.Errorf("%w: meeting belongs to another party", ErrForbidden)

	ErrInvestorNotFound          = fmt.Errorf("%w: investor not found", ErrNotFound)
	ErrInvestorProfileNotFound   = fmt.Errorf("%w: investor profile not found", ErrNotFound)
	ErrStartupProfileNotFound    = fmt.Errorf("%w: startup profile not found", ErrNotFound)
	ErrStartupNotFound           = fmt.Errorf("%w: startup not found", ErrNotFound)
	ErrConnectionRequestNotFound = fmt.Errorf("%w: connection request not found", ErrNotFound)
	ErrMeetingNotFound           = fmt.Errorf("%w: meeting not found", ErrNotFound)

	ErrInvestorProfileExists   = fmt.Errorf("%w: investor profile already exists", ErrConflict)
	ErrPendingRequestExists    = fmt.Errorf("%w: a pending connection request already exists", ErrConflict)
	ErrRequestAlreadyProcessed = fmt.Errorf("%w: connection request already processed", ErrConflict)
	ErrConnectionNotAccepted   = fmt.Errorf("%w: connection is not accepted", ErrConflict)
	ErrPendingMeetingExists    = fmt.Errorf("%w: a pending meeting already exists for this connection", ErrConflict)
	ErrMeetingNotPending       = fmt.Errorf("%w: meeting is not pending", ErrConflict)
	ErrMeetingNotCancellable   = fmt.Errorf("%w: meeting cannot be cancelled", ErrConflict)

	ErrInvalidInput         = fmt.Errorf("%w: invalid input", ErrValidation)
	ErrMeetingDateNotFuture = fmt.Errorf("%w: meeting date must be in the future", ErrValidation)
	ErrMeetingPlaceRequired = fmt.Errorf("%w: meeting place is required", ErrValidation)
	ErrUnsupportedActorRole = fmt.Errorf("%w: role has no connections or meetings", ErrValidation)
	ErrSearchSectorRequired = fmt.Errorf("%w: sector is required", ErrValidation)
	ErrInvalidPagination    = fmt.Errorf("%w: invalid pagination", ErrValidation)
)

// validation wraps a domain rule violation as a validation error.
func validation(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}

// internal wraps an infrastructure failure. The cause stays reachable for
// logging but never reaches the client.
func internal(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
}
