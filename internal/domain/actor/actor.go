// Package actor models the authenticated caller of a workflow operation.
// An Actor is resolved once per operation and then matched with a type
// switch instead of comparing role strings throughout the workflows.
package actor

import (
	"strings"

	"investor-service/internal/domain/investor"
	"investor-service/internal/domain/startup"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStartup  Role = "STARTUP"
	RoleInvestor Role = "INVESTOR"
)

func NormalizeRole(s string) Role {
	return Role(strings.ToUpper(strings.TrimSpace(s)))
}

// Identity is what the identity service knows about a credential.
type Identity struct {
	UserID uuid.UUID
	Role   Role
}

type Actor interface {
	Identity() Identity
	isActor()
}

// Startup is a caller with the STARTUP role and an existing startup profile.
type Startup struct {
	ID      Identity
	Profile startup.Startup
}

func (a Startup) Identity() Identity { return a.ID }
func (Startup) isActor()             {}

// StartupID is the id of the caller's startup profile.
func (a Startup) StartupID() uuid.UUID { return a.Profile.ID }

// Investor is a caller with the INVESTOR role and an existing investor profile.
type Investor struct {
	ID      Identity
	Profile investor.Investor
}

func (a Investor) Identity() Identity { return a.ID }
func (Investor) isActor()             {}

func (a Investor) InvestorID() uuid.UUID { return a.Profile.ID }

// Other is an authenticated caller whose role has no profile in this service.
type Other struct {
	ID Identity
}

func (a Other) Identity() Identity { return a.ID }
func (Other) isActor()             {}
