package investor

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeAngel     Type = "ANGEL"
	TypeVC        Type = "VC"
	TypeCorporate Type = "CORPORATE"
)

func ParseType(s string) (Type, bool) {
	switch t := Type(strings.ToUpper(strings.TrimSpace(s))); t {
	case TypeAngel, TypeVC, TypeCorporate:
		return t, true
	default:
		return "", false
	}
}

var (
	ErrNameRequired           = errors.New("investor name is required")
	ErrInvalidType            = errors.New("investor type must be one of ANGEL, VC, CORPORATE")
	ErrInvalidInvestmentRange = errors.New("minimum investment must not exceed maximum investment")
	ErrNegativeInvestment     = errors.New("investment amounts must not be negative")
	ErrInvalidEmail           = errors.New("invalid email")
)

// Investor is the profile an INVESTOR user keeps on the platform. A user
// owns at most one.
type Investor struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Name              string
	Type              Type
	SectorsOfInterest *string
	MinInvestment     *decimal.Decimal
	MaxInvestment     *decimal.Decimal
	Description       *string
	Location          *string
	Portfolio         *string
	Website           *string
	Email             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (i Investor) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrNameRequired
	}
	if _, ok := ParseType(string(i.Type)); !ok {
		return ErrInvalidType
	}
	if i.MinInvestment != nil && i.MinInvestment.IsNegative() {
		return ErrNegativeInvestment
	}
	if i.MaxInvestment != nil && i.MaxInvestment.IsNegative() {
		return ErrNegativeInvestment
	}
	if i.MinInvestment != nil && i.MaxInvestment != nil && i.MinInvestment.GreaterThan(*i.MaxInvestment) {
		return ErrInvalidInvestmentRange
	}
	if i.Email != nil && strings.TrimSpace(*i.Email) != "" {
		if _, err := mail.ParseAddress(strings.TrimSpace(*i.Email)); err != nil {
			return ErrInvalidEmail
		}
	}
	return nil
}

// Patch carries a partial profile update. Nil fields are left unchanged.
type Patch struct {
	Name              *string
	Type              *Type
	SectorsOfInterest *string
	MinInvestment     *decimal.Decimal
	MaxInvestment     *decimal.Decimal
	Description       *string
	Location          *string
	Portfolio         *string
	Website           *string
	Email             *string
}

func (i Investor) Apply(p Patch) Investor {
	if p.Name != nil {
		i.Name = *p.Name
	}
	if p.Type != nil {
		i.Type = *p.Type
	}
	if p.SectorsOfInterest != nil {
		i.SectorsOfInterest = p.SectorsOfInterest
	}
	if p.MinInvestment != nil {
		i.MinInvestment = p.MinInvestment
	}
	if p.MaxInvestment != nil {
		i.MaxInvestment = p.MaxInvestment
	}
	if p.Description != nil {
		i.Description = p.Description
	}
	if p.Location != nil {
		i.Location = p.Location
	}
	if p.Portfolio != nil {
		i.Portfolio = p.Portfolio
	}
	if p.Website != nil {
		i.Website = p.Website
	}
	if p.Email != nil {
		i.Email = p.Email
	}
	return i
}

// Summary is the public subset attached to other parties' listings.
type Summary struct {
	ID    uuid.UUID
	Name  string
	Type  Type
	Email *string
}

func (i Investor) Summary() Summary {
	return Summary{ID: i.ID, Name: i.Name, Type: i.Type, Email: i.Email}
}
