package model

import "github.com/google/uuid"

// Agency is the branding context stamped on every generated offer.
type Agency struct {
	ID          uuid.UUID
	Name        string
	LogoRef     string
	CoverRef    string
	Address     string
	Phone       string
	Email       string
	AccentColor string
}

// DefaultAgency is used when no agency record exists in storage.
func DefaultAgency() Agency {
	return Agency{
		Name:        "ESOP Industrial",
		AccentColor: "#C1272D",
	}
}
