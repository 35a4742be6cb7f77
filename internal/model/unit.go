package model

import (
	"time"

	"github.com/google/uuid"
)

// Space is one independently priced slice of a unit (warehouse, office,
// sanitary or other), with its rentable area and asking price per sqm.
type Space struct {
	AreaSqm     float64
	PricePerSqm float64
}

type Unit struct {
	ID         uuid.UUID
	BuildingID uuid.UUID
	Name       string

	Warehouse *Space
	Office    *Space
	Sanitary  *Space
	Other     *Space

	ClearHeightM      *float64
	Docks             int
	DriveIns          int
	CrossDock         bool
	Sprinkler         bool
	Hydrants          bool
	FireAuthorization bool
	Heating           string
	Structure         string
	GridFormat        string
	FloorLoading      string
	Lighting          string
	Temperature       string

	AvailableFrom  *time.Time
	ContractLength string
	Expansion      string
	ServiceCharge  *float64

	SalePrice   *float64
	VATIncluded bool

	PhotoRefs []string
}

// PriceOverride substitutes the warehouse rent price and/or service charge
// of every unit in one building for a single generation call. It is never
// written back to storage.
type PriceOverride struct {
	BuildingID    uuid.UUID
	RentPrice     *float64
	ServiceCharge *float64
}

func (u Unit) clone() Unit {
	out := u
	out.Warehouse = cloneSpace(u.Warehouse)
	out.Office = cloneSpace(u.Office)
	out.Sanitary = cloneSpace(u.Sanitary)
	out.Other = cloneSpace(u.Other)
	out.ClearHeightM = cloneFloat(u.ClearHeightM)
	out.ServiceCharge = cloneFloat(u.ServiceCharge)
	out.SalePrice = cloneFloat(u.SalePrice)
	if u.AvailableFrom != nil {
		t := *u.AvailableFrom
		out.AvailableFrom = &t
	}
	out.PhotoRefs = append([]string(nil), u.PhotoRefs...)
	return out
}

func cloneSpace(s *Space) *Space {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
