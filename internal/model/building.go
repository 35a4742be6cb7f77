package model

import "github.com/google/uuid"

type TransactionType string

const (
	TransactionRent TransactionType = "RENT"
	TransactionSale TransactionType = "SALE"
	TransactionBoth TransactionType = "BOTH"
)

func (t TransactionType) AllowsRent() bool {
	return t == TransactionRent || t == TransactionBoth || t == ""
}

func (t TransactionType) AllowsSale() bool {
	return t == TransactionSale || t == TransactionBoth
}

type LatLng struct {
	Lat float64
	Lng float64
}

type Building struct {
	ID          uuid.UUID
	Name        string
	Address     string
	Coords      *LatLng
	Transaction TransactionType
	Location    string
	County      string
	Expansion   string
	Units       []Unit
}

// CloneBuildings deep-copies buildings with their units so price overrides
// can be applied without touching caller-owned records.
func CloneBuildings(buildings []Building) []Building {
	out := make([]Building, len(buildings))
	for i, b := range buildings {
		c := b
		if b.Coords != nil {
			coords := *b.Coords
			c.Coords = &coords
		}
		c.Units = make([]Unit, len(b.Units))
		for j, u := range b.Units {
			c.Units[j] = u.clone()
		}
		out[i] = c
	}
	return out
}
