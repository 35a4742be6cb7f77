package model

import "github.com/google/uuid"

type Broker struct {
	ID       uuid.UUID
	FullName string
	Phone    string
	Email    string
}

type Deal struct {
	ID            uuid.UUID
	Name          string
	CompanyName   string
	ContactPerson string
	Locations     []string
	Broker        Broker
}
