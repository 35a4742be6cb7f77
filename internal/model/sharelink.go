package model

import (
	"time"

	"github.com/google/uuid"
)

// ShareLink is a token-addressable copy of a generated offer document.
type ShareLink struct {
	Token     string
	DealID    uuid.UUID
	FileName  string
	Content   []byte
	CreatedAt time.Time
}
