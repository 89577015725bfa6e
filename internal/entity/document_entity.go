package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document is one uploaded pitch document. FounderId is the external founder
// identity (the JWT subject), not a local FK. Documents are append-only.
type Document struct {
	Id        uuid.UUID
	FounderId string
	Filename  string
	SizeBytes int64
	PageCount int
	Content   string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
