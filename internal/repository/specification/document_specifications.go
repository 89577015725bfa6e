package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByFounderId filters rows owned by one founder
type ByFounderId struct {
	FounderId string
}

func (s ByFounderId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("founder_id = ?", s.FounderId)
}

// ByDocumentId filters chunks of one document
type ByDocumentId struct {
	DocumentId uuid.UUID
}

func (s ByDocumentId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentId)
}

// ByPersona filters analysis reports for one persona
type ByPersona struct {
	Persona string
}

func (s ByPersona) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("persona = ?", s.Persona)
}
