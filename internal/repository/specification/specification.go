package specification

import "gorm.io/gorm"

// Specification narrows a query. Repositories fold a list of these onto
// the base statement, so callers compose filters without touching SQL.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
