package db_models

import "github.com/lib/pq"

// Landmark is a named point of interest a trip can start from. Its ID is the
// numeric part of the route service's "P<id>" node code.
type Landmark struct {
	ID      uint           `gorm:"primaryKey"`
	Name    string         `gorm:"index"`
	Aliases pq.StringArray `gorm:"type:text[]"`
}
