package repository

import "gorm.io/gorm/clause"

// lockForUpdate returns a row-level write lock clause. Used by every
// read-modify-write transaction so concurrent toggles and point moves
// serialize on the contended row.
func lockForUpdate() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}
