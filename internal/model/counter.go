package model

// Counter backs the sequential id allocator: one row per entity type,
// bumped atomically with an upsert.
type Counter struct {
	Name  string `gorm:"primaryKey;size:32"`
	Value int    `gorm:"not null"`
}
