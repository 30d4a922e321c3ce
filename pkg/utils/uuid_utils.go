package utils

import "github.com/google/uuid"

// GenerateUUIDv7 returns a time-ordered UUID. Transfer ids use v7 so
// they sort by creation time in the database.
func GenerateUUIDv7() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
