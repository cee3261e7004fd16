package utils

import "github.com/google/uuid"

// ToUUID parses s, returning uuid.Nil when it is not a valid UUID.
func ToUUID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// ParseUUID is ToUUID that also reports whether s was a usable id.
func ParseUUID(s string) (uuid.UUID, bool) {
	id := ToUUID(s)
	return id, id != uuid.Nil
}
