package common

import "github.com/google/uuid"

// UUID is the identifier type used across all entities. It is a plain
// string so it stays comparable and JSON-friendly; validity is enforced
// at the parse boundary.
type UUID string

func NewUUID() UUID {
	return UUID(uuid.NewString())
}

func ParseUUID(value string) (UUID, error) {
	parsed, err := uuid.Parse(value)
	if err != nil {
		return "", err
	}
	return UUID(parsed.String()), nil
}

func (u UUID) String() string {
	return string(u)
}

func (u UUID) IsZero() bool {
	return u == ""
}
