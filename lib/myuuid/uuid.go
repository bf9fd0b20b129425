package myuuid

import "github.com/google/uuid"

//go:generate mockgen -source=uuid.go -package myuuid -destination uuider_mock.go UUIDer
type UUIDer interface {
	Create() string
}

// RealUUIDer creates random (version 4) uuids, backed by crypto/rand.
type RealUUIDer struct{}

func (u RealUUIDer) Create() string {
	return uuid.New().String()
}

// IsValid reports whether s is a textual uuid as produced by Create.
func IsValid(s string) bool {
	if s == "" {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
