// Package uuid issues the time-ordered identifiers used as primary keys.
package uuid

import (
	"errors"
	"time"

	googleuuid "github.com/google/uuid"
)

// ErrNotV7 is returned by Time for identifiers that carry no timestamp.
var ErrNotV7 = errors.New("uuid: not a version 7 identifier")

// New returns a new UUIDv7 string. Identifiers sort by creation time, so
// index inserts stay append-mostly.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.New().String()
	}
	return id.String()
}

// Parse validates s and returns it in canonical lower-case form.
func Parse(s string) (string, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}

// Time returns the creation instant embedded in a UUIDv7, at millisecond
// precision.
func Time(s string) (time.Time, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	if parsed.Version() != 7 {
		return time.Time{}, ErrNotV7
	}
	sec, nsec := parsed.Time().UnixTime()
	return time.Unix(sec, nsec).UTC(), nil
}
