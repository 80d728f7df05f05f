// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides time-ordered identifiers for shelf records.

Collections, manga records and users are keyed by UUIDv7 strings so that
primary-key B-trees stay append-mostly and ids sort by creation time.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// It panics only if the OS entropy source fails, which is unrecoverable.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}
	return id.String()
}

// Valid reports whether s parses as any RFC 4122 UUID.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}

// Generator produces record ids. Services accept it so tests can pin ids.
type Generator interface {
	NewID() string
}

// V7 is the production [Generator].
type V7 struct{}

// NewID implements [Generator].
func (V7) NewID() string { return New() }
