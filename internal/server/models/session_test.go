package models

import (
	"testing"
	"time"
)

func TestSession_ValidAt(t *testing.T) {
	exp := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := &Session{ExpiresAt: exp}

	if !s.ValidAt(exp.Add(-time.Second)) {
		t.Fatal("session must be valid before expiry")
	}
	if !s.ValidAt(exp) {
		t.Fatal("session must be valid exactly at expiry")
	}
	if s.ValidAt(exp.Add(time.Nanosecond)) {
		t.Fatal("session must be invalid after expiry")
	}
}

func TestSortField_Valid(t *testing.T) {
	for _, f := range []SortField{SortByID, SortByPseudo, SortByEmail, SortByFirstName, SortByLastName, SortByCreatedAt, SortByUpdatedAt} {
		if !f.Valid() {
			t.Fatalf("%q should be valid", f)
		}
	}
	for _, f := range []SortField{"", "password", "id; DROP TABLE users"} {
		if f.Valid() {
			t.Fatalf("%q should be invalid", f)
		}
	}
}
