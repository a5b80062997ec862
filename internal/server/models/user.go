package models

import "time"

// User is a row of the users table. Password always holds a bcrypt hash and
// is never serialized.
type User struct {
	ID        string     `json:"id"`
	Pseudo    string     `json:"pseudo"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstname"`
	LastName  string     `json:"lastname"`
	Password  string     `json:"-"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// UserFilter narrows and pages a user listing. Zero values mean "no filter".
type UserFilter struct {
	FirstName string
	LastName  string
	Order     SortField
	// Direction is only honoured together with a non-empty Order.
	Direction SortDirection
	Limit     int
	Offset    int
}

// SortField is a user attribute a listing may be ordered by.
type SortField string

const (
	SortByID        SortField = "id"
	SortByPseudo    SortField = "pseudo"
	SortByEmail     SortField = "email"
	SortByFirstName SortField = "firstname"
	SortByLastName  SortField = "lastname"
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
)

// Valid reports whether f is one of the known sort fields.
func (f SortField) Valid() bool {
	switch f {
	case SortByID, SortByPseudo, SortByEmail, SortByFirstName, SortByLastName, SortByCreatedAt, SortByUpdatedAt:
		return true
	}
	return false
}

type SortDirection int

const (
	// SortDefault leaves the direction to the store.
	SortDefault SortDirection = iota
	SortAsc
	SortDesc
)
