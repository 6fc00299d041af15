package user

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is the opaque identifier assigned to a user by the backend.
// Backends may encode it as a JSON string or number; it is always kept as text.
type ID string

// String returns the identifier as text.
func (id ID) String() string {
	return string(id)
}

// UnmarshalJSON accepts both string and numeric identifiers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("user id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// User represents a user entry as returned by the backend.
type User struct {
	ID       ID     `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Age      string `json:"age"` // Age is free text; no numeric type is assumed
	Address  string `json:"address"`
}

// Fields returns the writable part of the user.
func (u User) Fields() Fields {
	return Fields{
		Name:     u.Name,
		LastName: u.LastName,
		Age:      u.Age,
		Address:  u.Address,
	}
}

// Fields is the body sent on create and full replace.
type Fields struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Age      string `json:"age"`
	Address  string `json:"address"`
}

// FindByID returns the first user with the given id.
func FindByID(users []User, id ID) (User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}
