package user

import "strings"

// Mode is the state of the user form: Create (the zero value) or Edit for one id.
type Mode struct {
	id ID
}

// CreateMode returns the initial form state.
func CreateMode() Mode {
	return Mode{}
}

// EditMode returns the form state for replacing the user with the given id.
func EditMode(id ID) Mode {
	return Mode{id: id}
}

// ModeFromField derives the mode from the form's hidden identifier field.
func ModeFromField(hiddenID string) Mode {
	return EditMode(ID(strings.TrimSpace(hiddenID)))
}

// IsEdit reports whether the form targets an existing user.
func (m Mode) IsEdit() bool {
	return m.id != ""
}

// ID returns the edited user's id when in Edit mode.
func (m Mode) ID() (ID, bool) {
	return m.id, m.id != ""
}

// String returns "create" or "edit".
func (m Mode) String() string {
	if m.IsEdit() {
		return "edit"
	}
	return "create"
}
