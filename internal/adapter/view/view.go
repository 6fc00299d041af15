// Package view renders the users page: the table, the form and notices.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"net/url"

	domain "user-directory-web/internal/domain/user"
	"user-directory-web/internal/usecase/user"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names
const (
	IndexTemplate   = "index.html"
	ConfirmTemplate = "confirm.html"
)

// Primary action labels
const (
	ActionAdd    = "Add"
	ActionUpdate = "Update"
)

// NoticeKind classifies notice presentation.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "danger"
)

// Notice is a one-line message shown above the form.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// Row is one rendered user.
type Row struct {
	ID        string
	Cells     []string
	EditURL   string
	DeleteURL string
}

// Table is the rendered user list.
type Table struct {
	Rows []Row
}

// FormView is the rendered user form.
type FormView struct {
	ID            string // hidden field; empty in Create mode
	Name          string
	LastName      string
	Age           string
	Address       string
	Editing       bool
	PrimaryAction string
}

// Page is the data for the index template.
type Page struct {
	Title  string
	Notice *Notice
	Form   FormView
	Table  Table
}

// ConfirmPage is the data for the delete confirmation prompt.
type ConfirmPage struct {
	Title     string
	Question  string
	ActionURL string
}

// NewTable builds one row per user in the given order.
func NewTable(users []domain.User) Table {
	rows := make([]Row, len(users))
	for i, u := range users {
		rows[i] = Row{
			ID:        u.ID.String(),
			Cells:     []string{u.Name, u.LastName, u.Age, u.Address},
			EditURL:   EditURL(u.ID),
			DeleteURL: DeleteURL(u.ID),
		}
	}
	return Table{Rows: rows}
}

// NewForm builds the form view for the given form state.
func NewForm(f user.Form) FormView {
	id, editing := f.Mode.ID()
	v := FormView{
		Name:          f.Fields.Name,
		LastName:      f.Fields.LastName,
		Age:           f.Fields.Age,
		Address:       f.Fields.Address,
		Editing:       editing,
		PrimaryAction: ActionAdd,
	}
	if editing {
		v.ID = id.String()
		v.PrimaryAction = ActionUpdate
	}
	return v
}

// NewPage assembles the index page.
func NewPage(f user.Form, users []domain.User, notice *Notice) Page {
	return Page{
		Title:  "Users",
		Notice: notice,
		Form:   NewForm(f),
		Table:  NewTable(users),
	}
}

// NewConfirmPage assembles the delete prompt for one user.
func NewConfirmPage(id domain.ID) ConfirmPage {
	return ConfirmPage{
		Title:     "Delete user",
		Question:  "Delete this user?",
		ActionURL: DeleteURL(id),
	}
}

// EditURL returns the page that opens the form in Edit mode for id.
func EditURL(id domain.ID) string {
	return "/users/" + url.PathEscape(id.String()) + "/edit"
}

// DeleteURL returns the delete confirmation endpoint for id.
func DeleteURL(id domain.ID) string {
	return "/users/" + url.PathEscape(id.String()) + "/delete"
}

// Renderer holds the parsed page templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Template returns the template set, for gin's SetHTMLTemplate.
func (r *Renderer) Template() *template.Template {
	return r.tmpl
}
