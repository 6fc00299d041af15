package view

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "user-directory-web/internal/domain/user"
	"user-directory-web/internal/usecase/user"
)

var rowPattern = regexp.MustCompile(`(?s)<tr data-id="[^"]*">(.*?)</tr>`)
var cellPattern = regexp.MustCompile(`<td>([^<]*)</td>`)

// renderedRows extracts the plain cells of every body row.
func renderedRows(t *testing.T, html string) [][]string {
	t.Helper()
	var rows [][]string
	for _, m := range rowPattern.FindAllStringSubmatch(html, -1) {
		var cells []string
		for _, c := range cellPattern.FindAllStringSubmatch(m[1], -1) {
			cells = append(cells, c[1])
		}
		rows = append(rows, cells)
	}
	return rows
}

// render serves the named template through gin, the way pages are rendered.
func render(t *testing.T, name string, data any) string {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.SetHTMLTemplate(r.Template())
	engine.GET("/", func(c *gin.Context) { c.HTML(http.StatusOK, name, data) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestNewTable(t *testing.T) {
	table := NewTable([]domain.User{
		{ID: "1", Name: "Ann", LastName: "Lee", Age: "30", Address: "X"},
		{ID: "a b", Name: "Bo"},
	})

	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"Ann", "Lee", "30", "X"}, table.Rows[0].Cells)
	assert.Equal(t, "/users/1/edit", table.Rows[0].EditURL)
	assert.Equal(t, "/users/1/delete", table.Rows[0].DeleteURL)
	assert.Equal(t, "/users/a%20b/edit", table.Rows[1].EditURL)
}

func TestNewTable_Empty(t *testing.T) {
	assert.Empty(t, NewTable(nil).Rows)
}

func TestNewForm(t *testing.T) {
	create := NewForm(user.NewCreateForm())
	assert.False(t, create.Editing)
	assert.Empty(t, create.ID)
	assert.Equal(t, ActionAdd, create.PrimaryAction)

	edit := NewForm(user.Form{
		Mode:   domain.EditMode("1"),
		Fields: domain.Fields{Name: "Ann", LastName: "Lee", Age: "30", Address: "X"},
	})
	assert.True(t, edit.Editing)
	assert.Equal(t, "1", edit.ID)
	assert.Equal(t, "Ann", edit.Name)
	assert.Equal(t, ActionUpdate, edit.PrimaryAction)
}

func TestRenderIndex_SingleUser(t *testing.T) {
	users := []domain.User{{ID: "1", Name: "Ann", LastName: "Lee", Age: "30", Address: "X"}}

	html := render(t, IndexTemplate, NewPage(user.NewCreateForm(), users, nil))

	assert.Equal(t, [][]string{{"Ann", "Lee", "30", "X"}}, renderedRows(t, html))
	assert.Equal(t, 1, strings.Count(html, `href="/users/1/edit"`))
	assert.Equal(t, 1, strings.Count(html, `href="/users/1/delete"`))
	assert.Contains(t, html, `id="addBtn"`)
	assert.NotContains(t, html, `id="updateBtn"`)
	assert.Contains(t, html, `name="id" value=""`)
}

func TestRenderIndex_PreservesOrder(t *testing.T) {
	users := []domain.User{
		{ID: "3", Name: "Cy"},
		{ID: "1", Name: "Ann"},
		{ID: "2", Name: "Bo"},
	}

	rows := renderedRows(t, render(t, IndexTemplate, NewPage(user.NewCreateForm(), users, nil)))

	require.Len(t, rows, 3)
	assert.Equal(t, "Cy", rows[0][0])
	assert.Equal(t, "Ann", rows[1][0])
	assert.Equal(t, "Bo", rows[2][0])
}

func TestRenderIndex_EditMode(t *testing.T) {
	form := user.Form{
		Mode:   domain.EditMode("7"),
		Fields: domain.Fields{Name: "Ann", LastName: "Lee", Age: "30", Address: "X"},
	}

	html := render(t, IndexTemplate, NewPage(form, nil, nil))

	assert.Contains(t, html, `name="id" value="7"`)
	assert.Contains(t, html, `value="Ann"`)
	assert.Contains(t, html, `id="updateBtn">Update</button>`)
	assert.NotContains(t, html, `id="addBtn"`)
}

func TestRenderIndex_EscapesUserContent(t *testing.T) {
	users := []domain.User{{ID: "1", Name: `<script>alert(1)</script>`}}

	html := render(t, IndexTemplate, NewPage(user.NewCreateForm(), users, nil))

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRenderIndex_Notice(t *testing.T) {
	notice := &Notice{Kind: NoticeError, Message: "Could not load users"}

	html := render(t, IndexTemplate, NewPage(user.NewCreateForm(), nil, notice))

	assert.Contains(t, html, `alert-danger`)
	assert.Contains(t, html, "Could not load users")
	assert.Empty(t, renderedRows(t, html))
}

func TestRenderConfirm(t *testing.T) {
	html := render(t, ConfirmTemplate, NewConfirmPage("1"))

	assert.Contains(t, html, "Delete this user?")
	assert.Contains(t, html, `action="/users/1/delete"`)
	assert.Contains(t, html, `name="confirm" value="yes"`)
	assert.Contains(t, html, `name="confirm" value="no"`)
}
