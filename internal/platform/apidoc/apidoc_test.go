package apidoc

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/platform/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

type gadget struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name" validate:"required,max=32"`
	Tags      []string   `json:"tags"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	Owner     *gadget    `json:"-"`
	hidden    int
}

type gadgetPatch struct {
	Name  wrapper `json:"name"`
	Count int     `json:"count"`
}

// wrapper documents as a string, like an optional patch field.
type wrapper struct{}

func (wrapper) ValueType() reflect.Type { return reflect.TypeOf("") }

type view struct {
	*gadget
	Extra bool `json:"extra"`
}

func testRoutes() []routing.Route {
	noop := func(echo.Context) error { return nil }
	return []routing.Route{
		{
			Method:  http.MethodPost,
			Path:    "/api/gadget",
			Name:    "gadget.new",
			Summary: "Create a gadget",
			Tags:    []string{"Gadget"},
			Handler: noop,
			Secured: true,
			Body:    gadgetPatch{},
			Responses: map[int]routing.Response{
				http.StatusCreated: routing.StatusText(http.StatusCreated, gadget{}),
			},
		},
		{
			Method:  http.MethodGet,
			Path:    "/api/gadget/:id",
			Name:    "gadget.show",
			Handler: noop,
			Responses: map[int]routing.Response{
				http.StatusOK:       routing.StatusText(http.StatusOK, view{}),
				http.StatusNotFound: routing.Pass("Not Found"),
			},
		},
	}
}

func TestBuild(t *testing.T) {
	doc := Build(Info{Title: "Gadgets", Version: "1.0.0"}, testRoutes())

	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, "Gadgets", doc.Info.Title)
	require.Contains(t, doc.Paths.Paths, "/api/gadget")
	require.Contains(t, doc.Paths.Paths, "/api/gadget/{id}")

	create := doc.Paths.Paths["/api/gadget"].Post
	require.NotNil(t, create)
	assert.Equal(t, "gadget.new", create.ID)
	assert.Equal(t, []string{"Gadget"}, create.Tags)
	require.Len(t, create.Parameters, 1)
	assert.Equal(t, "body", create.Parameters[0].In)
	require.Len(t, create.Security, 1)
	assert.Contains(t, create.Security[0], SecurityName)

	show := doc.Paths.Paths["/api/gadget/{id}"].Get
	require.NotNil(t, show)
	require.Len(t, show.Parameters, 1)
	assert.Equal(t, "path", show.Parameters[0].In)
	assert.Equal(t, "id", show.Parameters[0].Name)
	assert.Contains(t, show.Responses.StatusCodeResponses, http.StatusNotFound)
	assert.Nil(t, show.Security)

	def, ok := doc.Definitions["apidoc.gadget"]
	require.True(t, ok)
	assert.Equal(t, []string{"name"}, def.Required)
	assert.Contains(t, def.Properties, "createdAt")
	assert.Equal(t, "date-time", def.Properties["createdAt"].Format)
	assert.Contains(t, def.Properties["tags"].Type, "array")
	assert.NotContains(t, def.Properties, "Owner")
	assert.NotContains(t, def.Properties, "hidden")

	viewDef := doc.Definitions["apidoc.view"]
	assert.Contains(t, viewDef.Properties, "name")
	assert.Contains(t, viewDef.Properties, "extra")

	patchDef := doc.Definitions["apidoc.gadgetPatch"]
	assert.Contains(t, patchDef.Properties["name"].Type, "string")
}

func TestSwaggerPath(t *testing.T) {
	path, params := swaggerPath("/api/menu/:id")
	assert.Equal(t, "/api/menu/{id}", path)
	assert.Equal(t, []string{"id"}, params)

	path, params = swaggerPath("/api/login")
	assert.Equal(t, "/api/login", path)
	assert.Empty(t, params)
}

func TestDocRoutes(t *testing.T) {
	doc, err := NewDocument(Build(Info{Title: "Gadgets", Version: "1.0.0"}, testRoutes()))
	require.NoError(t, err)

	var table routing.Table
	table.Add(Routes(doc, "Gadgets")...)
	e := echo.New()
	table.Mount(e)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, DocPath, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "swagger-ui")
	assert.Contains(t, rec.Body.String(), DocJSONURL)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, DocJSONURL, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	assert.Equal(t, "2.0", decoded["swagger"])

	registered, err := swag.ReadDoc()
	require.NoError(t, err)
	assert.NotEmpty(t, registered)
}
