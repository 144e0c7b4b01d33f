// Package apidoc builds the Swagger 2.0 document of the API from the route table and serves it.
package apidoc

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-openapi/spec"
	"github.com/labstack/echo/v4"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/platform/routing"
	"github.com/swaggo/swag"
)

// SecurityName is the security definition of the API token header.
const SecurityName = "ApiKeyAuth"

// Info describes the API in the document header.
type Info struct {
	Title       string
	Description string
	Version     string
	Host        string
}

var pathParam = regexp.MustCompile(`:([A-Za-z_][A-Za-z0-9_]*)`)

// Build returns the Swagger document of every route in routes.
func Build(info Info, routes []routing.Route) *spec.Swagger {
	b := newSchemaBuilder()
	doc := &spec.Swagger{
		SwaggerProps: spec.SwaggerProps{
			Swagger: "2.0",
			Info: &spec.Info{
				InfoProps: spec.InfoProps{
					Title:       info.Title,
					Description: info.Description,
					Version:     info.Version,
				},
			},
			Host:     info.Host,
			BasePath: "/",
			Consumes: []string{echo.MIMEApplicationJSON},
			Produces: []string{echo.MIMEApplicationJSON},
			Paths:    &spec.Paths{Paths: map[string]spec.PathItem{}},
			SecurityDefinitions: spec.SecurityDefinitions{
				SecurityName: spec.APIKeyAuth("X-AUTH-TOKEN", "header"),
			},
		},
	}

	for _, r := range routes {
		path, params := swaggerPath(r.Path)
		op := spec.NewOperation(operationID(r)).
			WithSummary(r.Summary).
			WithTags(r.Tags...)
		for _, p := range params {
			op.AddParam(spec.PathParam(p).Typed("integer", "int64"))
		}
		if body := b.schemaOf(r.Body); body != nil {
			op.AddParam(spec.BodyParam("body", body).AsRequired())
		}
		if r.Secured {
			op.SecuredWith(SecurityName)
		}
		for _, status := range sortedStatuses(r.Responses) {
			resp := r.Responses[status]
			out := spec.NewResponse().WithDescription(resp.Description)
			if s := b.schemaOf(resp.Model); s != nil {
				out.WithSchema(s)
			}
			op.RespondsWith(status, out)
		}

		item := doc.Paths.Paths[path]
		setOperation(&item, r.Method, op)
		doc.Paths.Paths[path] = item
	}
	doc.Definitions = b.definitions
	return doc
}

func setOperation(item *spec.PathItem, method string, op *spec.Operation) {
	switch method {
	case http.MethodGet:
		item.Get = op
	case http.MethodPost:
		item.Post = op
	case http.MethodPut:
		item.Put = op
	case http.MethodPatch:
		item.Patch = op
	case http.MethodDelete:
		item.Delete = op
	case http.MethodHead:
		item.Head = op
	case http.MethodOptions:
		item.Options = op
	}
}

// swaggerPath turns "/api/food/:id" into "/api/food/{id}" and returns the parameter names.
func swaggerPath(path string) (string, []string) {
	var params []string
	for _, m := range pathParam.FindAllStringSubmatch(path, -1) {
		params = append(params, m[1])
	}
	return pathParam.ReplaceAllString(path, "{$1}"), params
}

func operationID(r routing.Route) string {
	if r.Name != "" {
		return r.Name
	}
	return strings.ToLower(r.Method) + strings.NewReplacer("/", "_", ":", "").Replace(r.Path)
}

func sortedStatuses(responses map[int]routing.Response) []int {
	out := make([]int, 0, len(responses))
	for status := range responses {
		out = append(out, status)
	}
	sort.Ints(out)
	return out
}

// Document holds the rendered JSON and satisfies swag.Swagger.
type Document struct {
	json []byte
}

// NewDocument renders doc to JSON.
func NewDocument(doc *spec.Swagger) (*Document, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode swagger document: %w", err)
	}
	return &Document{json: data}, nil
}

func (d *Document) ReadDoc() string { return string(d.json) }

// JSON returns the rendered document.
func (d *Document) JSON() []byte { return d.json }

var registerOnce sync.Once

// Register makes doc the default swag instance read by the Swagger UI. Only the first call has effect
// since swag panics on duplicate registration.
func Register(doc *Document) {
	registerOnce.Do(func() {
		swag.Register(swag.Name, doc)
	})
}
