package apidoc

import (
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/r-meynet/QuaiAntiqueRestaurantBack/internal/platform/routing"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const (
	DocPath    = "/api/doc"
	DocJSONURL = "/api/doc.json"
)

var page = template.Must(template.New("doc").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" type="text/css" href="{{.Assets}}/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="{{.Assets}}/swagger-ui-bundle.js"></script>
<script src="{{.Assets}}/swagger-ui-standalone-preset.js"></script>
<script>
window.onload = function() {
  window.ui = SwaggerUIBundle({
    url: "{{.DocURL}}",
    dom_id: "#swagger-ui",
    deepLinking: true,
    presets: [SwaggerUIBundle.presets.apis, SwaggerUIStandalonePreset],
    layout: "StandaloneLayout"
  });
};
</script>
</body>
</html>
`))

type pageData struct {
	Title  string
	Assets string
	DocURL string
}

// Routes serves the document at DocJSONURL, the Swagger UI page at DocPath and its assets below it.
func Routes(doc *Document, title string) []routing.Route {
	Register(doc)
	assets := echoSwagger.EchoWrapHandler(echoSwagger.URL(DocJSONURL))

	return []routing.Route{
		{
			Method: http.MethodGet,
			Path:   DocJSONURL,
			Name:   "doc.json",
			Handler: func(c echo.Context) error {
				return c.JSONBlob(http.StatusOK, doc.JSON())
			},
		},
		{
			Method: http.MethodGet,
			Path:   DocPath,
			Name:   "doc",
			Handler: func(c echo.Context) error {
				c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
				c.Response().WriteHeader(http.StatusOK)
				return page.Execute(c.Response(), pageData{Title: title, Assets: DocPath, DocURL: DocJSONURL})
			},
		},
		{
			Method:  http.MethodGet,
			Path:    DocPath + "/*",
			Name:    "doc.assets",
			Handler: assets,
		},
	}
}
