// Package web serves the single-page upload and question form.
package web

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

type pageData struct {
	// APIBase is prefixed to /upload and /ask. Empty means same origin.
	APIBase string
}

// Render executes the page template for apiBase.
func Render(apiBase string) ([]byte, error) {
	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, pageData{APIBase: apiBase}); err != nil {
		return nil, fmt.Errorf("render index: %w", err)
	}
	return buf.Bytes(), nil
}

// Handler serves the page. It is rendered once, since apiBase is fixed for the process.
func Handler(apiBase string) (fiber.Handler, error) {
	page, err := Render(apiBase)
	if err != nil {
		return nil, err
	}
	return func(c *fiber.Ctx) error {
		c.Type("html", "utf-8")
		return c.Send(page)
	}, nil
}
