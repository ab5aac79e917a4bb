package web

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	page, err := Render("")
	require.NoError(t, err)
	assert.Contains(t, string(page), `const apiBase = "";`)
	assert.Contains(t, string(page), `id="upload"`)
	assert.Contains(t, string(page), `id="ask"`)

	page, err = Render("https://api.example.com")
	require.NoError(t, err)
	assert.Contains(t, string(page), "api.example.com")
	assert.NotContains(t, string(page), `const apiBase = "";`)
}

func TestRender_ErrorsShownInline(t *testing.T) {
	page, err := Render("")
	require.NoError(t, err)
	html := string(page)

	assert.NotContains(t, html, "alert(")
	assert.Contains(t, html, `showError("Upload failed. Please try again.")`)

	// The ask section stays hidden until an upload succeeds, so the error line must live outside it.
	askStart := strings.Index(html, `<section id="ask-section"`)
	require.NotEqual(t, -1, askStart)
	askEnd := askStart + strings.Index(html[askStart:], "</section>")
	errorAt := strings.Index(html, `id="error"`)
	require.NotEqual(t, -1, errorAt)
	assert.False(t, errorAt > askStart && errorAt < askEnd, "error element is inside the ask section")
}

func TestRender_EscapesBase(t *testing.T) {
	page, err := Render(`"</script><script>alert(1)//`)
	require.NoError(t, err)
	assert.NotContains(t, string(page), "</script><script>alert(1)")
}

func TestHandler(t *testing.T) {
	h, err := Handler("")
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/", h)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Document Q&amp;A")
}
