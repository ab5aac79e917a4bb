package extract

import (
	"context"
	"strings"
	"testing"

	"docqa/internal/extract/pdftest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_PlainText(t *testing.T) {
	ex := New()
	ctx := context.Background()

	tests := []struct {
		name        string
		data        []byte
		contentType string
	}{
		{name: "ascii", data: []byte("Hello world"), contentType: "text/plain"},
		{name: "utf8 with params", data: []byte("héllo, 世界\n\tend"), contentType: "text/plain; charset=utf-8"},
		{name: "markdown", data: []byte("# Title\n\n* item"), contentType: "text/markdown"},
		{name: "invalid utf8 kept verbatim", data: []byte{0xff, 0xfe, 'a'}, contentType: "application/octet-stream"},
		{name: "empty", data: []byte{}, contentType: "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ex.Extract(ctx, tt.data, tt.contentType)
			require.NoError(t, err)
			assert.Equal(t, string(tt.data), got)
		})
	}
}

func TestExtract_PDF(t *testing.T) {
	data := pdftest.Build(
		[]string{"Hello", "world"},
		[]string{"Second page"},
		[]string{"Third"},
	)

	got, err := New().Extract(context.Background(), data, "application/pdf")
	require.NoError(t, err)

	assert.Equal(t, "Hello world\nSecond page\nThird", got)
	assert.Equal(t, 2, strings.Count(got, "\n"))
}

func TestExtract_PDFSinglePage(t *testing.T) {
	got, err := New().Extract(context.Background(), pdftest.Build([]string{"Only page"}), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "Only page", got)
}

func TestExtract_MalformedPDF(t *testing.T) {
	tests := map[string][]byte{
		"not a pdf": []byte("Hello world"),
		"empty":     {},
		"truncated": pdftest.Build([]string{"Hello"})[:40],
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := New().Extract(context.Background(), data, "application/pdf")
			assert.Error(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestExtract_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Extract(ctx, []byte("x"), "text/plain")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF("application/pdf"))
	assert.True(t, IsPDF("Application/PDF"))
	assert.True(t, IsPDF("application/pdf; name=a.pdf"))
	assert.False(t, IsPDF("text/plain"))
	assert.False(t, IsPDF(""))
}

func TestResolveContentType(t *testing.T) {
	pdfBytes := pdftest.Build([]string{"x"})

	assert.Equal(t, "text/plain", ResolveContentType("text/plain", pdfBytes))
	assert.Equal(t, "application/pdf", ResolveContentType("", pdfBytes))
	assert.Equal(t, "application/pdf", ResolveContentType("application/octet-stream", pdfBytes))
	assert.Equal(t, "text/plain; charset=utf-8", ResolveContentType("", []byte("Hello world")))
}
