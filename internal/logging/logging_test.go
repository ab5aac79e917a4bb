package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	loc := time.FixedZone("WIB", 7*60*60)

	New(&buf, loc).Info("document_stored", "doc_id", "doc_1", "bytes", 11)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "document_stored", entry["msg"])
	assert.Equal(t, "doc_1", entry["doc_id"])
	assert.Equal(t, float64(11), entry["bytes"])
	assert.NotContains(t, entry, "time")

	ts, err := time.Parse(time.RFC3339Nano, entry["ts"].(string))
	require.NoError(t, err)
	_, offset := ts.Zone()
	assert.Equal(t, 7*60*60, offset)
}

func TestSetup_UnknownTimezone(t *testing.T) {
	l, loc := Setup("Not/AZone")
	assert.NotNil(t, l)
	assert.Equal(t, time.UTC, loc)
}

func TestNew_RequestIDFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, time.UTC).With("component", "service")

	ctx := WithRequestID(context.Background(), "req-42")
	l.InfoContext(ctx, "question_answered")
	l.Info("no_context")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &first))
	require.NoError(t, json.Unmarshal(lines[1], &second))

	assert.Equal(t, "req-42", first["request_id"])
	assert.Equal(t, "service", first["component"])
	assert.NotContains(t, second, "request_id")
}

func TestRequestID_Empty(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))
}
