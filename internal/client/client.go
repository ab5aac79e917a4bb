// Package client calls a running docqa server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status    int
	Message   string
	Code      string
	RequestID string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Client talks to the /upload and /ask endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for baseURL. A zero timeout means no client-side timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type uploadResponse struct {
	DocID   string `json:"docId"`
	Message string `json:"message"`
}

type askRequest struct {
	DocID    string `json:"docId"`
	Question string `json:"question"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id"`
}

// Upload sends r as the multipart field "file" and returns the new document id.
func (c *Client) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := w.CreatePart(h)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var res uploadResponse
	if err := c.do(req, &res); err != nil {
		return "", err
	}
	return res.DocID, nil
}

// Ask returns the server's answer for question about docID.
func (c *Client) Ask(ctx context.Context, docID, question string) (string, error) {
	payload, err := json.Marshal(askRequest{DocID: docID, Question: question})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ask", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var res askResponse
	if err := c.do(req, &res); err != nil {
		return "", err
	}
	return res.Answer, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var e errorResponse
		if json.NewDecoder(resp.Body).Decode(&e) == nil {
			apiErr.Message, apiErr.Code, apiErr.RequestID = e.Error, e.Code, e.RequestID
		}
		return apiErr
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
