package model

import "time"

// Document is an uploaded file reduced to its extracted text.
// Documents are immutable once stored; only Text is used to answer questions,
// the remaining fields describe the original upload.
type Document struct {
	ID          string    `json:"id"`
	Text        string    `json:"-"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}
