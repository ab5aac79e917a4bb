package model

import "time"

// Ask outcomes recorded in the audit log.
const (
	AskOutcomeAnswered      = "answered"
	AskOutcomeUpstreamError = "upstream_error"
)

// AskEvent is one completion attempt. It deliberately holds sizes only, never the
// question, answer, or document text.
type AskEvent struct {
	ID            string    `json:"id"`
	DocID         string    `json:"doc_id"`
	QuestionChars int       `json:"question_chars"`
	AnswerChars   int       `json:"answer_chars"`
	Outcome       string    `json:"outcome"`
	LatencyMS     int64     `json:"latency_ms"`
	CreatedAt     time.Time `json:"created_at"`
}
