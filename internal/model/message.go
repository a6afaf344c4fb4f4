package model

import "time"

// Message is one prior conversational turn, supplied by the calling layer
// for context-window lookups (e.g., resolving "the replacement" to a
// manufacturer named two turns earlier).
type Message struct {
	Text      string    `json:"text"`
	Sender    string    `json:"sender"` // "user" or "assistant"
	Timestamp time.Time `json:"timestamp"`
}
