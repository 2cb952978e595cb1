package domain

import "time"

const DocumentCreatedTopic = "document.created"

type DocumentCreatedEvent struct {
	ID         string         `json:"id"`
	Collection string         `json:"collection"`
	Document   map[string]any `json:"document"`
	Timestamp  time.Time      `json:"timestamp"`
}
