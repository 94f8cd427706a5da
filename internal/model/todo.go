package model

import "time"

// Todo is the domain model for a single task entry.
// The JSON field names are the persisted format; do not rename them.
type Todo struct {
	ID        string `json:"id"`
	Completed bool   `json:"completed"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"createdAt"` // ms since epoch
}

// Created returns CreatedAt as a local time.
func (t Todo) Created() time.Time { return time.UnixMilli(t.CreatedAt) }
