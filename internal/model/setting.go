package model

import "time"

type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SchemaVersion struct {
	Version   int       `json:"version"`
	AppliedAt time.Time `json:"applied_at"`
}
