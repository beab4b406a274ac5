package models

import "time"

// Report is the complete output structure
type Report struct {
	Tool      string   `json:"tool"`
	Version   string   `json:"version"`
	Timestamp string   `json:"timestamp"`
	Metadata  Metadata `json:"metadata"`
	Rows      []Row    `json:"rows"`
}

// Metadata contains report generation info
type Metadata struct {
	GeneratedAt   time.Time `json:"generated_at"`
	InputFile     string    `json:"input_file"`
	TotalIPs      int       `json:"total_ips"`
	FailedLookups int       `json:"failed_lookups"`
	Duration      string    `json:"duration"`
	Version       string    `json:"version"`
}
