package events

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
)

// EventType represents different types of analytics notification events
type EventType string

const (
	// Report events
	EventReportGenerated EventType = "report.generated"
	EventReportExported  EventType = "report.exported"
)

// ReportEvent is the base event structure for all analytics events
type ReportEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Report event payloads

type ReportGeneratedEvent struct {
	View           string    `json:"view"`
	ExamType       string    `json:"exam_type"`
	TotalQuestions int       `json:"total_questions"`
	DurationMS     int64     `json:"duration_ms"`
	GeneratedAt    time.Time `json:"generated_at"`
}

type ReportExportedEvent struct {
	View        string    `json:"view"`
	ExamType    string    `json:"exam_type"`
	Format      string    `json:"format"`
	SizeBytes   int       `json:"size_bytes"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NewReportEvent wraps a payload in the base envelope with a fresh id.
func NewReportEvent(eventType EventType, data interface{}) *ReportEvent {
	return &ReportEvent{
		ID:        watermill.NewUUID(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    "content-analytics",
		Version:   "1.0",
		Data:      data,
	}
}
