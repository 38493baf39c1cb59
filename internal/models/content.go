package models

import (
	"time"

	"gorm.io/datatypes"
)

// DifficultyLevel is the difficulty label attached to a question.
type DifficultyLevel string

const (
	DifficultyEasy    DifficultyLevel = "Easy"
	DifficultyMedium  DifficultyLevel = "Medium"
	DifficultyHard    DifficultyLevel = "Hard"
	DifficultyUnknown DifficultyLevel = "Unknown"
)

// Normalize maps anything outside {Easy, Medium, Hard} to Unknown.
func (d DifficultyLevel) Normalize() DifficultyLevel {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d
	default:
		return DifficultyUnknown
	}
}

// Score returns the numeric weight used for averaged difficulty.
// Unknown defaults to the Medium weight.
func (d DifficultyLevel) Score() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyHard:
		return 3
	default:
		return 2
	}
}

// Subject is a top-level content area for one exam type.
type Subject struct {
	ID       string `json:"id" gorm:"primaryKey;size:64"`
	Name     string `json:"name" gorm:"not null"`
	ExamType string `json:"exam_type" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Topic belongs to a Subject.
type Topic struct {
	ID        string `json:"id" gorm:"primaryKey;size:64"`
	SubjectID string `json:"subject_id" gorm:"not null;index"`
	Name      string `json:"name" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subtopic belongs to a Topic. SubjectID is denormalized from the
// owning topic, matching the document layout of the authoring CMS.
type Subtopic struct {
	ID        string `json:"id" gorm:"primaryKey;size:64"`
	TopicID   string `json:"topic_id" gorm:"not null;index"`
	SubjectID string `json:"subject_id" gorm:"not null;index"`
	Name      string `json:"name" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Question is the leaf of the content taxonomy. Subtopics are referenced
// by name rather than id; renaming a subtopic orphans its questions in
// subtopic-scoped reports (kept as-is to preserve historical counts).
type Question struct {
	ID           string          `json:"id" gorm:"primaryKey;size:64"`
	SubjectID    string          `json:"subject_id" gorm:"index"`
	TopicID      string          `json:"topic_id" gorm:"index"`
	SubtopicName string          `json:"subtopic_name" gorm:"index"`
	Difficulty   DifficultyLevel `json:"difficulty" gorm:"size:16"`
	QuestionType string          `json:"question_type" gorm:"size:32"`
	Description  string          `json:"description" gorm:"type:text"`

	Options  datatypes.JSON `json:"options,omitempty" gorm:"type:jsonb"`
	Solution datatypes.JSON `json:"solution,omitempty" gorm:"type:jsonb"`

	Locked    bool      `json:"locked"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasOptions reports whether the question carries a non-empty options payload.
func (q *Question) HasOptions() bool {
	return hasJSONPayload(q.Options)
}

// HasSolution reports whether the question carries a non-empty solution payload.
func (q *Question) HasSolution() bool {
	return hasJSONPayload(q.Solution)
}

func hasJSONPayload(data datatypes.JSON) bool {
	switch string(data) {
	case "", "null", "{}", "[]":
		return false
	}
	return true
}
