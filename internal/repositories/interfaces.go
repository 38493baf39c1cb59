package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/SatishBanchhere/abc-classes-sub002/internal/models"
)

// ErrStoreUnavailable wraps any driver-level failure of the content store.
// A request that hits it fails as a whole; there are no partial results.
var ErrStoreUnavailable = errors.New("content store unavailable")

// ===== SHARED FILTER STRUCTS =====

// QuestionFilters narrows question enumeration. All fields are optional;
// nil means "no constraint on this field".
type QuestionFilters struct {
	SubjectID    *string    `json:"subject_id"`
	TopicID      *string    `json:"topic_id"`
	SubtopicName *string    `json:"subtopic_name"`
	CreatedAfter *time.Time `json:"created_after"`
}

// ===== REPOSITORY INTERFACES =====

// ContentRepository is the read-only enumeration contract the analytics
// engine consumes. Implementations must return rows in a stable order
// (creation time, then id) so repeated reports over the same snapshot
// are identical; the engine never mutates content.
type ContentRepository interface {
	FetchQuestions(ctx context.Context, filters QuestionFilters) ([]*models.Question, error)
	FetchSubjects(ctx context.Context, examType string) ([]*models.Subject, error)
	FetchTopics(ctx context.Context, subjectID string) ([]*models.Topic, error)
	FetchSubtopics(ctx context.Context, topicID string) ([]*models.Subtopic, error)
}
