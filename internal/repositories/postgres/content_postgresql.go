package postgres

import (
	"context"
	"fmt"

	"github.com/SatishBanchhere/abc-classes-sub002/internal/models"
	"github.com/SatishBanchhere/abc-classes-sub002/internal/repositories"
	"gorm.io/gorm"
)

// contentRepository is the gorm-backed implementation of the read-only
// content enumeration contract.
type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) repositories.ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) FetchQuestions(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, error) {
	query := r.db.WithContext(ctx).Model(&models.Question{})

	if filters.SubjectID != nil {
		query = query.Where("subject_id = ?", *filters.SubjectID)
	}
	if filters.TopicID != nil {
		query = query.Where("topic_id = ?", *filters.TopicID)
	}
	if filters.SubtopicName != nil {
		query = query.Where("subtopic_name = ?", *filters.SubtopicName)
	}
	if filters.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filters.CreatedAfter)
	}

	var questions []*models.Question
	// Stable ordering keeps fold encounter order, and with it every
	// tie-break, deterministic across identical snapshots.
	if err := query.Order("created_at ASC, id ASC").Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("%w: fetch questions: %v", repositories.ErrStoreUnavailable, err)
	}
	return questions, nil
}

func (r *contentRepository) FetchSubjects(ctx context.Context, examType string) ([]*models.Subject, error) {
	query := r.db.WithContext(ctx).Model(&models.Subject{})
	if examType != "" {
		query = query.Where("exam_type = ?", examType)
	}

	var subjects []*models.Subject
	if err := query.Order("created_at ASC, id ASC").Find(&subjects).Error; err != nil {
		return nil, fmt.Errorf("%w: fetch subjects: %v", repositories.ErrStoreUnavailable, err)
	}
	return subjects, nil
}

func (r *contentRepository) FetchTopics(ctx context.Context, subjectID string) ([]*models.Topic, error) {
	query := r.db.WithContext(ctx).Model(&models.Topic{})
	if subjectID != "" {
		query = query.Where("subject_id = ?", subjectID)
	}

	var topics []*models.Topic
	if err := query.Order("created_at ASC, id ASC").Find(&topics).Error; err != nil {
		return nil, fmt.Errorf("%w: fetch topics: %v", repositories.ErrStoreUnavailable, err)
	}
	return topics, nil
}

func (r *contentRepository) FetchSubtopics(ctx context.Context, topicID string) ([]*models.Subtopic, error) {
	query := r.db.WithContext(ctx).Model(&models.Subtopic{})
	if topicID != "" {
		query = query.Where("topic_id = ?", topicID)
	}

	var subtopics []*models.Subtopic
	if err := query.Order("created_at ASC, id ASC").Find(&subtopics).Error; err != nil {
		return nil, fmt.Errorf("%w: fetch subtopics: %v", repositories.ErrStoreUnavailable, err)
	}
	return subtopics, nil
}
