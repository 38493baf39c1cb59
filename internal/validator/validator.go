package validator

import (
	"reflect"
	"strings"

	apperrors "github.com/SatishBanchhere/abc-classes-sub002/internal/errors"
	"github.com/go-playground/validator/v10"
)

// ReportView selects which read model a report request wants.
type ReportView string

const (
	ViewOverview  ReportView = "overview"
	ViewSubjects  ReportView = "subjects"
	ViewTopics    ReportView = "topics"
	ViewSubtopics ReportView = "subtopics"
	ViewQuestions ReportView = "questions"
	ViewAnalytics ReportView = "analytics"
	ViewTimeline  ReportView = "timeline"
	ViewComplete  ReportView = "complete"
)

// ReportRequest carries the view selector and its scope parameters as
// parsed off the transport. Zero values mean "not supplied".
type ReportRequest struct {
	View         ReportView `json:"view" validate:"omitempty,report_view"`
	ExamType     string     `json:"exam_type"`
	SubjectID    string     `json:"subject_id"`
	TopicID      string     `json:"topic_id"`
	SubtopicName string     `json:"subtopic_name"`
	Days         int        `json:"days" validate:"omitempty,min=1,max=365"`
	Page         int        `json:"page" validate:"omitempty,min=1"`
	Limit        int        `json:"limit" validate:"omitempty,min=1,max=200"`
}

// Validator validates report requests before any store access happens.
type Validator struct {
	structValidator *validator.Validate
}

// New creates a new validator instance
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)
	return &Validator{structValidator: structValidator}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// NormalizeReportRequest fills defaults: the view selector falls back to
// complete, the timeline window to 30 days, pagination to page 1 / 20.
func (v *Validator) NormalizeReportRequest(req *ReportRequest) {
	if req.View == "" {
		req.View = ViewComplete
	}
	if req.Days < 1 {
		req.Days = 30
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = 20
	}
}

// ValidateReportRequest normalizes then checks the per-view preconditions.
func (v *Validator) ValidateReportRequest(req *ReportRequest) error {
	v.NormalizeReportRequest(req)

	if err := v.ValidateStruct(req); err != nil {
		return err
	}

	// The questions listing is the only view that works unscoped.
	if req.View != ViewQuestions && req.ExamType == "" {
		return apperrors.NewValidationError("examType", "is required", req.ExamType)
	}

	switch req.View {
	case ViewTopics:
		if req.SubjectID == "" {
			return apperrors.NewValidationError("subjectId", "is required for the topics view", req.SubjectID)
		}
	case ViewSubtopics:
		if req.TopicID == "" {
			return apperrors.NewValidationError("topicId", "is required for the subtopics view", req.TopicID)
		}
	}

	return nil
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("report_view", validateReportView)

	// Register custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateReportView(fl validator.FieldLevel) bool {
	switch ReportView(fl.Field().String()) {
	case ViewOverview, ViewSubjects, ViewTopics, ViewSubtopics,
		ViewQuestions, ViewAnalytics, ViewTimeline, ViewComplete:
		return true
	}
	return false
}
