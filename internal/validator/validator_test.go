package validator

import (
	"testing"

	apperrors "github.com/SatishBanchhere/abc-classes-sub002/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeReportRequest(t *testing.T) {
	v := New()

	req := ReportRequest{}
	v.NormalizeReportRequest(&req)

	assert.Equal(t, ViewComplete, req.View)
	assert.Equal(t, 30, req.Days)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 20, req.Limit)

	// Supplied values survive normalization.
	req = ReportRequest{View: ViewTimeline, Days: 7, Page: 2, Limit: 50}
	v.NormalizeReportRequest(&req)
	assert.Equal(t, ViewTimeline, req.View)
	assert.Equal(t, 7, req.Days)
	assert.Equal(t, 2, req.Page)
	assert.Equal(t, 50, req.Limit)
}

func TestValidateReportRequest_Valid(t *testing.T) {
	v := New()

	for _, view := range []ReportView{ViewOverview, ViewSubjects, ViewAnalytics, ViewTimeline, ViewComplete} {
		req := ReportRequest{View: view, ExamType: "jee"}
		assert.NoError(t, v.ValidateReportRequest(&req), string(view))
	}
}

func TestValidateReportRequest_UnknownView(t *testing.T) {
	v := New()

	req := ReportRequest{View: "leaderboard", ExamType: "jee"}
	err := v.ValidateReportRequest(&req)
	require.Error(t, err)

	verrs, ok := err.(apperrors.ValidationErrors)
	require.True(t, ok)
	require.Len(t, verrs, 1)
	assert.Equal(t, "view", verrs[0].Field)
	assert.Equal(t, "report_view", verrs[0].Rule)
}

func TestValidateReportRequest_ExamTypeRequired(t *testing.T) {
	v := New()

	req := ReportRequest{View: ViewOverview}
	err := v.ValidateReportRequest(&req)
	require.Error(t, err)

	verr, ok := err.(*apperrors.ValidationError)
	require.True(t, ok)
	assert.Equal(t, "examType", verr.Field)
}

func TestValidateReportRequest_QuestionsViewIsUnscoped(t *testing.T) {
	v := New()

	req := ReportRequest{View: ViewQuestions}
	assert.NoError(t, v.ValidateReportRequest(&req))
}

func TestValidateReportRequest_ScopedViewParams(t *testing.T) {
	v := New()

	topics := ReportRequest{View: ViewTopics, ExamType: "jee"}
	err := v.ValidateReportRequest(&topics)
	require.Error(t, err)
	verr, ok := err.(*apperrors.ValidationError)
	require.True(t, ok)
	assert.Equal(t, "subjectId", verr.Field)

	topics.SubjectID = "phy"
	assert.NoError(t, v.ValidateReportRequest(&topics))

	subtopics := ReportRequest{View: ViewSubtopics, ExamType: "jee"}
	err = v.ValidateReportRequest(&subtopics)
	require.Error(t, err)
	verr, ok = err.(*apperrors.ValidationError)
	require.True(t, ok)
	assert.Equal(t, "topicId", verr.Field)
}

func TestValidateReportRequest_Bounds(t *testing.T) {
	v := New()

	tooLong := ReportRequest{View: ViewTimeline, ExamType: "jee", Days: 400}
	require.Error(t, v.ValidateReportRequest(&tooLong))

	tooGreedy := ReportRequest{View: ViewQuestions, Limit: 500}
	require.Error(t, v.ValidateReportRequest(&tooGreedy))
}
