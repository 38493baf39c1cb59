package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SatishBanchhere/abc-classes-sub002/internal/events"
	"github.com/SatishBanchhere/abc-classes-sub002/internal/models"
	"github.com/SatishBanchhere/abc-classes-sub002/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ===== MOCK REPOSITORY =====

type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) FetchQuestions(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Question), args.Error(1)
}

func (m *MockContentRepository) FetchSubjects(ctx context.Context, examType string) ([]*models.Subject, error) {
	args := m.Called(ctx, examType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subject), args.Error(1)
}

func (m *MockContentRepository) FetchTopics(ctx context.Context, subjectID string) ([]*models.Topic, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Topic), args.Error(1)
}

func (m *MockContentRepository) FetchSubtopics(ctx context.Context, topicID string) ([]*models.Subtopic, error) {
	args := m.Called(ctx, topicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subtopic), args.Error(1)
}

// ===== FIXTURES =====

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestService(repo repositories.ContentRepository) (*analyticsService, *events.MockEventPublisher) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := events.NewMockEventPublisher(logger)
	svc := NewAnalyticsService(repo, publisher, logger).(*analyticsService)
	svc.now = func() time.Time { return testNow }
	return svc, publisher
}

func mkQuestion(id, subjectID, topicID, subtopicName string, difficulty models.DifficultyLevel, createdAt time.Time) *models.Question {
	return &models.Question{
		ID:           id,
		SubjectID:    subjectID,
		TopicID:      topicID,
		SubtopicName: subtopicName,
		Difficulty:   difficulty,
		QuestionType: "mcq",
		Description:  "Question body for " + id,
		CreatedAt:    createdAt,
	}
}

func storeErr(op string) error {
	return fmt.Errorf("%w: %s: connection refused", repositories.ErrStoreUnavailable, op)
}

// ===== OVERVIEW =====

func TestGetOverview(t *testing.T) {
	repo := new(MockContentRepository)
	svc, _ := newTestService(repo)

	subjects := []*models.Subject{
		{ID: "phy", Name: "Physics", ExamType: "jee"},
		{ID: "chem", Name: "Chemistry", ExamType: "jee"},
	}
	questions := []*models.Question{
		mkQuestion("q1", "phy", "t1", "Kinematics", models.DifficultyEasy, testNow.AddDate(0, 0, -1)),
		mkQuestion("q2", "phy", "t1", "Kinematics", models.DifficultyEasy, testNow.AddDate(0, 0, -1).Add(time.Hour)),
		mkQuestion("q3", "chem", "t2", "", models.DifficultyHard, testNow.AddDate(0, 0, -2)),
		// Dangling subject reference, must not be counted anywhere.
		mkQuestion("q4", "ghost", "t9", "", models.DifficultyEasy, testNow),
	}

	repo.On("FetchSubjects", mock.Anything, "jee").Return(subjects, nil)
	repo.On("FetchQuestions", mock.Anything, repositories.QuestionFilters{}).Return(questions, nil)
	repo.On("FetchTopics", mock.Anything, "phy").Return([]*models.Topic{{ID: "t1", SubjectID: "phy", Name: "Mechanics"}}, nil)
	repo.On("FetchTopics", mock.Anything, "chem").Return([]*models.Topic{{ID: "t2", SubjectID: "chem", Name: "Organic"}}, nil)
	repo.On("FetchSubtopics", mock.Anything, "t1").Return([]*models.Subtopic{{ID: "st1", TopicID: "t1", SubjectID: "phy", Name: "Kinematics"}}, nil)
	repo.On("FetchSubtopics", mock.Anything, "t2").Return([]*models.Subtopic{}, nil)

	report, err := svc.GetOverview(context.Background(), "jee")
	require.NoError(t, err)

	assert.Equal(t, "jee", report.ExamType)
	assert.Equal(t, 2, report.Totals.Subjects)
	assert.Equal(t, 2, report.Totals.Topics)
	assert.Equal(t, 1, report.Totals.Subtopics)
	assert.Equal(t, 3, report.Totals.Questions)

	require.Len(t, report.DifficultyDistribution, 2)
	assert.Equal(t, "Easy", report.DifficultyDistribution[0].Label)
	assert.Equal(t, 66.7, report.DifficultyDistribution[0].Percentage)
	assert.Equal(t, "Hard", report.DifficultyDistribution[1].Label)
	assert.Equal(t, 33.3, report.DifficultyDistribution[1].Percentage)

	// Newest date first.
	require.Len(t, report.RecentActivity, 2)
	assert.Equal(t, "2026-03-14", report.RecentActivity[0].Date)
	assert.Equal(t, 2, report.RecentActivity[0].Count)
	assert.Equal(t, "2026-03-13", report.RecentActivity[1].Date)

	assert.Equal(t, testNow, report.GeneratedAt)
	repo.AssertExpectations(t)
}

func TestGetOverview_ExamTypeRequired(t *testing.T) {
	repo := new(MockContentRepository)
	svc, _ := newTestService(repo)

	_, err := svc.GetOverview(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExamTypeMissing)
	assert.True(t, IsInvalidRequest(err))
	repo.AssertNotCalled(t, "FetchSubjects")
}

func TestGetOverview_StoreUnavailable(t *testing.T) {
	repo := new(MockContentRepository)
	svc, _ := newTestService(repo)

	repo.On("FetchSubjects", mock.Anything, "jee").Return(nil, storeErr("fetch subjects"))

	_, err := svc.GetOverview(context.Background(), "jee")
	require.Error(t, err)
	assert.True(t, IsStoreUnavailable(err))
	assert.False(t, IsInvalidRequest(err))
}

// ===== SUBJECTS =====

func TestGetSubjectReport(t *testing.T) {
	repo := new(MockContentRepository)
	svc, _ := newTestService(repo)

	lastCreated := testNow.AddDate(0, 0, -1)
	subjects := []*models.Subject{
		{ID: "phy", Name: "Physics", ExamType: "jee"},
		{ID: "chem", Name: "Chemistry", ExamType: "jee"},
	}
	questions := []*models.Question{
		mkQuestion("q1", "phy", "t1", "", models.DifficultyEasy, lastCreated.Add(-time.Hour)),
		mkQuestion("q2", "phy", "t1", "", models.DifficultyEasy, lastCreated),
	}

	repo.On("FetchSubjects", mock.Anything, "jee").Return(subjects, nil)
	repo.On("FetchQuestions", mock.Anything, repositories.QuestionFilters{}).Return(questions, nil)
	repo.On("FetchTopics", mock.Anything, "phy").Return([]*models.Topic{{ID: "t1"}}, nil)
	repo.On("FetchTopics", mock.Anything, "chem").Return([]*models.Topic{}, nil)

	report, err := svc.GetSubjectReport(context.Background(), "jee")
	require.NoError(t, err)
	require.Len(t, report.Subjects, 2)

	phy := report.Subjects[0]
	assert.Equal(t, "phy", phy.SubjectID)
	assert.Equal(t, "Physics", phy.SubjectName)
	assert.Equal(t, 1, phy.TopicCount)
	assert.Equal(t, 2, phy.TotalQuestions)
	assert.Equal(t, 2, phy.DifficultyBreakdown.Easy)
	assert.Equal(t, map[string]int{"mcq": 2}, phy.QuestionTypes)
	require.NotNil(t, phy.LastUpdated)
	assert.Equal(t, lastCreated, *phy.LastUpdated)

	// A subject with no questions still gets a row, zeroed out.
	chem := report.Subjects[1]
	assert.Equal(t, 0, chem.TotalQuestions)
	assert.Nil(t, chem.LastUpdated)
	assert.NotNil(t, chem.QuestionTypes)
}

// ===== TOPICS =====

func TestGetTopicReport(t *testing.T) {
	repo := new(MockContentRepository)
	svc, _ := newTestService(repo)

	repo.On("FetchTopics", mock.Anything, "phy").Return([]*models.Topic{{ID: "t1", SubjectID: "phy", Name: "Mechanics"}}, nil)
	repo.On("FetchQuestions", mock.Anything, mock.MatchedBy(func(f repositories.QuestionFilters) bool {
		return f.SubjectID != nil && *f.SubjectID == "phy"
	})).Return([]*models.Question{
		mkQuestion("q1", "phy", "t1", "Kinematics", models.DifficultyEasy, testNow),
		mkQuestion("q2", "phy", "t1", "Kinematics", models.DifficultyHard, testNow),
	}, nil)
	repo.On("FetchSubtopics", mock.Anything, "t1").Return([]*models.Subtopic{
		{ID: "st1", TopicID: "t1", SubjectID: "phy", Name: "Kinematics"},
		{ID: "st2", TopicID: "t1", SubjectID: "phy", Name: "Dynamics"},
	}, nil)

	report, err := svc.GetTopicReport(context.Background(), "jee", "phy")
	require.NoError(t, err)
	require.Len(t, report.Topics, 1)

	row := report.Topics[0]
	assert.Equal(t, "t1", row.TopicID)
	assert.Equal(t, 2, row.SubtopicCount)
	assert.Equal(t, []string{"Kinematics", "Dynamics"}, row.SubtopicNames)
	assert.Equal(t, 2, row.TotalQuestions)
	assert.Equal(t, 1, row.DifficultyBreakdown.Easy)
	assert.Equal(t, 1, row.DifficultyBreakdown.Hard)
}

func TestGetTopicReport_SubjectIDRequired(t *testing.T) {
	repo := new(MockContentRepository)
	svc, _ := newTestService(repo)

	_, err := svc.GetTopicReport(context.Background(), "jee", "")
	require.Error(t, err)
	assert.True(t, IsMissingParam(err))
	assert.True(t, IsInvalidRequest(err))

	var mpe *MissingParamError
	require.True(t, errors.As(err, &mpe))
	assert.Equal(t, "subjectId", mpe.Param)
}

// ===== SUBTOPICS =====

func TestGetSubtopicReport_JoinsByNameTriple(t *testing.T) {
	repo := new(MockContentRepository)
	svc, _ := newTestService(repo)

	repo.On("FetchSubtopics", mock.Anything, "t1").Return([]*models.Subtopic{
		{ID: "st1", TopicID: "t1", SubjectID: "phy", Name: "Kinematics"},
	}, nil)
	repo.On("FetchQuestions", mock.Anything, mock.MatchedBy(func(f repositories.QuestionFilters) bool {
		return f.TopicID != nil && *f.TopicID == "t1"
	})).Return([]*models.Question{
		mkQuestion("q1", "phy", "t1", "Kinematics", models.DifficultyEasy, testNow),
		mkQuestion("q2", "phy", "t1", "Kinematics", models.DifficultyMedium, testNow),
		// Stale name no longer backed by a subtopic entity; never surfaces.
		mkQuestion("q3", "phy", "t1", "Rotation", models.DifficultyHard, testNow),
	}, nil)

	report, err := svc.GetSubtopicReport(context.Background(), "jee", "t1")
	require.NoError(t, err)
	require.Len(t, report.Subtopics, 1)

	row := report.Subtopics[0]
	assert.Equal(t, "Kinematics", row.SubtopicName)
	assert.Equal(t, 2, row.TotalQuestions)
	assert.Equal(t, 1, row.DifficultyBreakdown.Easy)
	assert.Equal(t, 1, row.DifficultyBreakdown.Medium)
}

func TestGetSubtopicReport_TopicIDRequired(t *testing.T) {
	repo := new(MockContentRepository)
	svc, _ := newTestService(repo)

	_, err := svc.GetSubtopicReport(context.Background(), "jee", "")
	require.Error(t, err)
	assert.True(t, IsMissingParam(err))
}

// ===== QUESTION PAGE =====

func TestGetQuestionPage(t *testing.T) {
	repo := new(MockContentRepository)
	svc, _ := newTestService(repo)

	questions := make([]*models.Question, 45)
	for i := range questions {
		questions[i] = mkQuestion(fmt.Sprintf("q%02d", i), "phy", "t1", "", models.DifficultyEasy, testNow)
	}
	repo.On("FetchQuestions", mock.Anything, repositories.QuestionFilters{}).Return(questions, nil)

	first, err := svc.GetQuestionPage(context.Background(), QuestionPageParams{})
	require.NoError(t, err)
	assert.Len(t, first.Questions, 20)
	assert.Equal(t, 1, first.Pagination.CurrentPage)
	assert.Equal(t, 3, first.Pagination.TotalPages)
	assert.Equal(t, 45, first.Pagination.TotalQuestions)
	assert.True(t, first.Pagination.HasMore)

	last, err := svc.GetQuestionPage(context.Background(), QuestionPageParams{Page: 3, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, last.Questions, 5)
	assert.False(t, last.Pagination.HasMore)

	beyond, err := svc.GetQuestionPage(context.Background(), QuestionPageParams{Page: 9, Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, beyond.Questions)
	assert.False(t, beyond.Pagination.HasMore)
}

func TestGetQuestionPage_ItemShape(t *testing.T) {
	repo := new(MockContentRepository)
	svc, _ := newTestService(repo)

	q := mkQuestion("q1", "phy", "t1", "Kinematics", models.DifficultyLevel("bogus"), time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC))
	repo.On("FetchQuestions", mock.Anything, mock.Anything).Return([]*models.Question{q}, nil)

	page, err := svc.GetQuestionPage(context.Background(), QuestionPageParams{})
	require.NoError(t, err)
	require.Len(t, page.Questions, 1)

	item := page.Questions[0]
	assert.Equal(t, "Unknown", item.Difficulty)
	assert.Equal(t, "Mar 10, 2026, 2:30 PM", item.CreatedAt)
	assert.False(t, item.HasOptions)
	assert.False(t, item.HasSolution)
}

func TestSubjectTotalsMatchQuestionPage(t *testing.T) {
	repo := new(MockContentRepository)
	svc, _ := newTestService(repo)

	subjects := []*models.Subject{
		{ID: "phy", Name: "Physics", ExamType: "jee"},
		{ID: "chem", Name: "Chemistry", ExamType: "jee"},
	}
	phyQuestions := []*models.Question{
		mkQuestion("q1", "phy", "t1", "", models.DifficultyEasy, testNow.AddDate(0, 0, -3)),
		mkQuestion("q2", "phy", "t1", "", models.DifficultyMedium, testNow.AddDate(0, 0, -2)),
		mkQuestion("q3", "phy", "t2", "", models.DifficultyHard, testNow.AddDate(0, 0, -1)),
	}
	chemQuestions := []*models.Question{
		mkQuestion("q4", "chem", "t3", "", models.DifficultyEasy, testNow.AddDate(0, 0, -1)),
	}
	all := append(append([]*models.Question{}, phyQuestions...), chemQuestions...)
	// A dangling subject reference is outside both views.
	all = append(all, mkQuestion("q5", "ghost", "t9", "", models.DifficultyEasy, testNow))

	repo.On("FetchSubjects", mock.Anything, "jee").Return(subjects, nil)
	repo.On("FetchQuestions", mock.Anything, repositories.QuestionFilters{}).Return(all, nil)
	repo.On("FetchQuestions", mock.Anything, mock.MatchedBy(func(f repositories.QuestionFilters) bool {
		return f.SubjectID != nil && *f.SubjectID == "phy"
	})).Return(phyQuestions, nil)
	repo.On("FetchTopics", mock.Anything, "phy").Return([]*models.Topic{}, nil)
	repo.On("FetchTopics", mock.Anything, "chem").Return([]*models.Topic{}, nil)

	subjectReport, err := svc.GetSubjectReport(context.Background(), "jee")
	require.NoError(t, err)
	require.Len(t, subjectReport.Subjects, 2)

	page, err := svc.GetQuestionPage(context.Background(), QuestionPageParams{SubjectID: "phy"})
	require.NoError(t, err)

	// The per-subject total and the filtered listing count the same rows.
	phy := subjectReport.Subjects[0]
	require.Equal(t, "phy", phy.SubjectID)
	assert.Equal(t, 3, phy.TotalQuestions)
	assert.Equal(t, phy.TotalQuestions, page.Pagination.TotalQuestions)
	assert.Len(t, page.Questions, phy.TotalQuestions)
}

// ===== ANALYTICS =====

func TestGetAnalyticsReport(t *testing.T) {
	repo := new(MockContentRepository)
	svc, _ := newTestService(repo)

	subjects := []*models.Subject{
		{ID: "phy", Name: "Physics", ExamType: "jee"},
		{ID: "chem", Name: "Chemistry", ExamType: "jee"},
	}
	questions := []*models.Question{
		mkQuestion("q1", "phy", "t1", "", models.DifficultyEasy, time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)),
		mkQuestion("q2", "phy", "t1", "", models.DifficultyEasy, time.Date(2026, 3, 9, 11, 0, 0, 0, time.UTC)),
		mkQuestion("q3", "phy", "t1", "", models.DifficultyHard, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)),
		mkQuestion("q4", "chem", "t2", "", models.DifficultyEasy, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)),
	}

	repo.On("FetchSubjects", mock.Anything, "jee").Return(subjects, nil)
	repo.On("FetchQuestions", mock.Anything, repositories.QuestionFilters{}).Return(questions, nil)

	report, err := svc.GetAnalyticsReport(context.Background(), "jee")
	require.NoError(t, err)

	// Daily trends are newest first.
	require.Len(t, report.DailyTrends, 3)
	assert.Equal(t, "2026-03-10", report.DailyTrends[0].Date)
	assert.Equal(t, "2026-03-09", report.DailyTrends[1].Date)
	assert.Equal(t, 2, report.DailyTrends[1].Count)
	assert.Equal(t, "2026-03-02", report.DailyTrends[2].Date)

	// Subjects ordered by total question volume.
	require.Len(t, report.SubjectWeeklyTrends, 2)
	phy := report.SubjectWeeklyTrends[0]
	assert.Equal(t, "phy", phy.SubjectID)
	assert.Equal(t, 3, phy.TotalQuestions)

	// Weeks in chronological order within a subject.
	require.Len(t, phy.Weeks, 2)
	assert.Equal(t, "2026-W10", phy.Weeks[0].Week)
	assert.Equal(t, 1, phy.Weeks[0].Count)
	assert.Equal(t, 3.0, phy.Weeks[0].AvgDifficultyScore)
	assert.Equal(t, "2026-W11", phy.Weeks[1].Week)
	assert.Equal(t, 2, phy.Weeks[1].Count)
	assert.Equal(t, 1.0, phy.Weeks[1].AvgDifficultyScore)

	// Metrics iterate subjects in scope order, difficulties Easy..Unknown,
	// with absent combinations skipped.
	require.Len(t, report.QuestionMetrics, 3)
	assert.Equal(t, "phy", report.QuestionMetrics[0].SubjectID)
	assert.Equal(t, "Easy", report.QuestionMetrics[0].Difficulty)
	assert.Equal(t, 2, report.QuestionMetrics[0].Count)
	assert.Equal(t, "Hard", report.QuestionMetrics[1].Difficulty)
	assert.Equal(t, "chem", report.QuestionMetrics[2].SubjectID)
}

// ===== TIMELINE =====

func TestGetTimelineReport_EmptyWindow(t *testing.T) {
	repo := new(MockContentRepository)
	svc, _ := newTestService(repo)

	repo.On("FetchSubjects", mock.Anything, "jee").Return([]*models.Subject{{ID: "phy", Name: "Physics"}}, nil)
	repo.On("FetchQuestions", mock.Anything, repositories.QuestionFilters{}).Return([]*models.Question{}, nil)

	report, err := svc.GetTimelineReport(context.Background(), "jee", 7)
	require.NoError(t, err)

	assert.NotNil(t, report.Timeline)
	assert.Empty(t, report.Timeline)
	assert.Equal(t, 7, report.Summary.TotalDays)
	assert.Equal(t, 0, report.Summary.TotalQuestions)
}

func TestGetTimelineReport_DefaultsDays(t *testing.T) {
	repo := new(MockContentRepository)
	svc, _ := newTestService(repo)

	repo.On("FetchSubjects", mock.Anything, "jee").Return([]*models.Subject{}, nil)
	repo.On("FetchQuestions", mock.Anything, repositories.QuestionFilters{}).Return([]*models.Question{}, nil)

	report, err := svc.GetTimelineReport(context.Background(), "jee", 0)
	require.NoError(t, err)
	assert.Equal(t, 30, report.Days)
}

func TestGetTimelineReport_PeakHourTieIsStable(t *testing.T) {
	repo := new(MockContentRepository)
	svc, _ := newTestService(repo)

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	questions := []*models.Question{
		mkQuestion("q1", "phy", "t1", "", models.DifficultyEasy, day.Add(10*time.Hour)),
		mkQuestion("q2", "phy", "t1", "", models.DifficultyEasy, day.Add(14*time.Hour)),
	}
	repo.On("FetchSubjects", mock.Anything, "jee").Return([]*models.Subject{{ID: "phy", Name: "Physics"}}, nil)
	repo.On("FetchQuestions", mock.Anything, repositories.QuestionFilters{}).Return(questions, nil)

	for i := 0; i < 10; i++ {
		report, err := svc.GetTimelineReport(context.Background(), "jee", 7)
		require.NoError(t, err)
		require.Len(t, report.Timeline, 1)

		dayReport := report.Timeline[0]
		assert.Equal(t, "2026-03-14", dayReport.Date)
		assert.Equal(t, 2, dayReport.TotalCount)
		assert.Equal(t, 1, dayReport.SubjectCount)
		require.Len(t, dayReport.HourlyBreakdown, 2)
		assert.Equal(t, 10, dayReport.HourlyBreakdown[0].Hour)
		assert.Equal(t, "Physics", dayReport.HourlyBreakdown[0].Subject)
		require.NotNil(t, dayReport.PeakHour)
		assert.Equal(t, 10, *dayReport.PeakHour)
	}
}

// ===== COMPLETE =====

func TestGetCompleteReport(t *testing.T) {
	repo := new(MockContentRepository)
	svc, publisher := newTestService(repo)

	subjects := []*models.Subject{{ID: "phy", Name: "Physics", ExamType: "jee"}}
	questions := []*models.Question{
		mkQuestion("q1", "phy", "t1", "", models.DifficultyEasy, testNow.AddDate(0, 0, -1)),
	}
	repo.On("FetchSubjects", mock.Anything, "jee").Return(subjects, nil)
	repo.On("FetchQuestions", mock.Anything, repositories.QuestionFilters{}).Return(questions, nil)
	repo.On("FetchTopics", mock.Anything, "phy").Return([]*models.Topic{{ID: "t1"}}, nil)
	repo.On("FetchSubtopics", mock.Anything, "t1").Return([]*models.Subtopic{}, nil)

	report, err := svc.GetCompleteReport(context.Background(), "jee")
	require.NoError(t, err)

	require.NotNil(t, report.Overview)
	require.NotNil(t, report.Subjects)
	require.NotNil(t, report.Analytics)
	require.NotNil(t, report.Timeline)
	assert.Equal(t, 1, report.Overview.Totals.Questions)
	assert.Equal(t, 7, report.Timeline.Days)

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventReportGenerated, published[0].Type)
	payload, ok := published[0].Data.(events.ReportGeneratedEvent)
	require.True(t, ok)
	assert.Equal(t, "complete", payload.View)
	assert.Equal(t, "jee", payload.ExamType)
	assert.Equal(t, 1, payload.TotalQuestions)
}

func TestGetCompleteReport_NoPartialResults(t *testing.T) {
	repo := new(MockContentRepository)
	svc, publisher := newTestService(repo)

	repo.On("FetchSubjects", mock.Anything, "jee").Return(nil, storeErr("fetch subjects"))

	report, err := svc.GetCompleteReport(context.Background(), "jee")
	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, IsStoreUnavailable(err))
	assert.Empty(t, publisher.GetPublishedEvents())
}

func TestGetCompleteReport_Cancelled(t *testing.T) {
	repo := new(MockContentRepository)
	svc, _ := newTestService(repo)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.GetCompleteReport(ctx, "jee")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	repo.AssertNotCalled(t, "FetchSubjects")
}
