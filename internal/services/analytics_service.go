package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/SatishBanchhere/abc-classes-sub002/internal/analytics"
	"github.com/SatishBanchhere/abc-classes-sub002/internal/events"
	"github.com/SatishBanchhere/abc-classes-sub002/internal/models"
	"github.com/SatishBanchhere/abc-classes-sub002/internal/repositories"
	"golang.org/x/sync/errgroup"
)

// AnalyticsService rolls the Subject -> Topic -> Subtopic -> Question
// taxonomy up into the dashboard report views. Every call is a fresh
// read-and-fold over the current content snapshot; nothing is persisted.
type AnalyticsService interface {
	// Scoped breakdowns
	GetOverview(ctx context.Context, examType string) (*OverviewReport, error)
	GetSubjectReport(ctx context.Context, examType string) (*SubjectReport, error)
	GetTopicReport(ctx context.Context, examType, subjectID string) (*TopicReport, error)
	GetSubtopicReport(ctx context.Context, examType, topicID string) (*SubtopicReport, error)

	// Raw listing
	GetQuestionPage(ctx context.Context, params QuestionPageParams) (*QuestionPage, error)

	// Trends
	GetAnalyticsReport(ctx context.Context, examType string) (*AnalyticsReport, error)
	GetTimelineReport(ctx context.Context, examType string, days int) (*TimelineReport, error)

	// Composition of Overview + Subjects + Analytics + Timeline(7 days)
	GetCompleteReport(ctx context.Context, examType string) (*CompleteReport, error)
}

type analyticsService struct {
	repo      repositories.ContentRepository
	publisher events.EventPublisher
	logger    *slog.Logger
	oplog     *ServiceLogger
	now       func() time.Time
}

func NewAnalyticsService(repo repositories.ContentRepository, publisher events.EventPublisher, logger *slog.Logger) AnalyticsService {
	return &analyticsService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		oplog:     NewServiceLogger(logger),
		now:       time.Now,
	}
}

const (
	defaultTimelineDays  = 30
	completeTimelineDays = 7
	recentActivityDays   = 30
	recentActivityMax    = 30
	dailyTrendMax        = 30
	questionPreviewLen   = 150
	timelinePreviewLen   = 100
	defaultPageLimit     = 20
)

// ===== DATA STRUCTURES =====

// DifficultyCounts is the fixed-key difficulty histogram of a bucket.
type DifficultyCounts struct {
	Easy    int `json:"easy"`
	Medium  int `json:"medium"`
	Hard    int `json:"hard"`
	Unknown int `json:"unknown,omitempty"`
}

type OverviewTotals struct {
	Subjects  int `json:"subjects"`
	Topics    int `json:"topics"`
	Subtopics int `json:"subtopics"`
	Questions int `json:"questions"`
}

type ActivityPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type OverviewReport struct {
	ExamType                 string                        `json:"exam_type"`
	Totals                   OverviewTotals                `json:"totals"`
	DifficultyDistribution   []analytics.DistributionEntry `json:"difficulty_distribution"`
	QuestionTypeDistribution []analytics.DistributionEntry `json:"question_type_distribution"`
	RecentActivity           []ActivityPoint               `json:"recent_activity"`
	GeneratedAt              time.Time                     `json:"generated_at"`
}

type SubjectRow struct {
	SubjectID           string           `json:"subject_id"`
	SubjectName         string           `json:"subject_name"`
	TopicCount          int              `json:"topic_count"`
	TotalQuestions      int              `json:"total_questions"`
	DifficultyBreakdown DifficultyCounts `json:"difficulty_breakdown"`
	QuestionTypes       map[string]int   `json:"question_types"`
	DailyActivity       map[string]int   `json:"daily_activity"`
	LastUpdated         *time.Time       `json:"last_updated,omitempty"`
}

type SubjectReport struct {
	ExamType    string       `json:"exam_type"`
	Subjects    []SubjectRow `json:"subjects"`
	GeneratedAt time.Time    `json:"generated_at"`
}

type TopicRow struct {
	TopicID             string           `json:"topic_id"`
	TopicName           string           `json:"topic_name"`
	SubtopicCount       int              `json:"subtopic_count"`
	SubtopicNames       []string         `json:"subtopic_names"`
	TotalQuestions      int              `json:"total_questions"`
	DifficultyBreakdown DifficultyCounts `json:"difficulty_breakdown"`
}

type TopicReport struct {
	ExamType    string     `json:"exam_type"`
	SubjectID   string     `json:"subject_id"`
	Topics      []TopicRow `json:"topics"`
	GeneratedAt time.Time  `json:"generated_at"`
}

type SubtopicRow struct {
	SubtopicID          string           `json:"subtopic_id"`
	SubtopicName        string           `json:"subtopic_name"`
	TotalQuestions      int              `json:"total_questions"`
	DifficultyBreakdown DifficultyCounts `json:"difficulty_breakdown"`
}

type SubtopicReport struct {
	ExamType    string        `json:"exam_type"`
	TopicID     string        `json:"topic_id"`
	Subtopics   []SubtopicRow `json:"subtopics"`
	GeneratedAt time.Time     `json:"generated_at"`
}

type QuestionPageParams struct {
	SubjectID    string `json:"subject_id"`
	TopicID      string `json:"topic_id"`
	SubtopicName string `json:"subtopic_name"`
	Page         int    `json:"page"`
	Limit        int    `json:"limit"`
}

type QuestionListItem struct {
	ID           string `json:"id"`
	SubjectID    string `json:"subject_id"`
	TopicID      string `json:"topic_id"`
	SubtopicName string `json:"subtopic_name"`
	Difficulty   string `json:"difficulty"`
	QuestionType string `json:"question_type"`
	Preview      string `json:"preview"`
	HasOptions   bool   `json:"has_options"`
	HasSolution  bool   `json:"has_solution"`
	Locked       bool   `json:"locked"`
	CreatedAt    string `json:"created_at"`
}

type Pagination struct {
	CurrentPage    int  `json:"current_page"`
	TotalPages     int  `json:"total_pages"`
	TotalQuestions int  `json:"total_questions"`
	HasMore        bool `json:"has_more"`
}

type QuestionPage struct {
	Questions  []QuestionListItem `json:"questions"`
	Pagination Pagination         `json:"pagination"`
}

type DailyTrend struct {
	Date                string           `json:"date"`
	Count               int              `json:"count"`
	SubjectCount        int              `json:"subject_count"`
	DifficultyBreakdown DifficultyCounts `json:"difficulty_breakdown"`
}

type WeeklyPoint struct {
	Week               string  `json:"week"`
	Count              int     `json:"count"`
	AvgDifficultyScore float64 `json:"avg_difficulty_score"`
}

type SubjectWeeklyTrend struct {
	SubjectID      string        `json:"subject_id"`
	SubjectName    string        `json:"subject_name"`
	TotalQuestions int           `json:"total_questions"`
	Weeks          []WeeklyPoint `json:"weeks"`
}

type QuestionMetric struct {
	SubjectID    string  `json:"subject_id"`
	SubjectName  string  `json:"subject_name"`
	Difficulty   string  `json:"difficulty"`
	Count        int     `json:"count"`
	AvgLength    int     `json:"avg_length"`
	MinLength    int     `json:"min_length"`
	MaxLength    int     `json:"max_length"`
	OptionRate   float64 `json:"option_rate"`
	SolutionRate float64 `json:"solution_rate"`
}

type AnalyticsReport struct {
	ExamType            string               `json:"exam_type"`
	DailyTrends         []DailyTrend         `json:"daily_trends"`
	SubjectWeeklyTrends []SubjectWeeklyTrend `json:"subject_weekly_trends"`
	QuestionMetrics     []QuestionMetric     `json:"question_metrics"`
	GeneratedAt         time.Time            `json:"generated_at"`
}

type HourlySlot struct {
	Hour     int      `json:"hour"`
	Subject  string   `json:"subject"`
	Count    int      `json:"count"`
	Previews []string `json:"previews"`
}

type TimelineDay struct {
	Date            string       `json:"date"`
	TotalCount      int          `json:"total_count"`
	SubjectCount    int          `json:"subject_count"`
	HourlyBreakdown []HourlySlot `json:"hourly_breakdown"`
	PeakHour        *int         `json:"peak_hour,omitempty"`
}

type TimelineSummary struct {
	TotalDays      int `json:"total_days"`
	TotalQuestions int `json:"total_questions"`
}

type TimelineReport struct {
	ExamType    string          `json:"exam_type"`
	Days        int             `json:"days"`
	Timeline    []TimelineDay   `json:"timeline"`
	Summary     TimelineSummary `json:"summary"`
	GeneratedAt time.Time       `json:"generated_at"`
}

type CompleteReport struct {
	Overview    *OverviewReport  `json:"overview"`
	Subjects    *SubjectReport   `json:"subjects"`
	Analytics   *AnalyticsReport `json:"analytics"`
	Timeline    *TimelineReport  `json:"timeline"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// ===== SCOPED BREAKDOWNS =====

func (s *analyticsService) GetOverview(ctx context.Context, examType string) (report *OverviewReport, err error) {
	start := s.now()
	defer func() {
		s.oplog.LogReportOperation(ctx, "overview", examType, s.now().Sub(start), err)
	}()

	scope, err := s.loadExamScope(ctx, examType)
	if err != nil {
		return nil, err
	}

	totalTopics := 0
	totalSubtopics := 0
	for _, subject := range scope.subjects {
		topics, err := s.repo.FetchTopics(ctx, subject.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count topics: %w", err)
		}
		totalTopics += len(topics)
		for _, topic := range topics {
			subtopics, err := s.repo.FetchSubtopics(ctx, topic.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to count subtopics: %w", err)
			}
			totalSubtopics += len(subtopics)
		}
	}

	totals := analytics.Accumulate(scope.questions, analytics.FoldOptions{})

	return &OverviewReport{
		ExamType: examType,
		Totals: OverviewTotals{
			Subjects:  len(scope.subjects),
			Topics:    totalTopics,
			Subtopics: totalSubtopics,
			Questions: totals.Count,
		},
		DifficultyDistribution:   analytics.PercentageDistribution(totals.Difficulty),
		QuestionTypeDistribution: analytics.PercentageDistribution(totals.Types),
		RecentActivity:           s.recentActivity(totals.Dates),
		GeneratedAt:              s.now(),
	}, nil
}

func (s *analyticsService) GetSubjectReport(ctx context.Context, examType string) (report *SubjectReport, err error) {
	start := s.now()
	defer func() {
		s.oplog.LogReportOperation(ctx, "subjects", examType, s.now().Sub(start), err)
	}()

	scope, err := s.loadExamScope(ctx, examType)
	if err != nil {
		return nil, err
	}

	rollup := analytics.Fold(scope.questions, func(q *models.Question) (string, bool) {
		return q.SubjectID, q.SubjectID != ""
	}, analytics.FoldOptions{})

	rows := make([]SubjectRow, 0, len(scope.subjects))
	for _, subject := range scope.subjects {
		topics, err := s.repo.FetchTopics(ctx, subject.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch topics for subject %s: %w", subject.ID, err)
		}

		row := SubjectRow{
			SubjectID:     subject.ID,
			SubjectName:   subject.Name,
			TopicCount:    len(topics),
			QuestionTypes: map[string]int{},
			DailyActivity: map[string]int{},
		}
		if bucket, ok := rollup.Bucket(subject.ID); ok {
			row.TotalQuestions = bucket.Count
			row.DifficultyBreakdown = difficultyCountsOf(bucket.Difficulty)
			row.QuestionTypes = bucket.Types.ToMap()
			row.DailyActivity = bucket.Dates.ToMap()
			if !bucket.LastCreated.IsZero() {
				lastUpdated := bucket.LastCreated
				row.LastUpdated = &lastUpdated
			}
		}
		rows = append(rows, row)
	}

	return &SubjectReport{
		ExamType:    examType,
		Subjects:    rows,
		GeneratedAt: s.now(),
	}, nil
}

func (s *analyticsService) GetTopicReport(ctx context.Context, examType, subjectID string) (report *TopicReport, err error) {
	start := s.now()
	defer func() {
		s.oplog.LogReportOperation(ctx, "topics", examType, s.now().Sub(start), err)
	}()

	if examType == "" {
		return nil, ErrExamTypeMissing
	}
	if subjectID == "" {
		return nil, NewMissingParamError("subjectId", "topics")
	}

	topics, err := s.repo.FetchTopics(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch topics: %w", err)
	}
	questions, err := s.repo.FetchQuestions(ctx, repositories.QuestionFilters{SubjectID: &subjectID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch questions: %w", err)
	}

	rollup := analytics.Fold(questions, func(q *models.Question) (string, bool) {
		return q.TopicID, q.TopicID != ""
	}, analytics.FoldOptions{})

	rows := make([]TopicRow, 0, len(topics))
	for _, topic := range topics {
		subtopics, err := s.repo.FetchSubtopics(ctx, topic.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch subtopics for topic %s: %w", topic.ID, err)
		}
		names := make([]string, 0, len(subtopics))
		for _, st := range subtopics {
			names = append(names, st.Name)
		}

		row := TopicRow{
			TopicID:       topic.ID,
			TopicName:     topic.Name,
			SubtopicCount: len(subtopics),
			SubtopicNames: names,
		}
		if bucket, ok := rollup.Bucket(topic.ID); ok {
			row.TotalQuestions = bucket.Count
			row.DifficultyBreakdown = difficultyCountsOf(bucket.Difficulty)
		}
		rows = append(rows, row)
	}

	return &TopicReport{
		ExamType:    examType,
		SubjectID:   subjectID,
		Topics:      rows,
		GeneratedAt: s.now(),
	}, nil
}

func (s *analyticsService) GetSubtopicReport(ctx context.Context, examType, topicID string) (report *SubtopicReport, err error) {
	start := s.now()
	defer func() {
		s.oplog.LogReportOperation(ctx, "subtopics", examType, s.now().Sub(start), err)
	}()

	if examType == "" {
		return nil, ErrExamTypeMissing
	}
	if topicID == "" {
		return nil, NewMissingParamError("topicId", "subtopics")
	}

	subtopics, err := s.repo.FetchSubtopics(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subtopics: %w", err)
	}
	questions, err := s.repo.FetchQuestions(ctx, repositories.QuestionFilters{TopicID: &topicID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch questions: %w", err)
	}

	// Questions reference subtopics by name, not id. The join is the
	// exact (subjectId, topicId, name) triple; renaming a subtopic
	// orphans its historical questions, which is accepted behavior.
	rollup := analytics.Fold(questions, func(q *models.Question) (string, bool) {
		if q.SubtopicName == "" {
			return "", false
		}
		return analytics.CompositeKey(q.SubjectID, q.TopicID, q.SubtopicName), true
	}, analytics.FoldOptions{})

	rows := make([]SubtopicRow, 0, len(subtopics))
	for _, subtopic := range subtopics {
		row := SubtopicRow{
			SubtopicID:   subtopic.ID,
			SubtopicName: subtopic.Name,
		}
		key := analytics.CompositeKey(subtopic.SubjectID, subtopic.TopicID, subtopic.Name)
		if bucket, ok := rollup.Bucket(key); ok {
			row.TotalQuestions = bucket.Count
			row.DifficultyBreakdown = difficultyCountsOf(bucket.Difficulty)
		}
		rows = append(rows, row)
	}

	return &SubtopicReport{
		ExamType:    examType,
		TopicID:     topicID,
		Subtopics:   rows,
		GeneratedAt: s.now(),
	}, nil
}

// ===== RAW LISTING =====

func (s *analyticsService) GetQuestionPage(ctx context.Context, params QuestionPageParams) (page *QuestionPage, err error) {
	start := s.now()
	defer func() {
		s.oplog.LogReportOperation(ctx, "questions", "", s.now().Sub(start), err)
	}()

	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = defaultPageLimit
	}

	filters := repositories.QuestionFilters{}
	if params.SubjectID != "" {
		filters.SubjectID = &params.SubjectID
	}
	if params.TopicID != "" {
		filters.TopicID = &params.TopicID
	}
	if params.SubtopicName != "" {
		filters.SubtopicName = &params.SubtopicName
	}

	questions, err := s.repo.FetchQuestions(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch questions: %w", err)
	}

	total := len(questions)
	totalPages := (total + params.Limit - 1) / params.Limit

	offset := (params.Page - 1) * params.Limit
	end := offset + params.Limit
	if offset > total {
		offset = total
	}
	if end > total {
		end = total
	}

	items := make([]QuestionListItem, 0, end-offset)
	for _, q := range questions[offset:end] {
		items = append(items, QuestionListItem{
			ID:           q.ID,
			SubjectID:    q.SubjectID,
			TopicID:      q.TopicID,
			SubtopicName: q.SubtopicName,
			Difficulty:   string(q.Difficulty.Normalize()),
			QuestionType: q.QuestionType,
			Preview:      analytics.Preview(q.Description, questionPreviewLen),
			HasOptions:   q.HasOptions(),
			HasSolution:  q.HasSolution(),
			Locked:       q.Locked,
			CreatedAt:    q.CreatedAt.Format("Jan 2, 2006, 3:04 PM"),
		})
	}

	return &QuestionPage{
		Questions: items,
		Pagination: Pagination{
			CurrentPage:    params.Page,
			TotalPages:     totalPages,
			TotalQuestions: total,
			HasMore:        params.Page*params.Limit < total,
		},
	}, nil
}

// ===== TRENDS =====

func (s *analyticsService) GetAnalyticsReport(ctx context.Context, examType string) (report *AnalyticsReport, err error) {
	start := s.now()
	defer func() {
		s.oplog.LogReportOperation(ctx, "analytics", examType, s.now().Sub(start), err)
	}()

	scope, err := s.loadExamScope(ctx, examType)
	if err != nil {
		return nil, err
	}
	names := analytics.NewNameIndex(scope.subjects, nil)
	cutoff := s.now().AddDate(0, 0, -dailyTrendMax)

	dailyRollup := analytics.Fold(scope.questions, func(q *models.Question) (string, bool) {
		if q.CreatedAt.IsZero() || q.CreatedAt.Before(cutoff) {
			return "", false
		}
		return analytics.DateKey(q.CreatedAt), true
	}, analytics.FoldOptions{Names: names})

	dates := append([]string(nil), dailyRollup.Keys()...)
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	if len(dates) > dailyTrendMax {
		dates = dates[:dailyTrendMax]
	}
	dailyTrends := make([]DailyTrend, 0, len(dates))
	for _, date := range dates {
		bucket, _ := dailyRollup.Bucket(date)
		dailyTrends = append(dailyTrends, DailyTrend{
			Date:                date,
			Count:               bucket.Count,
			SubjectCount:        bucket.SubjectNames.Len(),
			DifficultyBreakdown: difficultyCountsOf(bucket.Difficulty),
		})
	}

	subjectRollup := analytics.Fold(scope.questions, func(q *models.Question) (string, bool) {
		return q.SubjectID, q.SubjectID != ""
	}, analytics.FoldOptions{})

	weeklyRollup := analytics.Fold(scope.questions, func(q *models.Question) (string, bool) {
		if q.CreatedAt.IsZero() {
			return "", false
		}
		return analytics.CompositeKey(q.SubjectID, analytics.WeekKey(q.CreatedAt)), true
	}, analytics.FoldOptions{})

	weeksBySubject := make(map[string][]WeeklyPoint, len(scope.subjects))
	for _, key := range weeklyRollup.Keys() {
		parts := analytics.SplitKey(key)
		bucket, _ := weeklyRollup.Bucket(key)
		weeksBySubject[parts[0]] = append(weeksBySubject[parts[0]], WeeklyPoint{
			Week:               parts[1],
			Count:              bucket.Count,
			AvgDifficultyScore: analytics.AverageDifficultyScore(bucket.Difficulty),
		})
	}

	weeklyTrends := make([]SubjectWeeklyTrend, 0, len(scope.subjects))
	for _, subject := range scope.subjects {
		weeks := weeksBySubject[subject.ID]
		// Week labels are zero-padded, so lexicographic order is
		// chronological order.
		sort.Slice(weeks, func(i, j int) bool { return weeks[i].Week < weeks[j].Week })
		if weeks == nil {
			weeks = []WeeklyPoint{}
		}

		trend := SubjectWeeklyTrend{
			SubjectID:   subject.ID,
			SubjectName: subject.Name,
			Weeks:       weeks,
		}
		if bucket, ok := subjectRollup.Bucket(subject.ID); ok {
			trend.TotalQuestions = bucket.Count
		}
		weeklyTrends = append(weeklyTrends, trend)
	}
	sort.SliceStable(weeklyTrends, func(i, j int) bool {
		return weeklyTrends[i].TotalQuestions > weeklyTrends[j].TotalQuestions
	})

	metricRollup := analytics.Fold(scope.questions, func(q *models.Question) (string, bool) {
		if q.SubjectID == "" {
			return "", false
		}
		return analytics.CompositeKey(q.SubjectID, string(q.Difficulty.Normalize())), true
	}, analytics.FoldOptions{})

	difficultyOrder := []models.DifficultyLevel{
		models.DifficultyEasy,
		models.DifficultyMedium,
		models.DifficultyHard,
		models.DifficultyUnknown,
	}
	questionMetrics := make([]QuestionMetric, 0, metricRollup.Len())
	for _, subject := range scope.subjects {
		for _, difficulty := range difficultyOrder {
			key := analytics.CompositeKey(subject.ID, string(difficulty))
			bucket, ok := metricRollup.Bucket(key)
			if !ok {
				continue
			}
			lengths := analytics.LengthStatsOf(bucket)
			questionMetrics = append(questionMetrics, QuestionMetric{
				SubjectID:    subject.ID,
				SubjectName:  subject.Name,
				Difficulty:   string(difficulty),
				Count:        bucket.Count,
				AvgLength:    lengths.Avg,
				MinLength:    lengths.Min,
				MaxLength:    lengths.Max,
				OptionRate:   analytics.PresenceRate(bucket.WithOptions, bucket.Count),
				SolutionRate: analytics.PresenceRate(bucket.WithSolutions, bucket.Count),
			})
		}
	}

	return &AnalyticsReport{
		ExamType:            examType,
		DailyTrends:         dailyTrends,
		SubjectWeeklyTrends: weeklyTrends,
		QuestionMetrics:     questionMetrics,
		GeneratedAt:         s.now(),
	}, nil
}

func (s *analyticsService) GetTimelineReport(ctx context.Context, examType string, days int) (report *TimelineReport, err error) {
	start := s.now()
	defer func() {
		s.oplog.LogReportOperation(ctx, "timeline", examType, s.now().Sub(start), err)
	}()

	if days < 1 {
		days = defaultTimelineDays
	}

	scope, err := s.loadExamScope(ctx, examType)
	if err != nil {
		return nil, err
	}
	names := analytics.NewNameIndex(scope.subjects, nil)

	cutoff := s.now().AddDate(0, 0, -days)
	window := make([]*models.Question, 0, len(scope.questions))
	for _, q := range scope.questions {
		if !q.CreatedAt.IsZero() && !q.CreatedAt.Before(cutoff) {
			window = append(window, q)
		}
	}

	dayRollup := analytics.Fold(window, func(q *models.Question) (string, bool) {
		return analytics.DateKey(q.CreatedAt), true
	}, analytics.FoldOptions{Names: names})

	hourRollup := analytics.Fold(window, func(q *models.Question) (string, bool) {
		subjectName, ok := names.SubjectName(q.SubjectID)
		if !ok {
			return "", false
		}
		return analytics.CompositeKey(analytics.DateKey(q.CreatedAt), analytics.HourKey(q.CreatedAt), subjectName), true
	}, analytics.FoldOptions{PreviewLimit: timelinePreviewLen})

	dates := append([]string(nil), dayRollup.Keys()...)
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	timeline := make([]TimelineDay, 0, len(dates))
	for _, date := range dates {
		dayBucket, _ := dayRollup.Bucket(date)
		day := TimelineDay{
			Date:            date,
			TotalCount:      dayBucket.Count,
			SubjectCount:    dayBucket.SubjectNames.Len(),
			HourlyBreakdown: []HourlySlot{},
		}

		// Hour labels enter the histogram in fold encounter order, so
		// the peak-hour tie-break is first-encountered-wins.
		hours := analytics.NewHistogram()
		for _, key := range hourRollup.Keys() {
			parts := analytics.SplitKey(key)
			if parts[0] != date {
				continue
			}
			bucket, _ := hourRollup.Bucket(key)
			hour, _ := strconv.Atoi(parts[1])
			day.HourlyBreakdown = append(day.HourlyBreakdown, HourlySlot{
				Hour:     hour,
				Subject:  parts[2],
				Count:    bucket.Count,
				Previews: bucket.Previews,
			})
			hours.AddN(parts[1], bucket.Count)
		}
		if label, ok := analytics.PeakBucket(hours); ok {
			peak, _ := strconv.Atoi(label)
			day.PeakHour = &peak
		}
		timeline = append(timeline, day)
	}

	return &TimelineReport{
		ExamType: examType,
		Days:     days,
		Timeline: timeline,
		Summary: TimelineSummary{
			TotalDays:      days,
			TotalQuestions: len(window),
		},
		GeneratedAt: s.now(),
	}, nil
}

// ===== COMPLETE REPORT =====

func (s *analyticsService) GetCompleteReport(ctx context.Context, examType string) (report *CompleteReport, err error) {
	start := s.now()
	defer func() {
		s.oplog.LogReportOperation(ctx, "complete", examType, s.now().Sub(start), err)
	}()

	s.logger.Info("Generating complete analytics report", "exam_type", examType)

	var (
		overview *OverviewReport
		subjects *SubjectReport
		trends   *AnalyticsReport
		timeline *TimelineReport
	)

	// The four sub-views are independent read-only computations; they
	// fan out in parallel and join with no partial results. Each checks
	// cancellation before touching the store so an aborted request does
	// not keep issuing I/O.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		var err error
		overview, err = s.GetOverview(gctx, examType)
		return err
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		var err error
		subjects, err = s.GetSubjectReport(gctx, examType)
		return err
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		var err error
		trends, err = s.GetAnalyticsReport(gctx, examType)
		return err
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		var err error
		timeline, err = s.GetTimelineReport(gctx, examType, completeTimelineDays)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report = &CompleteReport{
		Overview:    overview,
		Subjects:    subjects,
		Analytics:   trends,
		Timeline:    timeline,
		GeneratedAt: s.now(),
	}

	s.publishReportGenerated(ctx, "complete", examType, overview.Totals.Questions, s.now().Sub(start))
	return report, nil
}

// ===== HELPER FUNCTIONS =====

type examScope struct {
	subjects  []*models.Subject
	questions []*models.Question
}

// loadExamScope fetches the subjects of an exam type and the questions
// that belong to them. Questions whose subject id resolves to nothing
// are dropped here, which silently excludes dangling references from
// every exam-scoped view.
func (s *analyticsService) loadExamScope(ctx context.Context, examType string) (*examScope, error) {
	if examType == "" {
		return nil, ErrExamTypeMissing
	}

	subjects, err := s.repo.FetchSubjects(ctx, examType)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subjects: %w", err)
	}
	subjectSet := make(map[string]struct{}, len(subjects))
	for _, subject := range subjects {
		subjectSet[subject.ID] = struct{}{}
	}

	all, err := s.repo.FetchQuestions(ctx, repositories.QuestionFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch questions: %w", err)
	}
	questions := make([]*models.Question, 0, len(all))
	for _, q := range all {
		if _, ok := subjectSet[q.SubjectID]; ok {
			questions = append(questions, q)
		}
	}

	return &examScope{subjects: subjects, questions: questions}, nil
}

func (s *analyticsService) recentActivity(dates *analytics.Histogram) []ActivityPoint {
	cutoff := analytics.DateKey(s.now().AddDate(0, 0, -recentActivityDays))

	keys := make([]string, 0, dates.Len())
	for _, key := range dates.Keys() {
		if key >= cutoff {
			keys = append(keys, key)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	if len(keys) > recentActivityMax {
		keys = keys[:recentActivityMax]
	}

	points := make([]ActivityPoint, 0, len(keys))
	for _, key := range keys {
		points = append(points, ActivityPoint{Date: key, Count: dates.Count(key)})
	}
	return points
}

func (s *analyticsService) publishReportGenerated(ctx context.Context, view, examType string, totalQuestions int, duration time.Duration) {
	if s.publisher == nil {
		return
	}
	event := events.NewReportEvent(events.EventReportGenerated, events.ReportGeneratedEvent{
		View:           view,
		ExamType:       examType,
		TotalQuestions: totalQuestions,
		DurationMS:     duration.Milliseconds(),
		GeneratedAt:    s.now(),
	})
	// Publishing is best-effort; a broker outage must not fail the report.
	if err := s.publisher.PublishReportEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish report event", "event_type", event.Type, "error", err)
	}
}

func difficultyCountsOf(h *analytics.Histogram) DifficultyCounts {
	return DifficultyCounts{
		Easy:    h.Count(string(models.DifficultyEasy)),
		Medium:  h.Count(string(models.DifficultyMedium)),
		Hard:    h.Count(string(models.DifficultyHard)),
		Unknown: h.Count(string(models.DifficultyUnknown)),
	}
}
