package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/SatishBanchhere/abc-classes-sub002/internal/events"
	"github.com/xuri/excelize/v2"
)

// ExportService renders report views into downloadable files for the
// dashboard. Only the tabular views (overview, subjects) are exportable.
type ExportService interface {
	ExportOverview(ctx context.Context, examType, format string) ([]byte, string, error)
	ExportSubjects(ctx context.Context, examType, format string) ([]byte, string, error)
}

type exportService struct {
	analytics AnalyticsService
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewExportService(analytics AnalyticsService, publisher events.EventPublisher, logger *slog.Logger) ExportService {
	return &exportService{
		analytics: analytics,
		publisher: publisher,
		logger:    logger,
	}
}

const (
	FormatExcel = "xlsx"
	FormatCSV   = "csv"
)

func (s *exportService) ExportOverview(ctx context.Context, examType, format string) ([]byte, string, error) {
	report, err := s.analytics.GetOverview(ctx, examType)
	if err != nil {
		return nil, "", err
	}

	var data []byte
	switch format {
	case FormatExcel:
		data, err = overviewToExcel(report)
	case FormatCSV:
		data, err = overviewToCSV(report)
	default:
		return nil, "", NewValidationError("format", "must be xlsx or csv", format)
	}
	if err != nil {
		return nil, "", err
	}

	s.publishExported(ctx, "overview", examType, format, len(data))
	return data, exportFilename("overview", examType, format), nil
}

func (s *exportService) ExportSubjects(ctx context.Context, examType, format string) ([]byte, string, error) {
	report, err := s.analytics.GetSubjectReport(ctx, examType)
	if err != nil {
		return nil, "", err
	}

	var data []byte
	switch format {
	case FormatExcel:
		data, err = subjectsToExcel(report)
	case FormatCSV:
		data, err = subjectsToCSV(report)
	default:
		return nil, "", NewValidationError("format", "must be xlsx or csv", format)
	}
	if err != nil {
		return nil, "", err
	}

	s.publishExported(ctx, "subjects", examType, format, len(data))
	return data, exportFilename("subjects", examType, format), nil
}

// ===== EXCEL RENDERING =====

func overviewToExcel(report *OverviewReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Overview"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	rows := [][]interface{}{
		{"Exam Type", report.ExamType},
		{"Generated At", report.GeneratedAt.Format(time.RFC3339)},
		{},
		{"Subjects", report.Totals.Subjects},
		{"Topics", report.Totals.Topics},
		{"Subtopics", report.Totals.Subtopics},
		{"Questions", report.Totals.Questions},
		{},
		{"Difficulty", "Count", "Percentage"},
	}
	for _, entry := range report.DifficultyDistribution {
		rows = append(rows, []interface{}{entry.Label, entry.Count, entry.Percentage})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Question Type", "Count", "Percentage"})
	for _, entry := range report.QuestionTypeDistribution {
		rows = append(rows, []interface{}{entry.Label, entry.Count, entry.Percentage})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Date", "New Questions"})
	for _, point := range report.RecentActivity {
		rows = append(rows, []interface{}{point.Date, point.Count})
	}

	if err := writeSheetRows(f, sheetName, rows); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func subjectsToExcel(report *SubjectReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Subjects"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	rows := [][]interface{}{subjectHeaderRow()}
	for _, row := range report.Subjects {
		rows = append(rows, subjectDataRow(row))
	}

	if err := writeSheetRows(f, sheetName, rows); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheetRows(f *excelize.File, sheetName string, rows [][]interface{}) error {
	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return fmt.Errorf("failed to compute cell name: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}
	return nil
}

// ===== CSV RENDERING =====

func overviewToCSV(report *OverviewReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{
		{"exam_type", report.ExamType},
		{"subjects", strconv.Itoa(report.Totals.Subjects)},
		{"topics", strconv.Itoa(report.Totals.Topics)},
		{"subtopics", strconv.Itoa(report.Totals.Subtopics)},
		{"questions", strconv.Itoa(report.Totals.Questions)},
	}
	for _, entry := range report.DifficultyDistribution {
		records = append(records, []string{
			"difficulty:" + entry.Label,
			strconv.Itoa(entry.Count),
			strconv.FormatFloat(entry.Percentage, 'f', 1, 64),
		})
	}
	for _, entry := range report.QuestionTypeDistribution {
		records = append(records, []string{
			"type:" + entry.Label,
			strconv.Itoa(entry.Count),
			strconv.FormatFloat(entry.Percentage, 'f', 1, 64),
		})
	}

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func subjectsToCSV(report *SubjectReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{{"subject_id", "subject_name", "topic_count", "total_questions", "easy", "medium", "hard", "last_updated"}}
	for _, row := range report.Subjects {
		lastUpdated := ""
		if row.LastUpdated != nil {
			lastUpdated = row.LastUpdated.Format(time.RFC3339)
		}
		records = append(records, []string{
			row.SubjectID,
			row.SubjectName,
			strconv.Itoa(row.TopicCount),
			strconv.Itoa(row.TotalQuestions),
			strconv.Itoa(row.DifficultyBreakdown.Easy),
			strconv.Itoa(row.DifficultyBreakdown.Medium),
			strconv.Itoa(row.DifficultyBreakdown.Hard),
			lastUpdated,
		})
	}

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ===== HELPERS =====

func subjectHeaderRow() []interface{} {
	return []interface{}{"Subject ID", "Subject Name", "Topics", "Questions", "Easy", "Medium", "Hard", "Last Updated"}
}

func subjectDataRow(row SubjectRow) []interface{} {
	lastUpdated := ""
	if row.LastUpdated != nil {
		lastUpdated = row.LastUpdated.Format(time.RFC3339)
	}
	return []interface{}{
		row.SubjectID,
		row.SubjectName,
		row.TopicCount,
		row.TotalQuestions,
		row.DifficultyBreakdown.Easy,
		row.DifficultyBreakdown.Medium,
		row.DifficultyBreakdown.Hard,
		lastUpdated,
	}
}

func exportFilename(view, examType, format string) string {
	return fmt.Sprintf("%s-%s-report.%s", examType, view, format)
}

func (s *exportService) publishExported(ctx context.Context, view, examType, format string, size int) {
	if s.publisher == nil {
		return
	}
	event := events.NewReportEvent(events.EventReportExported, events.ReportExportedEvent{
		View:        view,
		ExamType:    examType,
		Format:      format,
		SizeBytes:   size,
		GeneratedAt: time.Now(),
	})
	if err := s.publisher.PublishReportEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish export event", "event_type", event.Type, "error", err)
	}
}
