package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/SatishBanchhere/abc-classes-sub002/internal/cache"
	"github.com/SatishBanchhere/abc-classes-sub002/internal/services"
	"github.com/SatishBanchhere/abc-classes-sub002/internal/validator"
	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	BaseHandler
	analyticsService services.AnalyticsService
	exportService    services.ExportService
	validator        *validator.Validator
	cache            cache.CacheService
	cacheTTL         time.Duration
}

func NewAnalyticsHandler(
	analyticsService services.AnalyticsService,
	exportService services.ExportService,
	validator *validator.Validator,
	cacheService cache.CacheService,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler:      NewBaseHandler(logger),
		analyticsService: analyticsService,
		exportService:    exportService,
		validator:        validator,
		cache:            cacheService,
		cacheTTL:         cacheTTL,
	}
}

// GetReport serves every report view behind one endpoint; the view query
// parameter selects the read model and defaults to the complete report.
func (h *AnalyticsHandler) GetReport(c *gin.Context) {
	req := parseReportRequest(c)

	if err := h.validator.ValidateReportRequest(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	cacheKey := reportCacheKey(req)
	if h.cacheEnabled() {
		var cached gin.H
		if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil {
			c.JSON(http.StatusOK, Response{Success: true, Data: cached})
			return
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			h.logger.Warn("Report cache lookup failed", "key", cacheKey, "error", err)
		}
	}

	data, err := h.dispatch(c, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if h.cacheEnabled() {
		if err := h.cache.Set(c.Request.Context(), cacheKey, data, h.cacheTTL); err != nil {
			h.logger.Warn("Report cache store failed", "key", cacheKey, "error", err)
		}
	}

	h.RespondWithData(c, data)
}

// ExportReport streams a tabular view as an xlsx or csv download.
func (h *AnalyticsHandler) ExportReport(c *gin.Context) {
	view := validator.ReportView(c.DefaultQuery("view", string(validator.ViewOverview)))
	examType := c.Query("examType")
	format := c.DefaultQuery("format", services.FormatExcel)

	if examType == "" {
		h.RespondWithError(c, http.StatusBadRequest, "examType is required", nil)
		return
	}

	var (
		data     []byte
		filename string
		err      error
	)
	switch view {
	case validator.ViewOverview:
		data, filename, err = h.exportService.ExportOverview(c.Request.Context(), examType, format)
	case validator.ViewSubjects:
		data, filename, err = h.exportService.ExportSubjects(c.Request.Context(), examType, format)
	default:
		h.RespondWithError(c, http.StatusBadRequest, "view must be overview or subjects for export", nil)
		return
	}
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	contentType := "text/csv"
	if format == services.FormatExcel {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

func (h *AnalyticsHandler) dispatch(c *gin.Context, req validator.ReportRequest) (interface{}, error) {
	ctx := c.Request.Context()

	switch req.View {
	case validator.ViewOverview:
		return h.analyticsService.GetOverview(ctx, req.ExamType)
	case validator.ViewSubjects:
		return h.analyticsService.GetSubjectReport(ctx, req.ExamType)
	case validator.ViewTopics:
		return h.analyticsService.GetTopicReport(ctx, req.ExamType, req.SubjectID)
	case validator.ViewSubtopics:
		return h.analyticsService.GetSubtopicReport(ctx, req.ExamType, req.TopicID)
	case validator.ViewQuestions:
		return h.analyticsService.GetQuestionPage(ctx, services.QuestionPageParams{
			SubjectID:    req.SubjectID,
			TopicID:      req.TopicID,
			SubtopicName: req.SubtopicName,
			Page:         req.Page,
			Limit:        req.Limit,
		})
	case validator.ViewAnalytics:
		return h.analyticsService.GetAnalyticsReport(ctx, req.ExamType)
	case validator.ViewTimeline:
		return h.analyticsService.GetTimelineReport(ctx, req.ExamType, req.Days)
	case validator.ViewComplete:
		return h.analyticsService.GetCompleteReport(ctx, req.ExamType)
	default:
		return nil, services.ErrUnknownView
	}
}

func (h *AnalyticsHandler) cacheEnabled() bool {
	return h.cache != nil && h.cacheTTL > 0
}

// parseReportRequest reads the query parameters, tolerating absent or
// non-numeric paging values (they fall back to defaults downstream).
func parseReportRequest(c *gin.Context) validator.ReportRequest {
	return validator.ReportRequest{
		View:         validator.ReportView(c.Query("view")),
		ExamType:     c.Query("examType"),
		SubjectID:    c.Query("subjectId"),
		TopicID:      c.Query("topicId"),
		SubtopicName: c.Query("subtopicName"),
		Days:         intQuery(c, "days"),
		Page:         intQuery(c, "page"),
		Limit:        intQuery(c, "limit"),
	}
}

func intQuery(c *gin.Context, name string) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return value
}

func reportCacheKey(req validator.ReportRequest) string {
	return fmt.Sprintf("analytics:%s:%s:%s:%s:%s:%d:%d:%d",
		req.View, req.ExamType, req.SubjectID, req.TopicID, req.SubtopicName,
		req.Days, req.Page, req.Limit)
}
