package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// ServiceLogger provides structured logging for report generation.
type ServiceLogger struct {
	logger *slog.Logger
}

func NewServiceLogger(logger *slog.Logger) *ServiceLogger {
	return &ServiceLogger{
		logger: logger.With("service", "content-analytics", "component", "reports"),
	}
}

// LogReportOperation records one report computation with its outcome and
// duration. The log level follows the error class so that bad requests
// never page anyone while store failures do.
func (l *ServiceLogger) LogReportOperation(ctx context.Context, operation, examType string, duration time.Duration, err error) {
	level := slog.LevelInfo
	status := "success"

	if err != nil {
		level = slog.LevelError
		status = "error"

		switch {
		case IsMissingParam(err):
			level = slog.LevelWarn
			status = "missing_param"
		case IsInvalidRequest(err):
			level = slog.LevelWarn
			status = "validation_error"
		case IsStoreUnavailable(err):
			status = "store_unavailable"
		}
	}

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("exam_type", examType),
		slog.String("status", status),
		slog.Duration("duration", duration),
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))

		if validationErrs, ok := err.(ValidationErrors); ok {
			attrs = append(attrs, slog.Int("validation_errors_count", len(validationErrs)))
		}
	}

	if requestID := ctx.Value("request_id"); requestID != nil {
		if id, ok := requestID.(string); ok {
			attrs = append(attrs, slog.String("request_id", id))
		}
	}

	// Caller information helps locate the failing computation without
	// re-running the report.
	if err != nil && status == "error" {
		if pc, file, line, ok := runtime.Caller(2); ok {
			if fn := runtime.FuncForPC(pc); fn != nil {
				attrs = append(attrs,
					slog.String("caller_func", fn.Name()),
					slog.String("caller_file", file),
					slog.Int("caller_line", line),
				)
			}
		}
	}

	message := operation + " report " + status
	l.logger.LogAttrs(ctx, level, message, attrs...)
}
