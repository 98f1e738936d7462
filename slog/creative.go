package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/forgeads/forgeads"
	"github.com/forgeads/forgeads/creative"
)

// Ensure LoggingCreativeService implements forgeads.CreativeService.
var _ forgeads.CreativeService = (*LoggingCreativeService)(nil)

// LoggingCreativeService wraps a CreativeService with logging of each
// caller operation, including its error code.
type LoggingCreativeService struct {
	next   forgeads.CreativeService
	logger *slog.Logger
}

// NewLoggingCreativeService creates a new LoggingCreativeService.
func NewLoggingCreativeService(next forgeads.CreativeService, logger *slog.Logger) *LoggingCreativeService {
	return &LoggingCreativeService{next: next, logger: logger}
}

func (s *LoggingCreativeService) AnalyzeProduct(ctx context.Context, src *forgeads.Source) (result *forgeads.AnalysisResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{"duration", time.Since(begin), "code", forgeads.ErrorCode(err), "err", err}
		if src != nil {
			attrs = append(attrs, "source", src.Type(), "url", src.URL, "bytes", len(src.Data))
		}
		if result != nil {
			attrs = append(attrs, "product", result.ProductName)
		}
		s.logger.Info("analyze product", attrs...)
	}(time.Now())
	return s.next.AnalyzeProduct(ctx, src)
}

func (s *LoggingCreativeService) GenerateImage(ctx context.Context, req *forgeads.ImageRequest) (result *forgeads.ImageResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("generate image request",
			"duration", time.Since(begin),
			"code", forgeads.ErrorCode(err),
			"err", err,
		)
	}(time.Now())
	return s.next.GenerateImage(ctx, req)
}

func (s *LoggingCreativeService) GenerateCopy(ctx context.Context, req *forgeads.CopyRequest) (ad *forgeads.AdCopy, err error) {
	defer func(begin time.Time) {
		s.logger.Info("generate copy",
			"duration", time.Since(begin),
			"code", forgeads.ErrorCode(err),
			"err", err,
		)
	}(time.Now())
	return s.next.GenerateCopy(ctx, req)
}

// StageLogger returns a pipeline observer logging every stage at debug
// level.
func StageLogger(logger *slog.Logger) creative.StageFunc {
	return func(s creative.Stage) {
		logger.Debug("stage", "stage", s.String())
	}
}
