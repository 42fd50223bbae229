package intelligence

import (
	"context"

	"go.uber.org/zap"

	"github.com/omniscope-hq/meeting-intel/errors"
	"github.com/omniscope-hq/meeting-intel/internal/domain/entities"
)

const defaultImportLimit = 10

// ImportOptions controls one batch-import run. An empty Cursor resumes from
// the stored cursor when a cursor store is configured.
type ImportOptions struct {
	Limit  int
	Cursor string
	OrgID  string
}

// ImportResult summarizes one batch-import run. Errors counts meetings that
// failed processing; a failed meeting never aborts the batch.
type ImportResult struct {
	Imported   int    `json:"imported"`
	Skipped    int    `json:"skipped"`
	Errors     int    `json:"errors"`
	NextCursor string `json:"nextCursor,omitempty"`
}

// ImportFathomMeetings pulls a page of historical meetings from the vendor
// API and runs each through the same enrichment path as webhook receipt.
// Already-ingested meetings count as skipped, so re-running an import is safe.
func (s *service) ImportFathomMeetings(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	if s.vendor == nil || !s.vendor.HasAPIKey() {
		return nil, errors.ErrMissingAPIKey("Fathom")
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultImportLimit
	}

	cursor := opts.Cursor
	if cursor == "" && s.cursors != nil {
		stored, err := s.cursors.LoadImportCursor(ctx)
		if err == nil {
			cursor = stored
		} else if s.logger != nil {
			s.logger.Warn("import cursor load failed, starting fresh", zap.Error(err))
		}
	}

	page, err := s.vendor.ListMeetings(ctx, limit, cursor)
	if err != nil {
		return nil, errors.ErrFathomAPIFailed("list meetings", err)
	}

	result := &ImportResult{NextCursor: page.NextCursor}
	for i := range page.Items {
		payload := &page.Items[i]

		outcome, err := s.ProcessRecording(ctx, payload, entities.SourceTypeFathom, opts.OrgID)
		if err != nil {
			result.Errors++
			if s.logger != nil {
				s.logger.Warn("import of meeting failed",
					zap.String("meeting_title", payload.BestTitle()),
					zap.Error(err),
				)
			}
			continue
		}

		if outcome.Success {
			result.Imported++
		} else {
			result.Skipped++
		}
	}

	if s.cursors != nil && page.NextCursor != "" {
		if err := s.cursors.SaveImportCursor(ctx, page.NextCursor); err != nil && s.logger != nil {
			s.logger.Warn("import cursor save failed", zap.Error(err))
		}
	}

	if s.logger != nil {
		s.logger.Info("fathom import finished",
			zap.Int("imported", result.Imported),
			zap.Int("skipped", result.Skipped),
			zap.Int("errors", result.Errors),
		)
	}
	return result, nil
}
