package crm

import (
	"context"
	"log/slog"
	"time"
)

// DryRunClient logs what would be written to the external system without
// performing any writes. FindLocation resolves every name to a synthetic
// record so the rest of the sync path can be exercised end to end.
type DryRunClient struct {
	logger *slog.Logger
}

// NewDryRunClient creates a dry-run client.
func NewDryRunClient(logger *slog.Logger) *DryRunClient {
	return &DryRunClient{logger: logger}
}

func (c *DryRunClient) FindLocation(ctx context.Context, name string) (*Location, error) {
	c.logger.Info("dry-run: would resolve location", slog.String("name", name))
	return &Location{ID: "dry-run", Name: name}, nil
}

func (c *DryRunClient) UpsertDetailRecords(ctx context.Context, locationID string, records []DetailRecord) error {
	for _, rec := range records {
		c.logger.Info("dry-run: would upsert detail record",
			slog.String("location_id", locationID),
			slog.String("fingerprint", rec.Fingerprint),
			slog.String("name", rec.Name),
			slog.String("date", rec.Date),
		)
	}
	return nil
}

func (c *DryRunClient) UpdateSummaryField(ctx context.Context, locationID, summaryJSON string, updatedAt time.Time) error {
	c.logger.Info("dry-run: would update summary field",
		slog.String("location_id", locationID),
		slog.Int("summary_bytes", len(summaryJSON)),
		slog.Time("updated_at", updatedAt),
	)
	return nil
}
