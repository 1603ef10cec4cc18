package payrollfeed

import "context"

// SnapshotProvider serves the employment blocks the ingestion connector
// has stored for a worker. An empty slice means the provider has no data
// for that worker; ErrSourceUnavailable means the source itself is down.
type SnapshotProvider interface {
	GetByWorkerID(ctx context.Context, workerID string) ([]EmploymentBlock, error)
}
