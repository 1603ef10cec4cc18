package worker

import "context"

type WorkerRepository interface {
	GetByID(ctx context.Context, id string) (Worker, error)
	GetActiveIDs(ctx context.Context) ([]string, error)
}
