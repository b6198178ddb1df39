package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	playground "github.com/goliatone/go-playground/components/playground"
)

// SnapshotInput requests the current playground state.
type SnapshotInput struct{}

type snapshotService interface {
	Snapshot(ctx context.Context) playground.Snapshot
}

// SnapshotQuery executes read-only state resolution.
type SnapshotQuery struct {
	service snapshotService
}

// NewSnapshotQuery builds the query.
func NewSnapshotQuery(service snapshotService) *SnapshotQuery {
	return &SnapshotQuery{service: service}
}

var _ gocommand.Querier[SnapshotInput, playground.Snapshot] = (*SnapshotQuery)(nil)

// Query returns a consistent copy of the playground state.
func (q *SnapshotQuery) Query(ctx context.Context, _ SnapshotInput) (playground.Snapshot, error) {
	return q.service.Snapshot(ctx), nil
}
