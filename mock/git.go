package mock

import (
	"context"

	"github.com/fwojciec/diffpattern"
)

// Compile-time interface verification.
var _ diffpattern.DiffSource = (*DiffSource)(nil)

// DiffSource is a mock implementation of diffpattern.DiffSource.
type DiffSource struct {
	CommitDiffFn func(ctx context.Context, rev string) (string, error)
	RangeDiffFn  func(ctx context.Context, from, to string) (string, error)
}

func (d *DiffSource) CommitDiff(ctx context.Context, rev string) (string, error) {
	return d.CommitDiffFn(ctx, rev)
}

func (d *DiffSource) RangeDiff(ctx context.Context, from, to string) (string, error) {
	return d.RangeDiffFn(ctx, from, to)
}
