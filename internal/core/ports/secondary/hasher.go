package secondary

import "context"

type Hasher interface {
	// Compute applies the CPU-bound transform to a single work item.
	Compute(ctx context.Context, item string) (string, error)
}
