package batch

import (
	"fmt"

	"gitlab.com/hashburst.net/internal/domain"
	"gitlab.com/hashburst.net/internal/static/errs"
)

// Validate checks an incoming job description against the domain constraints
// before any pool or dispatch interaction. It performs no I/O and has no
// side effects. A missing count fails with InvalidCount; an out-of-range
// count names the violated bound; an unknown mode fails with InvalidMode.
// An absent mode defaults to parallel.
func Validate(count *int, mode string) (domain.ValidatedJob, error) {
	if count == nil {
		return domain.ValidatedJob{}, errs.InvalidCount
	}
	if *count < 1 {
		return domain.ValidatedJob{}, fmt.Errorf("%w: count must be at least 1", errs.CountOutOfRange)
	}
	if *count > MaxCount {
		return domain.ValidatedJob{}, fmt.Errorf("%w: count exceeds maximum of %d items", errs.CountOutOfRange, MaxCount)
	}

	resolved := domain.ModeParallel
	switch mode {
	case "":
	case string(domain.ModeParallel), string(domain.ModeSequential), string(domain.ModeAuto):
		resolved = domain.Mode(mode)
	default:
		return domain.ValidatedJob{}, fmt.Errorf("%w: %q", errs.InvalidMode, mode)
	}

	return domain.ValidatedJob{Count: *count, Mode: resolved}, nil
}
