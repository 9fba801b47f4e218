package services

import (
	"context"
	"errors"
	"fmt"
	"solomon-validator/internal/domain"
	"solomon-validator/internal/platform/obs"
	"solomon-validator/internal/ports"

	"golang.org/x/sync/errgroup"
)

const defaultBatchJobs = 4

type BatchRequest struct {
	Instance  *domain.Instance
	Solutions []string
	Jobs      int
	Options   []Option
}

// BatchItem is the outcome for one solution. Err is set when the solution
// could not be read or parsed; Result is nil in that case.
type BatchItem struct {
	Solution string
	Result   *domain.ValidationResult
	Err      error
}

func (it BatchItem) Valid() bool { return it.Err == nil && it.Result != nil && it.Result.Valid() }

// ValidateBatch validates many solutions of one instance concurrently.
//
// Items come back in request order. A solution that fails to load is recorded
// on its item and does not stop the others; only context cancellation aborts
// the batch.
func ValidateBatch(ctx context.Context, req BatchRequest, reader ports.SolutionReader) (_ []BatchItem, err error) {
	defer obs.Time(ctx, "services.ValidateBatch")(&err)

	if req.Instance == nil {
		return nil, errors.New("validate batch: instance must be non-nil")
	}
	if reader == nil {
		return nil, errors.New("validate batch: solution reader must be non-nil")
	}

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = defaultBatchJobs
	}

	checker := NewChecker(req.Options...)
	items := make([]BatchItem, len(req.Solutions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, loc := range req.Solutions {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			items[i].Solution = loc
			sol, err := reader.ReadSolution(gctx, loc)
			if err != nil {
				if cerr := gctx.Err(); cerr != nil {
					return cerr
				}
				items[i].Err = err
				return nil
			}

			res := checker.Validate(req.Instance, sol)
			items[i].Result = &res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("validate batch: %w", err)
	}

	return items, nil
}
