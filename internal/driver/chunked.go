package driver

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"childsim/internal/prompt"
)

// generateChunked splits the day into windows and generates them with
// bounded concurrency. A window's permanent failure does not cancel its
// siblings: accepted chunks are kept so the caller can persist a
// partial day and retry only the failed windows later.
func (d *Driver) generateChunked(ctx context.Context, req Request) (*Result, error) {
	windows := prompt.Split(req.ChunkHours, req.MinuteStep)

	limit := req.Concurrency
	if limit <= 0 {
		limit = 1
	}

	units := make([]Unit, len(windows))
	chunks := make([]*chunk, len(windows))
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(limit)
	for i, w := range windows {
		i, w := i, w
		g.Go(func() error {
			ck, u := d.generateWindow(ctx, req, w)
			mu.Lock()
			units[i] = u
			chunks[i] = ck
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	var accepted []*chunk
	var firstErr error
	for i := range units {
		if units[i].State == StateAccepted {
			accepted = append(accepted, chunks[i])
		} else if firstErr == nil {
			firstErr = units[i].Err
		}
	}

	res := &Result{Units: units}
	if len(accepted) > 0 {
		if err := checkCoverage(accepted); err != nil {
			return res, err
		}
		res.Day = d.buildDay(req, accepted)
	}
	res.Complete = firstErr == nil && fullCoverage(accepted)
	if firstErr != nil {
		return res, firstErr
	}
	if !res.Complete {
		return res, ErrIncompleteCoverage
	}
	return res, nil
}
