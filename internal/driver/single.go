package driver

import (
	"context"

	"childsim/internal/prompt"
)

// generateSingle requests the whole day in one window.
func (d *Driver) generateSingle(ctx context.Context, req Request) (*Result, error) {
	w := prompt.FullDay(req.MinuteStep)
	ck, unit := d.generateWindow(ctx, req, w)
	res := &Result{Units: []Unit{unit}}
	if unit.State != StateAccepted {
		return res, unit.Err
	}
	res.Day = d.buildDay(req, []*chunk{ck})
	res.Complete = true
	return res, nil
}
