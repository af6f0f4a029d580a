package client

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Join runs tasks concurrently and waits for all of them. Tasks report
// through their own Response values, so one failing never stops the others.
func Join(ctx context.Context, tasks ...func(context.Context)) {
	var g errgroup.Group
	for _, task := range tasks {
		g.Go(func() error {
			task(ctx)
			return nil
		})
	}
	_ = g.Wait()
}
