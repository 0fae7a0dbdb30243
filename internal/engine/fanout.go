package engine

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// errgrouper is the common surface of *errgroup.Group and noGroup, grounded
// on globusdigital-email-verifier's Verifier.Verify: goroutines are only
// worth spawning when more than one optional probe is enabled, so a single
// enabled probe runs inline on the caller's goroutine instead.
type errgrouper interface {
	Go(f func() error)
	Wait() error
}

// noGroup runs each Go call synchronously and joins any errors, standing in
// for *errgroup.Group when fanning out buys nothing.
type noGroup struct {
	err error
}

func (ng *noGroup) Go(f func() error) {
	if err := f(); err != nil {
		ng.err = errors.Join(ng.err, err)
	}
}

func (ng *noGroup) Wait() error {
	return ng.err
}

// newFanout picks noGroup or a real errgroup.Group depending on how many
// independent tasks are about to run.
func newFanout(ctx context.Context, taskCount int) (errgrouper, context.Context) {
	if taskCount <= 1 {
		return &noGroup{}, ctx
	}
	g, gctx := errgroup.WithContext(ctx)
	return g, gctx
}
