package engine

import (
	"context"
	"errors"
	"testing"
)

func TestNewFanoutUsesNoGroupForSingleTask(t *testing.T) {
	g, _ := newFanout(context.Background(), 1)
	if _, ok := g.(*noGroup); !ok {
		t.Errorf("newFanout(_, 1) = %T, want *noGroup", g)
	}
}

func TestNewFanoutUsesErrgroupForMultipleTasks(t *testing.T) {
	g, _ := newFanout(context.Background(), 3)
	if _, ok := g.(*noGroup); ok {
		t.Error("newFanout(_, 3) returned *noGroup, want a real errgroup")
	}
}

func TestNoGroupJoinsErrors(t *testing.T) {
	ng := &noGroup{}
	errA := errors.New("a")
	errB := errors.New("b")

	ng.Go(func() error { return errA })
	ng.Go(func() error { return errB })

	err := ng.Wait()
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("Wait() = %v, want it to join both errors", err)
	}
}

func TestNoGroupRunsSynchronously(t *testing.T) {
	ng := &noGroup{}
	ran := false
	ng.Go(func() error { ran = true; return nil })
	if !ran {
		t.Error("noGroup.Go did not run its function before returning")
	}
}
