// Package navigation provides the clients that perform table visits.
//
// Func adapts a plain function, HTTP fetches pages from a JSON endpoint and
// hands them to a Sink, and Async detaches any navigator from the caller.
package navigation

import (
	"context"
	"sync"

	"github.com/ncobase/datatable/logging/logger"
	"github.com/ncobase/datatable/paging"
	"github.com/ncobase/datatable/reconcile"
)

// Func adapts a function to reconcile.Navigator.
type Func func(ctx context.Context, v reconcile.Visit) error

// Navigate calls f.
func (f Func) Navigate(ctx context.Context, v reconcile.Visit) error {
	return f(ctx, v)
}

// Sink receives fetched pages. datatable.Table implements it.
type Sink[T any] interface {
	Receive(seq uint64, page paging.Page[T]) bool
}

// Async runs every visit of Next in its own goroutine and returns at once.
// Visits are neither cancelled nor ordered; the receiving table drops
// stale responses.
type Async struct {
	Next reconcile.Navigator
	Log  *logger.Logger

	wg sync.WaitGroup
}

// Navigate starts v in the background.
func (a *Async) Navigate(ctx context.Context, v reconcile.Visit) error {
	ctx = context.WithoutCancel(ctx)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.Next.Navigate(ctx, v); err != nil {
			a.log().Errorf(ctx, "async visit #%d %s: %v", v.Seq, v.Address, err)
		}
	}()
	return nil
}

// Wait blocks until every started visit has finished.
func (a *Async) Wait() {
	a.wg.Wait()
}

func (a *Async) log() *logger.Logger {
	if a.Log != nil {
		return a.Log
	}
	return logger.StdLogger()
}
