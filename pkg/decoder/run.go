package decoder

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/lmi/i2cdecode"
	"golang.org/x/sync/errgroup"
)

// NoticeSink is implemented by emitters that want adapter notices.
type NoticeSink interface {
	Notice(i2cdecode.Notice)
}

// Run decodes events in arrival order until events is closed or ctx is done.
func (d *Decoder) Run(ctx context.Context, events <-chan i2cdecode.Event, e i2cdecode.Emitter) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			d.Feed(ev, e)
		}
	}
}

// Pipeline opens a, decodes everything it produces into e and closes it.
// It returns when the adapter runs dry, fails or ctx is cancelled.
func Pipeline(ctx context.Context, a i2cdecode.Adapter, d *Decoder, e i2cdecode.Emitter) error {
	if a == nil {
		return i2cdecode.ErrNilAdapter
	}
	if err := a.Open(ctx); err != nil {
		return fmt.Errorf("failed to open adapter %s: %w", a.Name(), err)
	}
	defer a.Close()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)
	done := make(chan struct{})

	g.Go(func() error {
		defer close(done)
		return d.Run(gctx, a.Recv(), e)
	})

	g.Go(func() error {
		for {
			select {
			case <-done:
				drainNotices(a, e)
				select {
				case err := <-a.Err():
					if err != nil {
						return fmt.Errorf("adapter %s: %w", a.Name(), err)
					}
				default:
				}
				return nil
			case <-gctx.Done():
				drainNotices(a, e)
				return nil
			case n := <-a.Notice():
				notify(e, n)
			case err := <-a.Err():
				if err != nil {
					return fmt.Errorf("adapter %s: %w", a.Name(), err)
				}
				// closed from elsewhere
				cancel()
				return nil
			}
		}
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) && ctx.Err() == nil {
		return nil
	}
	return err
}

func notify(e i2cdecode.Emitter, n i2cdecode.Notice) {
	if s, ok := e.(NoticeSink); ok {
		s.Notice(n)
		return
	}
	log.Println(n.String())
}

func drainNotices(a i2cdecode.Adapter, e i2cdecode.Emitter) {
	for {
		select {
		case n := <-a.Notice():
			notify(e, n)
		default:
			return
		}
	}
}
