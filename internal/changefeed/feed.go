package changefeed

import (
	"context"
	"sync"

	"github.com/Skotchmaster/aura_shop/pkg/logging"
)

// Source pushes events into out until ctx is done.
type Source interface {
	Name() string
	Run(ctx context.Context, out chan<- Event) error
}

// Feed fans several sources into one channel.
type Feed struct {
	sources []Source
	out     chan Event
	wg      sync.WaitGroup
}

func New(buffer int, sources ...Source) *Feed {
	if buffer < 1 {
		buffer = 1
	}
	return &Feed{sources: sources, out: make(chan Event, buffer)}
}

func (f *Feed) Events() <-chan Event { return f.out }

// Start runs every source on its own goroutine. Events closes once all of them return.
func (f *Feed) Start(ctx context.Context) {
	l := logging.FromContext(ctx).With("component", "changefeed")
	for _, s := range f.sources {
		f.wg.Add(1)
		go func(s Source) {
			defer f.wg.Done()
			l.Info("changefeed_source_started", "source", s.Name())
			if err := s.Run(ctx, f.out); err != nil && ctx.Err() == nil {
				l.Error("changefeed_source_stopped", "source", s.Name(), "error", err)
				return
			}
			l.Info("changefeed_source_stopped", "source", s.Name())
		}(s)
	}
	go func() {
		f.wg.Wait()
		close(f.out)
	}()
}

func (f *Feed) Wait() { f.wg.Wait() }

// emit never blocks. A full buffer already guarantees a pending refetch.
func emit(out chan<- Event, ev Event) bool {
	select {
	case out <- ev:
		return true
	default:
		return false
	}
}
