package round

import (
	"context"
	"sync"
	"time"

	"github.com/neo/botspotter_backend/internal/comments"
)

// LoadState describes where a pending round load is in its lifecycle.
type LoadState string

const (
	// LoadPending: the minimum display delay is still running.
	LoadPending LoadState = "pending"
	// LoadStillWorking: the delay elapsed but generation has not finished.
	// Clients show a "still working" screen while in this state.
	LoadStillWorking LoadState = "stillWorking"
	// LoadReady: both the delay and the batch are done.
	LoadReady LoadState = "ready"
	// LoadCanceled: the player restarted; any late result is discarded.
	LoadCanceled LoadState = "canceled"
)

// GenerateFunc produces the round's comment batch. It may be the in-process
// procedural generator or a seconds-scale network call.
type GenerateFunc func(ctx context.Context) ([]comments.Comment, error)

// Pending joins the fixed minimum-display delay with an asynchronous batch
// generation: the round may not advance until both are done, whichever
// finishes last. A feed must never be shown empty, so Wait only returns
// once the batch exists or the load is canceled.
type Pending struct {
	mu    sync.Mutex
	state LoadState
	batch []comments.Comment
	err   error
	done  chan struct{}
}

// Load starts the join. Generation runs immediately in its own goroutine;
// the delay runs alongside. Canceling the context abandons the load and any
// late generation result is dropped on the floor.
func Load(ctx context.Context, minDisplay time.Duration, generate GenerateFunc) *Pending {
	p := &Pending{
		state: LoadPending,
		done:  make(chan struct{}),
	}

	result := make(chan struct {
		batch []comments.Comment
		err   error
	}, 1)

	go func() {
		batch, err := generate(ctx)
		result <- struct {
			batch []comments.Comment
			err   error
		}{batch, err}
	}()

	go func() {
		delay := time.NewTimer(minDisplay)
		defer delay.Stop()

		select {
		case <-ctx.Done():
			p.finish(LoadCanceled, nil, ctx.Err())
			return
		case <-delay.C:
		}

		// Delay done; flip to stillWorking unless generation already
		// finished, then block for the batch.
		select {
		case res := <-result:
			p.finish(stateFor(res.err), res.batch, res.err)
		default:
			p.setState(LoadStillWorking)
			select {
			case <-ctx.Done():
				p.finish(LoadCanceled, nil, ctx.Err())
			case res := <-result:
				p.finish(stateFor(res.err), res.batch, res.err)
			}
		}
	}()

	return p
}

func stateFor(err error) LoadState {
	if err != nil {
		return LoadCanceled
	}
	return LoadReady
}

func (p *Pending) setState(s LoadState) {
	p.mu.Lock()
	if p.state == LoadPending || p.state == LoadStillWorking {
		p.state = s
	}
	p.mu.Unlock()
}

func (p *Pending) finish(s LoadState, batch []comments.Comment, err error) {
	p.mu.Lock()
	if p.state == LoadReady || p.state == LoadCanceled {
		p.mu.Unlock()
		return
	}
	p.state = s
	p.batch = batch
	p.err = err
	p.mu.Unlock()
	close(p.done)
}

// State returns the current load state.
func (p *Pending) State() LoadState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Wait blocks until the join resolves or the context is canceled, then
// returns the batch. The batch is non-nil exactly when the error is nil.
func (p *Pending) Wait(ctx context.Context) ([]comments.Comment, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.done:
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.batch, p.err
}
