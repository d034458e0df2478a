package datatable

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// LoadStatus is the state of a Loader.
type LoadStatus int

const (
	Loading LoadStatus = iota
	Ready
	Failed
)

func (s LoadStatus) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("LoadStatus(%d)", int(s))
}

// LoadFunc fetches the data of a table.
type LoadFunc func(ctx context.Context) (*Data, error)

// Loader runs a LoadFunc once in the background
// and holds its result. There are no retries,
// a failed load stays failed.
//
// Loader is safe for concurrent use.
type Loader struct {
	load LoadFunc
	once sync.Once
	done chan struct{}

	mtx  sync.Mutex
	data *Data
	err  error
}

// NewLoader returns a Loader for load that has not started yet.
func NewLoader(load LoadFunc) *Loader {
	return &Loader{load: load, done: make(chan struct{})}
}

// Start runs the load in a new goroutine on the first call.
// Later calls do nothing.
func (l *Loader) Start(ctx context.Context) {
	l.once.Do(func() {
		go func() {
			data, err := l.load(ctx)
			if err == nil && data != nil {
				err = data.Validate()
			}
			if err == nil && data == nil {
				err = errors.New("load returned no data")
			}
			l.mtx.Lock()
			if err != nil {
				l.err = err
			} else {
				l.data = data
			}
			l.mtx.Unlock()
			close(l.done)
		}()
	})
}

// Done returns a channel that is closed when the load finished.
func (l *Loader) Done() <-chan struct{} { return l.done }

// Result returns the current status with the
// loaded data if Ready or the error if Failed.
func (l *Loader) Result() (LoadStatus, *Data, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	switch {
	case l.err != nil:
		return Failed, nil, l.err
	case l.data != nil:
		return Ready, l.data, nil
	}
	return Loading, nil, nil
}

// Wait starts the load if necessary and blocks until
// it finished or ctx is done.
func (l *Loader) Wait(ctx context.Context) (*Data, error) {
	l.Start(context.WithoutCancel(ctx))
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-l.done:
	}
	_, data, err := l.Result()
	return data, err
}
