package resumekit

import (
	"errors"
	"runtime"
	"sync"
)

const (
	// MinPoolSize is the smallest pool; smaller requests are raised to it.
	MinPoolSize = 1

	// MaxPoolSize caps automatic sizing; each browser-backed Exporter costs
	// a Chrome instance of roughly 200MB.
	MaxPoolSize = 8

	// cpuDivisor leaves a core per Exporter for Chrome's child processes.
	cpuDivisor = 2
)

// ErrPoolClosed is returned by Acquire after Close.
var ErrPoolClosed = errors.New("exporter pool is closed")

// ExporterPool hands out up to Size Exporters for parallel exports. Each
// Exporter owns its browser, so n Exporters print n documents at once.
//
// The pool is a channel of slots. A slot holds nil until its first Acquire
// builds an Exporter, which is then passed around through Release.
type ExporterPool struct {
	opts  []Option
	slots chan *Exporter
	done  chan struct{}

	mu      sync.Mutex
	closed  bool
	created []*Exporter
}

// NewExporterPool returns a pool of n slots, each building its Exporter
// with opts. n below MinPoolSize is raised to it.
func NewExporterPool(n int, opts ...Option) *ExporterPool {
	n = max(n, MinPoolSize)
	p := &ExporterPool{
		opts:  opts,
		slots: make(chan *Exporter, n),
		done:  make(chan struct{}),
	}
	for range n {
		p.slots <- nil
	}
	return p
}

// Acquire blocks until a slot is free and returns its Exporter. A failed
// build is returned and the slot stays available.
func (p *ExporterPool) Acquire() (*Exporter, error) {
	var exp *Exporter
	select {
	case <-p.done:
		return nil, ErrPoolClosed
	case exp = <-p.slots:
	}

	if exp != nil {
		if p.isClosed() {
			return nil, ErrPoolClosed
		}
		return exp, nil
	}

	exp, err := NewExporter(p.opts...)
	if err != nil {
		p.slots <- nil
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		_ = exp.Close()
		return nil, ErrPoolClosed
	}
	p.created = append(p.created, exp)
	return exp, nil
}

// Release gives exp back to the pool. It is a no-op after Close. The slot
// count never exceeds the channel capacity, so the send cannot block.
func (p *ExporterPool) Release(exp *Exporter) {
	if exp == nil || p.isClosed() {
		return
	}
	p.slots <- exp
}

// Close closes every Exporter the pool built and wakes blocked Acquire
// calls. Close errors are joined.
func (p *ExporterPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.done)
	created := p.created
	p.created = nil
	p.mu.Unlock()

	var errs []error
	for _, exp := range created {
		errs = append(errs, exp.Close())
	}
	return errors.Join(errs...)
}

// Size returns the number of slots, fixed at construction.
func (p *ExporterPool) Size() int {
	return cap(p.slots)
}

func (p *ExporterPool) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// ResolvePoolSize returns workers when positive. Otherwise it derives a
// size from GOMAXPROCS, which automaxprocs fits to container CPU quotas,
// clamped to [MinPoolSize, MaxPoolSize].
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}
	return min(max(runtime.GOMAXPROCS(0)/cpuDivisor, MinPoolSize), MaxPoolSize)
}
