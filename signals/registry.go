// Package signals installs and restores process signal dispositions by
// mnemonic name ("INT", "WINCH", "CONT"). A registration returns a Handle
// carrying whatever was installed before it; passing that Handle back to
// Unregister restores it. Callers own the handles and must restore them in
// reverse order if they stack registrations for the same signal.
//
// Environmental failures (no signal facility on the host, unknown or
// uncatchable names, install errors) are never reported to the caller: the
// operation degrades to a no-op and yields the zero Handle. Passing a nil
// handler to Register is a caller bug and panics.
package signals

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
)

// Handle carries the disposition that was active before a registration.
// The zero value means there is nothing to restore.
type Handle struct {
	prev *Disposition
}

// IsZero reports whether h is the absent handle.
func (h Handle) IsZero() bool {
	return h.prev == nil
}

// Registry installs dispositions through a Backend chosen at construction.
// It keeps no table of its own; the backend is the source of truth.
type Registry struct {
	backend Backend

	mu     sync.RWMutex
	policy Policy
	logger *slog.Logger
}

// NewRegistry returns a Registry backed by DetectBackend unless WithBackend
// is given.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		policy: defaultPolicy(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.backend == nil {
		r.backend = DetectBackend()
	}
	return r
}

// Default is the process-wide registry used by the package-level helpers.
var Default = NewRegistry()

// Supported reports whether the registry can reach a native signal facility.
func (r *Registry) Supported() bool {
	_, null := r.backend.(NullBackend)
	return !null
}

// Register installs handler for the named signal and returns the previous
// disposition. The handler runs on a delivery goroutine and receives no
// arguments; keep it short (set a flag, send on a channel).
func (r *Registry) Register(name string, handler func()) Handle {
	if handler == nil {
		panic(ErrNilHandler)
	}
	policy, _ := r.snapshot()
	return r.install(name, &Disposition{
		kind:   KindHandler,
		fn:     r.adapt(name, handler),
		buffer: policy.Buffer,
	})
}

// RegisterDefault restores the platform default action for the named signal.
func (r *Registry) RegisterDefault(name string) Handle {
	return r.install(name, defaultDisposition)
}

// RegisterIgnore makes the process ignore the named signal.
func (r *Registry) RegisterIgnore(name string) Handle {
	return r.install(name, ignoreDisposition)
}

// Unregister reinstalls previous for the named signal. A zero Handle is a
// no-op. The disposition being replaced is not returned.
func (r *Registry) Unregister(name string, previous Handle) {
	if previous.IsZero() {
		return
	}
	r.install(name, previous.prev)
}

func (r *Registry) install(name string, d *Disposition) (h Handle) {
	_, logger := r.snapshot()
	defer func() {
		if rec := recover(); rec != nil {
			logger.Debug("signals: backend panicked", "signal", name, "panic", rec)
			h = Handle{}
		}
	}()

	prev, err := r.backend.Install(name, d)
	if err != nil {
		logger.Debug("signals: install failed", "signal", name, "disposition", d.kind.String(), "error", err)
		return Handle{}
	}
	if prev == nil {
		return Handle{}
	}
	logger.Debug("signals: installed", "signal", name, "disposition", d.kind.String(), "previous", prev.kind.String())
	return Handle{prev: prev}
}

// adapt wraps handler so that a panic never escapes the delivery goroutine.
func (r *Registry) adapt(name string, handler func()) func() {
	return func() {
		defer func() {
			if rec := recover(); rec != nil {
				policy, logger := r.snapshot()
				if policy.LogPanics {
					logger.Error(fmt.Sprintf("signals: panic in handler for %s: %v", name, rec),
						"signal", name, "stack", string(debug.Stack()))
				}
			}
		}()
		handler()
	}
}

func (r *Registry) snapshot() (Policy, *slog.Logger) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.policy, r.logger
}
