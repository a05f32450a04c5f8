package signals

import (
	"fmt"
	"sync"
)

// Kind classifies a Disposition.
type Kind uint8

const (
	// KindDefault is the platform's built-in action for the signal.
	KindDefault Kind = iota
	// KindIgnore discards the signal.
	KindIgnore
	// KindHandler runs a callback.
	KindHandler
)

func (k Kind) String() string {
	switch k {
	case KindDefault:
		return "default"
	case KindIgnore:
		return "ignore"
	case KindHandler:
		return "handler"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Disposition is what happens when a signal arrives. Default and ignore
// dispositions are shared sentinels; every Register creates a new handler
// disposition, so pointer identity distinguishes handlers.
type Disposition struct {
	kind   Kind
	fn     func()
	buffer int
}

var (
	defaultDisposition = &Disposition{kind: KindDefault}
	ignoreDisposition  = &Disposition{kind: KindIgnore}
)

// Kind reports which kind of disposition d is.
func (d *Disposition) Kind() Kind {
	return d.kind
}

// Invoke runs the handler of a KindHandler disposition. It does nothing for
// the other kinds.
func (d *Disposition) Invoke() {
	if d.kind == KindHandler && d.fn != nil {
		d.fn()
	}
}

// Buffer is the number of pending deliveries a handler disposition may queue
// before further arrivals are dropped.
func (d *Disposition) Buffer() int {
	if d.buffer < 1 {
		return 1
	}
	return d.buffer
}

// Backend is the signal facility a Registry drives. Install makes d the
// active disposition for the named signal and returns the one it replaced.
// Implementations must be safe for concurrent use.
type Backend interface {
	Install(name string, d *Disposition) (*Disposition, error)
}

// NullBackend stands in for hosts without a signal facility. Every Install
// fails with ErrUnsupported.
type NullBackend struct{}

// Install implements Backend.
func (NullBackend) Install(name string, _ *Disposition) (*Disposition, error) {
	return nil, fmt.Errorf("%w: %q", ErrUnsupported, name)
}

var detectBackend = sync.OnceValue(func() Backend {
	if !nativeAvailable {
		return NullBackend{}
	}
	return newNativeBackend()
})

// DetectBackend returns the process-wide backend, chosen on first call: the
// native os/signal backend where the platform has one, NullBackend
// otherwise. All registries using it share one disposition table.
func DetectBackend() Backend {
	return detectBackend()
}
