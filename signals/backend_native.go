package signals

import (
	"errors"
	"os"
	"os/signal"
	"sync"
)

// nativeBackend drives os/signal. It remembers the disposition it last
// installed per signal so that it can report what a new installation
// replaces; signals it has never touched report default, or ignore when the
// process inherited SIG_IGN.
type nativeBackend struct {
	mu     sync.Mutex
	active map[os.Signal]*installation
}

// installation is one live disposition. Handler installations own a
// subscription channel and a delivery goroutine.
type installation struct {
	d    *Disposition
	ch   chan os.Signal
	done chan struct{}
}

func newNativeBackend() *nativeBackend {
	return &nativeBackend{active: make(map[os.Signal]*installation)}
}

func (b *nativeBackend) Install(name string, d *Disposition) (*Disposition, error) {
	if d == nil {
		return nil, errors.New("signals: nil disposition")
	}
	sig, err := lookupSignal(name)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	old := b.active[sig]
	prev := b.current(sig, old)

	// The new disposition takes effect before the old subscription is
	// dropped so the signal never falls back to its default action in
	// between.
	next := &installation{d: d}
	switch d.kind {
	case KindHandler:
		next.ch = make(chan os.Signal, d.Buffer())
		next.done = make(chan struct{})
		signal.Notify(next.ch, sig)
		go deliver(next.ch, next.done, d)
		old.stop()
	case KindIgnore:
		signal.Ignore(sig)
		old.stop()
	default:
		old.stop()
		signal.Reset(sig)
	}

	b.active[sig] = next
	return prev, nil
}

func (b *nativeBackend) current(sig os.Signal, in *installation) *Disposition {
	if in != nil {
		return in.d
	}
	if signal.Ignored(sig) {
		return ignoreDisposition
	}
	return defaultDisposition
}

func (in *installation) stop() {
	if in == nil || in.ch == nil {
		return
	}
	signal.Stop(in.ch)
	close(in.done)
}

// deliver runs d for each signal on ch until done is closed. A closed done
// always wins over a buffered signal, so a replaced handler never runs after
// Install returns.
func deliver(ch <-chan os.Signal, done <-chan struct{}, d *Disposition) {
	for {
		if stopped(done) {
			return
		}
		select {
		case <-done:
			return
		case <-ch:
			if stopped(done) {
				return
			}
			d.Invoke()
		}
	}
}

func stopped(done <-chan struct{}) bool {
	select {
	case <-done:
		return true
	default:
		return false
	}
}
