package signals

import "errors"

var (
	// ErrNilHandler is the panic value of Register when handler is nil.
	ErrNilHandler = errors.New("signals: nil handler")

	// ErrUnsupported is reported by backends on platforms without a signal
	// facility.
	ErrUnsupported = errors.New("signals: no signal facility on this platform")

	// ErrUnknownSignal is reported for names the platform does not define.
	ErrUnknownSignal = errors.New("signals: unknown signal")

	// ErrUncatchable is reported for KILL and STOP.
	ErrUncatchable = errors.New("signals: signal cannot be caught or ignored")
)
