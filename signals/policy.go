package signals

// Policy tunes how handler dispositions are delivered.
type Policy struct {
	// LogPanics logs recovered handler panics with a stack trace. Panics are
	// recovered either way.
	LogPanics bool

	// Buffer is the number of deliveries queued while a handler is still
	// running. Arrivals beyond it are coalesced. Values below 1 mean 1.
	Buffer int
}

func defaultPolicy() Policy {
	return Policy{
		LogPanics: true,
		Buffer:    1,
	}
}
