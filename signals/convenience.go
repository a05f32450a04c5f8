package signals

import "log/slog"

// Register installs handler for name on the Default registry.
func Register(name string, handler func()) Handle { return Default.Register(name, handler) }

// RegisterDefault installs the default action for name on the Default registry.
func RegisterDefault(name string) Handle { return Default.RegisterDefault(name) }

// RegisterIgnore ignores name on the Default registry.
func RegisterIgnore(name string) Handle { return Default.RegisterIgnore(name) }

// Unregister restores previous for name on the Default registry.
func Unregister(name string, previous Handle) { Default.Unregister(name, previous) }

// SetLogger sets the logger for the Default registry. Safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	Default.mu.Lock()
	Default.logger = l
	Default.mu.Unlock()
}

// SetPolicy sets the policy for the Default registry. Handler dispositions
// already installed keep the buffer they were created with.
func SetPolicy(p Policy) {
	Default.mu.Lock()
	Default.policy = p
	Default.mu.Unlock()
}
