//go:build windows

package signals

import (
	"fmt"
	"os"
	"strings"
	"syscall"
)

const nativeAvailable = true

// Only console control events reach os/signal on Windows: Ctrl-C and
// Ctrl-Break arrive as SIGINT, close/logoff/shutdown as SIGTERM.
var signalsByName = map[string]os.Signal{
	"INT":  syscall.SIGINT,
	"TERM": syscall.SIGTERM,
}

func lookupSignal(name string) (os.Signal, error) {
	sig, ok := signalsByName[strings.TrimPrefix(name, "SIG")]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSignal, name)
	}
	return sig, nil
}
