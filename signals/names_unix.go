//go:build unix

package signals

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

const nativeAvailable = true

// lookupSignal accepts both "INT" and "SIGINT".
func lookupSignal(name string) (os.Signal, error) {
	full := name
	if !strings.HasPrefix(full, "SIG") {
		full = "SIG" + full
	}
	sig := unix.SignalNum(full)
	switch sig {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSignal, name)
	case unix.SIGKILL, unix.SIGSTOP:
		return nil, fmt.Errorf("%w: %q", ErrUncatchable, name)
	}
	return sig, nil
}
