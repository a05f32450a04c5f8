//go:build !unix && !windows

package signals

import (
	"fmt"
	"os"
)

// No catchable signal vocabulary on plan9, js/wasm or wasip1.
const nativeAvailable = false

func lookupSignal(name string) (os.Signal, error) {
	return nil, fmt.Errorf("%w: %q", ErrUnsupported, name)
}
