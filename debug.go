package viewport

import (
	"fmt"
	"os"
)

// debugLogf prints a debug line to stderr. Callers check the debug flag.
func debugLogf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[viewport] "+format+"\n", args...)
}

// debugAssert panics with a descriptive message when cond is false. Only
// called in debug mode; release builds skip contract checks entirely.
func debugAssert(cond bool, format string, args ...any) {
	if !cond {
		panic("viewport debug: " + fmt.Sprintf(format, args...))
	}
}

// debugMaxListeners is the registry size above which debug mode warns about
// listeners that were probably never removed.
const debugMaxListeners = 64

func debugCheckListenerCount(kind string, n int) {
	if n > debugMaxListeners {
		debugLogf("warning: %d %s registered (threshold %d)", n, kind, debugMaxListeners)
	}
}

// debugMaxLocks is the lock count above which debug mode warns about keys
// that were probably leaked.
const debugMaxLocks = 16

func debugCheckLockCount(n int) {
	if n > debugMaxLocks {
		debugLogf("warning: %d interaction locks held (threshold %d); a key may have leaked", n, debugMaxLocks)
	}
}
