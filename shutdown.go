package gaz

import (
	"os"
	"sync"
)

// exitFunc terminates the process when graceful shutdown is abandoned.
// Replaceable for tests, guarded by exitFuncMu.
//
//nolint:gochecknoglobals // process-exit seam for tests
var (
	exitFuncMu sync.Mutex
	exitFunc   = os.Exit
)

// forceExit invokes the configured exit function.
func forceExit(code int) {
	exitFuncMu.Lock()
	fn := exitFunc
	exitFuncMu.Unlock()
	fn(code)
}
