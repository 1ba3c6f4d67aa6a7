package debug

import (
	"fmt"
	"os"
	"sync"
	"time"
)

var (
	once    sync.Once
	mu      sync.Mutex
	logFile *os.File
)

func initLog() {
	path := os.Getenv("LOOM_DEBUG")
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	logFile = f
}

// Enabled reports whether debug logging is active.
func Enabled() bool {
	once.Do(initLog)
	return logFile != nil
}

// Log writes a formatted message to the debug file, if configured.
// Safe to call from any goroutine.
func Log(format string, args ...any) {
	once.Do(initLog)
	if logFile == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(logFile, "%s ", time.Now().Format("15:04:05.000"))
	fmt.Fprintf(logFile, format, args...)
	fmt.Fprintln(logFile)
}
