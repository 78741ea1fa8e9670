// Package simplelogger is a file-backed debug log for code that has no other place to report progress, ex: timeline workers and the watcher.
package simplelogger

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// EnvLogFile names the environment variable holding the log file path.
const EnvLogFile = "CODESTEPPER_LOG_FILE"

const timeLayout = "15:04:05.000"

var (
	mu  sync.Mutex
	now = time.Now
)

// Enabled reports whether Log writes anywhere. Callers building expensive log arguments can check it first.
func Enabled() bool {
	return os.Getenv(EnvLogFile) != ""
}

// Log appends one entry to the file named by CODESTEPPER_LOG_FILE. The entry starts with a wall-clock timestamp; continuation lines of a multi-line message
// are indented so every entry starts at column 0 with its timestamp.
//
// If CODESTEPPER_LOG_FILE is unset/empty or the path can't be opened as a file, Log is a no-op.
func Log(format string, args ...any) {
	path := os.Getenv(EnvLogFile)
	if path == "" {
		return
	}

	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	var b bytes.Buffer
	b.WriteString(now().Format(timeLayout))
	b.WriteByte(' ')
	b.WriteString(strings.ReplaceAll(msg, "\n", "\n    "))
	b.WriteByte('\n')

	// Serialize open/write/close so concurrent timeline workers don't interleave entries.
	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = f.Write(b.Bytes())
}
