package log

import (
	"io"
	"log"
	"os"
)

var (
	DebugLogger   *log.Logger
	InfoLogger    *log.Logger
	WarningLogger *log.Logger
	ErrorLogger   *log.Logger
	FatalLogger   *log.Logger
)

func init() {
	// Per-packet BLE tracing is too chatty for normal runs
	debugOut := io.Discard
	if os.Getenv("DOTMTXLED_DEBUG") != "" {
		debugOut = os.Stderr
	}

	DebugLogger = log.New(debugOut, "DEBUG: ", log.Lmsgprefix)
	InfoLogger = log.New(os.Stderr, "INFO:  ", log.Lmsgprefix)
	WarningLogger = log.New(os.Stderr, "WARN:  ", log.Lmsgprefix)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Lmsgprefix)
	FatalLogger = log.New(os.Stderr, "FATAL: ", log.Lmsgprefix)
}
