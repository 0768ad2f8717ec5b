package laju

import (
	"os"

	"github.com/sigilhq/laju/log"
)

var (
	// logger is the default console logger used for parser-group
	// diagnostics (pool exhaustion, parse failures) until a caller
	// installs its own via SetLogger.
	logger *log.Logger
)

func init() {
	initLogger(log.InfoLevel)
}

// initLogger (re)initializes the package's default console logger at
// the given level.
func initLogger(level log.Level) {
	console := log.DefaultConsoleWriter()
	console.Out = os.Stdout

	logger = log.New(console, log.InfoLevel)

	switch level {
	case log.DebugLevel, log.InfoLevel, log.WarnLevel, log.ErrorLevel, log.FatalLevel:
		logger.SetLevel(level)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	log.SetLogger(logger)
}

// SetLogger overrides the logger used for parser-group diagnostics. A
// host application redirects parser logging into its own pipeline by
// passing an adapter here (see the log package's AdapterLogger, or
// log.NewZapLogger for a production-grade zap+lumberjack-backed one).
func SetLogger(l log.ILogger) {
	log.SetLogger(l)
}

// Logger returns the logger currently installed for parser diagnostics.
func Logger() log.ILogger {
	return log.GetLogger()
}
