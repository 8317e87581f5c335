package log

import (
	"io"
	"os"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/op/go-logging"
)

// Level is a verbosity threshold; messages below it are dropped
type Level int

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var backendLevels = map[Level]logging.Level{
	Debug:   logging.DEBUG,
	Info:    logging.INFO,
	Notice:  logging.NOTICE,
	Warning: logging.WARNING,
	Error:   logging.ERROR,
}

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var (
	backend      logging.LeveledBackend
	currentLevel = Notice
)

// Logger is the leveled logger handed out by New
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New returns the logger for a module; the name shows up in every line
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// SetSink redirects all loggers to w, keeping the current level
func SetSink(w io.Writer) {
	formatted := logging.NewBackendFormatter(logging.NewLogBackend(w, "", 0), format)
	backend = logging.AddModuleLevel(formatted)
	backend.SetLevel(backendLevels[currentLevel], "")
	logging.SetBackend(backend)
}

// SetLevel changes the verbosity of every module
func SetLevel(level Level) {
	if _, ok := backendLevels[level]; !ok {
		return
	}
	currentLevel = level
	backend.SetLevel(backendLevels[level], "")
}

type printfLogger struct {
	logger Logger
}

func (p printfLogger) Printf(format string, args ...interface{}) {
	p.logger.Infof(format, args...)
}

// Printf adapts logger to core.Logger. Messages go out at Info.
func Printf(logger Logger) core.Logger {
	return printfLogger{logger: logger}
}

func init() {
	SetSink(os.Stderr)
}
