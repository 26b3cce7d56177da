package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/op/go-logging"
)

// Level is the minimum severity a logger emits.
type Level uint8

// Scene trace output is logged at Notice and hints at Info.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var levelInfo = [...]struct {
	name    string
	aliases []string
	backend logging.Level
}{
	Debug:   {"debug", nil, logging.DEBUG},
	Info:    {"info", []string{"hint"}, logging.INFO},
	Notice:  {"notice", []string{"scene"}, logging.NOTICE},
	Warning: {"warning", []string{"warn"}, logging.WARNING},
	Error:   {"error", nil, logging.ERROR},
}

var (
	colorFormat = logging.MustStringFormatter(
		`%{color}%{time:15:04:05.000} %{level:.4s} [%{module}]%{color:reset} %{message}`,
	)
	plainFormat = logging.MustStringFormatter(
		`%{time:15:04:05.000} %{level:.4s} [%{module}] %{message}`,
	)
)

// Backend state. Levels are kept outside the backend so they survive sink
// changes.
var (
	mu           sync.Mutex
	backend      logging.LeveledBackend
	defaultLevel = Notice
	moduleLevels = make(map[string]Level)
)

// Logger is implemented by the named loggers returned by New.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// Get the logger of a module such as "scene loader".
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// Route all log output to sink. Output is colored only when the sink is a
// terminal.
func SetSink(sink io.Writer) {
	format := plainFormat
	if f, ok := sink.(*os.File); ok && isTerminal(f) {
		format = colorFormat
	}

	mu.Lock()
	defer mu.Unlock()
	backend = logging.AddModuleLevel(
		logging.NewBackendFormatter(logging.NewLogBackend(sink, "", 0), format),
	)
	applyLevels()
	logging.SetBackend(backend)
}

// Set the level of every module without a level of its own.
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	defaultLevel = level
	applyLevels()
}

// Set the level of a single module.
func SetModuleLevel(module string, level Level) {
	mu.Lock()
	defer mu.Unlock()
	moduleLevels[module] = level
	applyLevels()
}

// Must be called with mu held.
func applyLevels() {
	if backend == nil {
		return
	}
	backend.SetLevel(defaultLevel.backendLevel(), "")
	for module, level := range moduleLevels {
		backend.SetLevel(level.backendLevel(), module)
	}
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// Parse a level name or one of its aliases.
func ParseLevel(name string) (Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for level, info := range levelInfo {
		if name == info.name {
			return Level(level), nil
		}
		for _, alias := range info.aliases {
			if name == alias {
				return Level(level), nil
			}
		}
	}
	return Notice, fmt.Errorf("log: unknown level %q", name)
}

func (level Level) backendLevel() logging.Level {
	if int(level) >= len(levelInfo) {
		return logging.NOTICE
	}
	return levelInfo[level].backend
}

func (level Level) String() string {
	if int(level) >= len(levelInfo) {
		return fmt.Sprintf("Level(%d)", level)
	}
	return levelInfo[level].name
}

func init() {
	SetSink(os.Stdout)
}
