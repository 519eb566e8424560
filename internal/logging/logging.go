package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/writer"
)

const warningsFile = "warnings.txt"

type Options struct {
	Dir   string // debug and warning files; empty disables them
	Level string
	Now   func() time.Time
}

// Configure sets up the global logger: the console at the configured level,
// a dated debug file with every entry, and a per-run warnings file. The
// returned closer flushes both files.
func Configure(opts Options) (*WarningCounter, io.Closer, error) {
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	logger := logrus.StandardLogger()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.ReplaceHooks(make(logrus.LevelHooks))

	counter := &WarningCounter{}
	logger.AddHook(counter)

	files := closers{}
	if opts.Dir == "" {
		logger.SetLevel(level)
		return counter, files, nil
	}

	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	debug, err := os.OpenFile(filepath.Join(opts.Dir, now().Format("2006-01-02")+".txt"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	files = append(files, debug)

	warnings, err := os.Create(filepath.Join(opts.Dir, warningsFile))
	if err != nil {
		files.Close()
		return nil, nil, err
	}
	files = append(files, warnings)

	// Console output is filtered by its own hook so the logger itself can run
	// at debug level for the debug file.
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.DebugLevel)
	logger.AddHook(&writer.Hook{Writer: os.Stderr, LogLevels: levelsFrom(level)})
	logger.AddHook(&writer.Hook{Writer: debug, LogLevels: logrus.AllLevels})
	logger.AddHook(&writer.Hook{Writer: warnings, LogLevels: levelsFrom(logrus.WarnLevel)})

	return counter, files, nil
}

// levelsFrom returns level and every more severe level.
func levelsFrom(level logrus.Level) []logrus.Level {
	var out []logrus.Level
	for _, l := range logrus.AllLevels {
		if l <= level {
			out = append(out, l)
		}
	}
	return out
}

// WarningCounter counts warnings logged during a run.
type WarningCounter struct {
	count atomic.Int64
}

func (w *WarningCounter) Levels() []logrus.Level {
	return []logrus.Level{logrus.WarnLevel}
}

func (w *WarningCounter) Fire(*logrus.Entry) error {
	w.count.Add(1)
	return nil
}

func (w *WarningCounter) Count() int64 {
	return w.count.Load()
}

type closers []io.Closer

func (c closers) Close() error {
	var first error
	for _, closer := range c {
		if err := closer.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
