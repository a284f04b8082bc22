// Package logger provides named logrus loggers (app, audit, error) with rotating file
// output and a non-blocking write path.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	loggers   = make(map[string]*logrus.Logger)
	hooks     []*AsyncHook
	loggersMu sync.Mutex

	config  *LogConfig
	rootDir string
)

// Init configures the logging system. A nil cfg uses DefaultConfig.
//
// Parameters:
//   - cfg: output, level and rotation settings; nil for DefaultConfig
//
// Returns:
//   - error: when the root or logs directory cannot be resolved or created
//
// Loggers created before Init keep their old settings, so call it first in main.
func Init(cfg *LogConfig) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	config = cfg

	if err := initRootDir(); err != nil {
		return fmt.Errorf("failed to initialize root directory: %w", err)
	}

	if config.Output == "file" || config.Output == "both" {
		if err := os.MkdirAll(getLogPath(), 0o755); err != nil {
			return fmt.Errorf("failed to create logs directory: %w", err)
		}
	}
	return nil
}

// initRootDir resolves the directory relative log paths hang off: LOG_ROOT_DIR, else the
// nearest ancestor of the working directory that has a config/ directory.
func initRootDir() error {
	if rootDir != "" {
		return nil
	}

	if envRootDir := os.Getenv("LOG_ROOT_DIR"); envRootDir != "" {
		if resolved, err := filepath.EvalSymlinks(envRootDir); err == nil {
			rootDir = resolved
		} else {
			rootDir = envRootDir
		}
		return nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("could not get working directory: %w", err)
	}

	currentDir := wd
	for i := 0; i < 5; i++ {
		if _, err := os.Stat(filepath.Join(currentDir, "config")); err == nil {
			rootDir = currentDir
			return nil
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	rootDir = wd
	return nil
}

func getLogPath() string {
	if filepath.IsAbs(config.LogPath) {
		return config.LogPath
	}
	return filepath.Join(rootDir, config.LogPath)
}

// GetLogger returns the logger named name, creating it on first use. The first call
// initialises the package with DefaultConfig when Init has not run, which keeps tests
// usable without setup.
//
// File output goes to <LogPath>/<name>.log for names other than app, audit and error,
// which use AppFile, AuditFile and ErrorFile.
//
// Example:
//
//	logger.GetLogger("worker").WithField("entity", "business").Info("counter synced")
func GetLogger(name string) *logrus.Logger {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if config == nil {
		if err := Init(nil); err != nil {
			panic(fmt.Sprintf("Failed to initialize logger: %v", err))
		}
	}

	if l, ok := loggers[name]; ok {
		return l
	}

	l := createLogger(name)
	loggers[name] = l
	return l
}

func createLogger(name string) *logrus.Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if config.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
				logrus.FieldKeyFunc: "function",
			},
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
			CallerPrettyfier: func(f *runtime.Frame) (string, string) {
				s := strings.Split(f.Function, ".")
				return s[len(s)-1], fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
			},
		})
	}

	var writers []io.Writer
	if config.Output == "file" || config.Output == "both" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   getLogFilePath(name),
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			Compress:   config.Compress,
		})
	}
	if config.Output == "stdout" || config.Output == "both" {
		writers = append(writers, os.Stdout)
	}

	// filter first so that dropped entries never reach the queue
	l.AddHook(NewFilterHook(config))
	if len(writers) > 0 {
		asyncHook := NewAsyncHookWithWriters(writers, 1000)
		hooks = append(hooks, asyncHook)
		l.AddHook(asyncHook)
		l.SetOutput(io.Discard)
	}

	l.SetReportCaller(true)
	return l
}

func getLogFilePath(name string) string {
	var filename string
	switch name {
	case "app":
		filename = config.AppFile
	case "audit":
		filename = config.AuditFile
	case "error":
		filename = config.ErrorFile
	default:
		filename = fmt.Sprintf("%s.log", name)
	}
	return filepath.Join(getLogPath(), filename)
}

// Flush drains every async hook. Call before the process exits; entries logged after
// Flush are written synchronously.
func Flush() {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	for _, h := range hooks {
		_ = h.Close()
	}
	hooks = nil
}

// GetAppLogger returns the main application logger.
func GetAppLogger() *logrus.Logger {
	return GetLogger("app")
}

// GetAuditLogger returns the audit trail logger.
func GetAuditLogger() *logrus.Logger {
	return GetLogger("audit")
}

// GetErrorLogger returns the logger for server-side failures.
func GetErrorLogger() *logrus.Logger {
	return GetLogger("error")
}
