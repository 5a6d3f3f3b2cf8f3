// Package logging provides config-driven categorized file-based logging for loomii.
// Logs are written to <workspace>/logs/ with separate files per category.
// Logging is controlled by the logging section of the config - when debug mode
// is off, no log files are written.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Category represents a log category/subsystem.
type Category string

const (
	CategoryBoot      Category = "boot"      // Startup, config, corpus load
	CategoryServer    Category = "server"    // HTTP request handling
	CategoryIndex     Category = "index"     // Semantic index build/rebuild
	CategoryEmbedding Category = "embedding" // Embedding engine calls
	CategoryRetrieval Category = "retrieval" // Strategy dispatch, filter/sort
	CategoryClassify  Category = "classify"  // Query classification chain
	CategoryChat      Category = "chat"      // Conversation + streaming
	CategoryCards     Category = "cards"     // Card generation tool calls
	CategoryAPI       Category = "api"       // LLM provider calls
)

// Log levels.
const (
	LevelDebug = 0
	LevelInfo  = 1
	LevelWarn  = 2
	LevelError = 3
)

// Settings mirrors the relevant parts of config.LoggingConfig to avoid a
// circular import between logging and config.
type Settings struct {
	DebugMode  bool
	Categories map[string]bool
	Level      string
}

// Logger wraps a standard logger with category and file output.
type Logger struct {
	category Category
	logger   *log.Logger
	file     *os.File
}

var (
	loggers   = make(map[Category]*Logger)
	loggersMu sync.RWMutex
	logsDir   string
	settings  Settings
	configMu  sync.RWMutex
	logLevel  int
)

// Initialize sets up the logging directory and applies settings.
// Should be called once at startup with the workspace path.
func Initialize(workspace string, s Settings) error {
	if workspace == "" {
		return fmt.Errorf("workspace path required")
	}

	configMu.Lock()
	settings = s
	switch s.Level {
	case "debug":
		logLevel = LevelDebug
	case "warn":
		logLevel = LevelWarn
	case "error":
		logLevel = LevelError
	default:
		logLevel = LevelInfo
	}
	configMu.Unlock()

	if !s.DebugMode {
		return nil
	}

	dir := filepath.Join(workspace, "logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	loggersMu.Lock()
	logsDir = dir
	loggersMu.Unlock()
	return nil
}

// IsCategoryEnabled reports whether a category should produce output.
func IsCategoryEnabled(category Category) bool {
	configMu.RLock()
	defer configMu.RUnlock()

	if !settings.DebugMode {
		return false
	}
	if settings.Categories == nil {
		return true // All enabled by default in debug mode
	}
	enabled, exists := settings.Categories[string(category)]
	if !exists {
		return true // Enable by default if not specified
	}
	return enabled
}

// Get returns (or creates) a logger for the given category.
// Returns a no-op logger if debug mode is disabled or the category is disabled.
func Get(category Category) *Logger {
	if !IsCategoryEnabled(category) {
		return &Logger{category: category}
	}

	loggersMu.RLock()
	if logsDir == "" {
		loggersMu.RUnlock()
		return &Logger{category: category}
	}
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l
	}
	loggersMu.RUnlock()

	loggersMu.Lock()
	defer loggersMu.Unlock()

	// Double-check after acquiring write lock
	if l, ok := loggers[category]; ok {
		return l
	}

	// Date-prefixed files for easy rotation
	date := time.Now().Format("2006-01-02")
	filename := fmt.Sprintf("%s_%s.log", date, category)
	logPath := filepath.Join(logsDir, filename)

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] Warning: could not open log file %s: %v\n", logPath, err)
		return &Logger{category: category}
	}

	l := &Logger{
		category: category,
		file:     file,
		logger:   log.New(file, "", log.Ldate|log.Ltime|log.Lmicroseconds),
	}
	loggers[category] = l
	return l
}

// Close closes every open log file. Call on shutdown.
func Close() {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	for cat, l := range loggers {
		if l.file != nil {
			_ = l.file.Close()
		}
		delete(loggers, cat)
	}
}

// Debug logs a debug message (only if level <= debug).
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.logger == nil || logLevel > LevelDebug {
		return
	}
	l.logger.Printf("[DEBUG] %s", fmt.Sprintf(format, args...))
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...interface{}) {
	if l.logger == nil || logLevel > LevelInfo {
		return
	}
	l.logger.Printf("[INFO] %s", fmt.Sprintf(format, args...))
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.logger == nil || logLevel > LevelWarn {
		return
	}
	l.logger.Printf("[WARN] %s", fmt.Sprintf(format, args...))
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Printf("[ERROR] %s", fmt.Sprintf(format, args...))
}

// Convenience helpers, one pair per hot category.

func Boot(format string, args ...interface{})  { Get(CategoryBoot).Info(format, args...) }
func Server(format string, args ...interface{}) { Get(CategoryServer).Info(format, args...) }
func ServerError(format string, args ...interface{}) {
	Get(CategoryServer).Error(format, args...)
}

func Index(format string, args ...interface{}) { Get(CategoryIndex).Info(format, args...) }
func IndexDebug(format string, args ...interface{}) {
	Get(CategoryIndex).Debug(format, args...)
}

func Embedding(format string, args ...interface{}) {
	Get(CategoryEmbedding).Info(format, args...)
}
func EmbeddingDebug(format string, args ...interface{}) {
	Get(CategoryEmbedding).Debug(format, args...)
}

func Retrieval(format string, args ...interface{}) {
	Get(CategoryRetrieval).Info(format, args...)
}
func RetrievalDebug(format string, args ...interface{}) {
	Get(CategoryRetrieval).Debug(format, args...)
}

func Classify(format string, args ...interface{}) {
	Get(CategoryClassify).Info(format, args...)
}
func ClassifyDebug(format string, args ...interface{}) {
	Get(CategoryClassify).Debug(format, args...)
}

func Chat(format string, args ...interface{}) { Get(CategoryChat).Info(format, args...) }
func ChatWarn(format string, args ...interface{}) {
	Get(CategoryChat).Warn(format, args...)
}

func Cards(format string, args ...interface{}) { Get(CategoryCards).Info(format, args...) }
func CardsWarn(format string, args ...interface{}) {
	Get(CategoryCards).Warn(format, args...)
}

func API(format string, args ...interface{}) { Get(CategoryAPI).Info(format, args...) }
func APIDebug(format string, args ...interface{}) {
	Get(CategoryAPI).Debug(format, args...)
}
func APIError(format string, args ...interface{}) {
	Get(CategoryAPI).Error(format, args...)
}

// Timer measures operation duration for performance logging.
type Timer struct {
	category  Category
	operation string
	start     time.Time
}

// StartTimer begins timing an operation.
func StartTimer(category Category, operation string) *Timer {
	return &Timer{category: category, operation: operation, start: time.Now()}
}

// Stop logs the elapsed duration.
func (t *Timer) Stop() {
	Get(t.category).Debug("%s took %v", t.operation, time.Since(t.start))
}
