// Package logging provides categorized logging for npcNERD, built on zap.
// Each subsystem logs through a named child logger; before Initialize is
// called every logger is a no-op, so library consumers that never configure
// logging stay silent.
package logging

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/subsystem.
type Category string

const (
	CategoryBoot      Category = "boot"      // Startup, config, character loading
	CategoryCascade   Category = "cascade"   // Classification cascade decisions
	CategoryPrompt    Category = "prompt"    // Prompt construction
	CategoryDialogue  Category = "dialogue"  // Dialogue history
	CategoryInventory Category = "inventory" // Inventory resolver paging
	CategoryEngine    Category = "engine"    // External engine calls
	CategoryWorld     Category = "world"     // Environment registry
	CategoryTUI       Category = "tui"       // Interactive chat interface
)

var (
	mu      sync.RWMutex
	base    = zap.NewNop()
	loggers = make(map[Category]*zap.SugaredLogger)
)

// Initialize installs a real zap logger. level is one of debug/info/warn/
// error; anything else falls back to info. Safe to call more than once; the
// last call wins.
func Initialize(level string, development bool) error {
	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	switch level {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "warn", "warning":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	SetLogger(logger)
	return nil
}

// SetLogger replaces the backing logger. Tests use this with zaptest or a
// nop logger.
func SetLogger(logger *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	base = logger
	loggers = make(map[Category]*zap.SugaredLogger)
}

// Get returns the sugared logger for a category.
func Get(category Category) *zap.SugaredLogger {
	mu.RLock()
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}
	l := base.Named(string(category)).Sugar()
	loggers[category] = l
	return l
}

// Sync flushes buffered log entries. Call at shutdown.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = base.Sync()
}

// Convenience functions, one pair per category.

func Boot(format string, args ...interface{})      { Get(CategoryBoot).Infof(format, args...) }
func BootDebug(format string, args ...interface{}) { Get(CategoryBoot).Debugf(format, args...) }

func Cascade(format string, args ...interface{})      { Get(CategoryCascade).Infof(format, args...) }
func CascadeDebug(format string, args ...interface{}) { Get(CategoryCascade).Debugf(format, args...) }

func Prompt(format string, args ...interface{})      { Get(CategoryPrompt).Infof(format, args...) }
func PromptDebug(format string, args ...interface{}) { Get(CategoryPrompt).Debugf(format, args...) }

func Dialogue(format string, args ...interface{})      { Get(CategoryDialogue).Infof(format, args...) }
func DialogueDebug(format string, args ...interface{}) { Get(CategoryDialogue).Debugf(format, args...) }

func Inventory(format string, args ...interface{}) { Get(CategoryInventory).Infof(format, args...) }
func InventoryDebug(format string, args ...interface{}) {
	Get(CategoryInventory).Debugf(format, args...)
}

func Engine(format string, args ...interface{})      { Get(CategoryEngine).Infof(format, args...) }
func EngineDebug(format string, args ...interface{}) { Get(CategoryEngine).Debugf(format, args...) }
func EngineWarn(format string, args ...interface{})  { Get(CategoryEngine).Warnf(format, args...) }

func World(format string, args ...interface{})      { Get(CategoryWorld).Infof(format, args...) }
func WorldDebug(format string, args ...interface{}) { Get(CategoryWorld).Debugf(format, args...) }
