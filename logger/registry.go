package logger

import (
	"sync"
)

// Packages that log on their own goroutines (publisher, resilience,
// walkthrough) look their logger up by name, so a command can give each one
// its own level without threading loggers through every constructor.
var (
	namedMu sync.RWMutex
	named   = map[string]*Logger{}
)

// Register makes l the logger returned by Get(name). A nil l removes the
// entry.
func Register(name string, l *Logger) {
	namedMu.Lock()
	defer namedMu.Unlock()
	if l == nil {
		delete(named, name)
		return
	}
	named[name] = l
}

// Get returns the logger registered under name, or the global logger tagged
// with component=name.
func Get(name string) *Logger {
	namedMu.RLock()
	l := named[name]
	namedMu.RUnlock()
	if l != nil {
		return l
	}
	return GetGlobalLogger().WithComponent(name)
}

// Reset forgets every registered logger. Loggers already handed out keep
// working.
func Reset() {
	namedMu.Lock()
	defer namedMu.Unlock()
	named = map[string]*Logger{}
}
