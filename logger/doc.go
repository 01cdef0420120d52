// Package logger provides structured logging for syncstream using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields. Subscribers log through
// a component logger named after their kind ("subscriber", "printer").
//
// # Configuration
//
//	logger:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("walkthrough")
//	log.Info("inserted document", logger.Fields("id", id))
package logger
