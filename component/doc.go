// Package component defines lifecycle-managed infrastructure services.
//
// A Component is started before the application's task runs and stopped
// after it, in reverse registration order. The memstore client is the main
// implementation.
package component
