/*
Package observability provides Prometheus instrumentation for the chatbot engine.

A nil *Metrics is valid and records nothing, so components can take one
unconditionally.
*/
package observability
