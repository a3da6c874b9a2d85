/*
Package observability provides Prometheus instrumentation for the Collatz engine
and the stats responder.

Metrics are registered on a caller-supplied registerer so tests and embedders
can keep them isolated from the global default registry.
*/
package observability
