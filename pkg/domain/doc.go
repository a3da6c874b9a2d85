/*
Package domain contains the core domain model of the Collatz engine.

It defines the result of walking a trajectory, the sentinel errors shared by
the engine and its adapters, and the lifecycle hooks used for observability.
This package is kept pure and free of I/O, so every adapter (CLI, HTTP, MCP,
stores) can depend on it without pulling in infrastructure.

# Key Entities

  - SequenceResult: Summary of one trajectory (seed, retained values, steps, max value, truncation flag).
  - ComputeEvent: Payload delivered to LifecycleHooks after each computation.
  - Unbounded / DefaultGuard: Limit and guard rail conventions understood by the engine.
*/
package domain
