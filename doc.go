/*
Package collatz computes and reports trajectories of the Collatz (3x+1) iteration.

Starting from a positive seed, each value is halved when even and mapped to
3n+1 when odd, until the trajectory reaches 1. The engine reports the stopping
time, the maximum value reached and, optionally, a display-limited copy of the
trajectory. Truncation never distorts the statistics: steps and max value
always cover the full walk.

# Concept

The engine is a pure function boundary. Every call builds a fresh
domain.SequenceResult, so concurrent callers (HTTP clients, MCP agents, the
interactive explorer) never share state. A guard rail caps the number of step
applications; reaching it is reported as domain.ErrGuardExceeded instead of a
partial result.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/collatz"
	)

	func main() {
		eng := collatz.New(collatz.WithGuard(1_000_000))

		res, err := eng.Compute(context.Background(), 27, 10)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(res.Summary())
	}

# Architecture

  - pkg/domain: Result type, sentinel errors and lifecycle hooks.
  - internal/runtime: Stepping rule, lazy trajectory and bounded computation.
  - pkg/ports: StateStore contract for exported result documents.
  - pkg/adapters: HTTP stats responder, MCP server and in-memory store.
  - cmd/collatz: Command line interface (run, explore, serve, mcp).
*/
package collatz
