/*
Package ports defines the driven ports (interfaces) of the Collatz application.

These interfaces decouple the engine and its collaborators from concrete
infrastructure, so the same exported document can live on disk, in Redis or
in memory.

# Key Interfaces

  - StateStore: Persists the exported result document and returns it verbatim.
*/
package ports
