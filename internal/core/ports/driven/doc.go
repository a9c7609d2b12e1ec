// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - EmbeddingService: Generates vector embeddings for chunks and queries
//   - LLMService: Generates answer text from an assembled prompt
//   - TextExtractor: Extracts plain text from uploaded files
//   - IndexRepository: Durable per-name index persistence
//   - IndexCache: In-memory index cache injected into the pipeline
//   - SessionStore: Per-session chat log persistence
//   - ShareStore: Token-addressed session snapshot persistence
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
