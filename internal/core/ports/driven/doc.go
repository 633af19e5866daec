// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Normaliser: Extracts analysable text from raw document bytes
//   - DocumentStore: Analysed document persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - LLMService: Chat-completion provider. Without it, analysis is disabled
//     and the CLI reports a configuration error instead.
package driven
