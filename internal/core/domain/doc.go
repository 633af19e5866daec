// Package domain contains the core business entities and rules for the
// parecer document analysis pipeline. It has no dependencies on adapters
// or infrastructure.
package domain
