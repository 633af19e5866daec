// Package normalisers provides implementations of the Normaliser interface
// for the supported document formats. Each normaliser knows how to extract
// analysable prose from a specific source format.
//
// Normalisers are registered with the Registry at startup.
package normalisers
