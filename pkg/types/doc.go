// Package types defines the capability contracts and common data structures
// for the trading provider kit. It includes the financial-data, LLM, and
// embedding provider interfaces, the opaque settings map passed to provider
// constructors, and the standardized error types surfaced by the registries.
package types
