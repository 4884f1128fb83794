// Package registry maps names to module types and the factories that build
// them from blueprint arguments.
package registry
