// Package sink serializes a computed board layout into export formats.
package sink
