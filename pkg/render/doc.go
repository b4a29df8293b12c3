// Package render turns a packed board into static artifacts.
//
// Subpackage layout positions boxes in cell coordinates; subpackage sink
// serializes a layout as SVG, JSON, or plain text. The live terminal view
// has its own renderer and does not go through this package.
package render
