// Package templates renders resume text into a styled, self-contained HTML
// document.
//
// A template id selects a Descriptor from a fixed catalogue. Each descriptor
// names a layout and a default palette. Rendering resolves the customization
// into a Style, parses the text into sections, converts every section to HTML
// and executes the layout's skin (see package assets).
//
// Unknown ids and invalid customization values never fail: they resolve to
// documented defaults.
package templates
