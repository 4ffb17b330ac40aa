// Package pipeline implements the markup stages shared by rendering and export.
//
// This package handles:
//   - Markdown preprocessing (line endings, pasted glyph bullets)
//   - Markdown to HTML conversion via Goldmark, with inline-styled code
//     highlighting so rendered documents need no external stylesheet
//   - CSS injection and list-item decoration on rendered HTML
//   - Flattening HTML back to marker-prefixed plain text and to the small
//     tag subset understood by basic PDF writers (goquery)
//
// Page output is handled separately by the export package. This separation
// keeps the pipeline focused on document structure and content.
package pipeline
