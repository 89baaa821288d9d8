// Package render draws a computed backlog layout.
//
// Renderers consume a [layout.Result] and an optional viewport transform; they
// never compute positions themselves. Each card shows the item type badge,
// title, a short description, the effort code and a priority footer.
//
// # Formats
//
//   - [SVG]: vector output built with svgo; the viewport transform is applied
//     to a content group and eased when the view is not being dragged
//   - [PNG]: raster output drawn with gg at the requested scale
//   - [Text]: a character grid for terminals, used by the interactive viewer
//   - DOT and Graphviz SVG: see the [nodelink] subpackage
//
// An empty layout renders a "no content" message in every format.
//
// [nodelink]: github.com/matzehuels/backlogtree/pkg/render/nodelink
package render
