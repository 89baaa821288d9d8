// Package nodelink exports backlog layouts as Graphviz diagrams.
//
// # Overview
//
// [ToDOT] writes a computed layout as DOT source with every node pinned to
// its layout position, so Graphviz draws the same tree the native renderers
// draw. [RenderSVG] runs the embedded Graphviz engine over that source.
//
//	dot := nodelink.ToDOT(result, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Coordinates
//
// Graphviz measures in points with y growing upward. Layout pixels are
// written as points unchanged and y is flipped against the layout height.
// Node names are positional (n0, n1, ...) so duplicate item ids never
// collapse into one Graphviz node; the item id is kept in the tooltip.
package nodelink
