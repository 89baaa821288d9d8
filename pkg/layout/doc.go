// Package layout positions a backlog forest as a tidy top-down tree.
//
// # Algorithm
//
// Every node gets a horizontal span measured in abstract units: a leaf spans
// one unit and a parent spans the sum of its children. Spans are aggregated
// bottom-up, then offsets are handed out top-down so that each node is
// centered over the block of units its descendants occupy:
//
//	center = offset + span/2
//
// Roots are placed left to right in input order with [Config.RootGapUnits]
// empty units between them. Unit space converts to pixels with
//
//	x = center × HorizontalUnit   (card horizontal center)
//	y = depth  × LevelHeight      (card top)
//
// Both passes run over a flat arena indexed by integer, so the depth of the
// input never grows the call stack.
//
// # Edges
//
// Each parent-child pair yields an [Edge] from the parent's bottom-center to
// the child's top-center. Vertically aligned pairs get a straight segment;
// otherwise the connector is an elbow through the vertical midpoint with
// rounded corners (see [EdgePath]).
//
// # Empty Input
//
// An empty forest produces a [Result] whose IsEmpty method reports true.
// Renderers show a "no content" message for it; it is never an error.
package layout
