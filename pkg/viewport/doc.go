// Package viewport holds the zoom and pan state of an interactive diagram view.
//
// A [Controller] is a small two-state machine. In the Idle phase it accepts
// zoom commands (buttons, keyboard shortcuts, the wheel and fit-to-view) and
// waits for a pointer press on the pan button. A press enters the Panning
// phase, during which pointer moves translate the view; release or leaving
// the surface returns to Idle. Zoom and pan are clamped on every mutation, so
// no sequence of events can push the view outside its configured limits.
//
// The controller does not draw anything. Renderers read [Controller.Transform]
// and compose it with the computed layout:
//
//	translate(pan.x, pan.y) scale(zoom)
//
// with the transform origin at the top-left of the surface. Transitions are
// eased only while not panning, so drags track the pointer without lag.
//
// # Input Wiring
//
// Hosts deliver input through a [Source]. [Controller.Attach] subscribes the
// controller and returns a detach function that removes the subscription
// again, so a view that goes away leaves no listeners behind. [Bus] is the
// in-process Source used by the terminal viewer and by tests.
//
// A Controller is not safe for concurrent use; deliver events from a single
// event loop.
package viewport
