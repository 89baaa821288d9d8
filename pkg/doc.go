// Package pkg provides the libraries behind backlogtree, which draws product
// backlogs as pannable, zoomable trees of cards.
//
// # Overview
//
// A backlog is a flat list of epics, features, stories and tasks linked by
// parent references. The pkg directory turns that list into pictures:
//
//  1. [backlog] - Item types and JSON/YAML decoding
//  2. [tree] - Forest construction from parent references
//  3. [layout] - Card positions, subtree spans and elbow connectors
//  4. [viewport] - Zoom and pan state machine with an event bus
//  5. [render] - SVG, PNG and text renderers; [render/nodelink] for Graphviz
//  6. [pipeline] - Orchestration (parse → layout → render) with caching
//
// Supporting packages: [cache] (file, Redis and null backends), [config]
// (TOML settings), [errors] (coded errors), [observability] (hooks and the
// [observability/prom] Prometheus adapter), [watcher] (debounced file
// reloads) and [buildinfo].
//
// # Architecture
//
//	backlog.json / backlog.yaml
//	         ↓
//	    [backlog] package (decode + validate)
//	         ↓
//	    [tree] package (roots, children, orphans)
//	         ↓
//	    [layout] package (spans, positions, connectors)
//	         ↓
//	    [render] package (+ [viewport] transform)
//	         ↓
//	    SVG/PNG/DOT/JSON/text output
//
// # Quick Start
//
//	items, _ := backlog.ReadFile("backlog.json")
//	l := layout.Compute(tree.Build(items), layout.DefaultConfig())
//
//	ctl := viewport.New(viewport.DefaultConfig())
//	ctl.Fit(viewport.Size{W: 1280, H: 720}, viewport.Size{W: l.Width, H: l.Height})
//
//	var buf bytes.Buffer
//	_ = render.SVG(&buf, l, render.WithTransform(ctl.Transform()))
//
// Or let the pipeline do all of it, with caching:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(ctx, "backlog.json", pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	    Fit:     true,
//	    View:    viewport.Size{W: 1280, H: 720},
//	})
package pkg
