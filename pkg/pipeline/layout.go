package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/backlogtree/pkg/layout"
	"github.com/matzehuels/backlogtree/pkg/observability"
	"github.com/matzehuels/backlogtree/pkg/tree"
)

// GenerateLayout computes the layout of a forest. An empty forest yields the
// empty result, which renderers draw as the "no content" message.
func GenerateLayout(ctx context.Context, f *tree.Forest, opts Options) layout.Result {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, f.Len())
	start := time.Now()

	res := layout.Compute(f, opts.Layout)
	hooks.OnLayoutComplete(ctx, len(res.Nodes), len(res.Edges), time.Since(start), nil)
	return res
}
