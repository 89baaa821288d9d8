package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/backlogtree/pkg/backlog"
	"github.com/matzehuels/backlogtree/pkg/observability"
	"github.com/matzehuels/backlogtree/pkg/tree"
)

// Parse reads backlog items from a JSON or YAML file.
func Parse(ctx context.Context, path string) ([]backlog.Item, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	items, err := backlog.ReadFile(path)
	hooks.OnLoadComplete(ctx, path, len(items), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Build assembles the item forest. In strict mode any diagnostic (dangling
// parent, duplicate id, cycle) is an error; otherwise they are logged and the
// permissive forest is returned.
func Build(items []backlog.Item, opts Options) (*tree.Forest, error) {
	f := tree.Build(items)
	if opts.Strict {
		if err := f.Validate(); err != nil {
			return nil, err
		}
		return f, nil
	}
	if opts.Logger != nil {
		for _, id := range f.Orphans {
			opts.Logger.Warn("parent not found, shown as root", "id", id)
		}
		for _, id := range f.Duplicates {
			opts.Logger.Warn("duplicate id", "id", id)
		}
		if len(f.Unreachable) > 0 {
			opts.Logger.Warn("items in a parent cycle are not shown", "ids", f.Unreachable)
		}
	}
	return f, nil
}
