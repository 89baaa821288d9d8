package pipeline

import (
	"context"
	"sync"

	"github.com/matzehuels/backlogtree/pkg/backlog"
	"github.com/matzehuels/backlogtree/pkg/layout"
)

// Memo remembers the most recent layout and recomputes only when the items
// or the layout options change. Item identity is by content, so a reloaded
// file with unchanged items reuses the previous layout.
type Memo struct {
	mu     sync.Mutex
	key    string
	result layout.Result
	runner *Runner
}

// NewMemo returns a memo that computes through runner. A nil runner computes
// without a persistent cache.
func NewMemo(runner *Runner) *Memo {
	if runner == nil {
		runner = NewRunner(nil, nil, nil)
	}
	return &Memo{runner: runner}
}

// Layout returns the layout for items, reporting whether it was reused.
func (m *Memo) Layout(ctx context.Context, items []backlog.Item, opts Options) (layout.Result, bool, error) {
	opts.SetLayoutDefaults()
	key := m.runner.Keyer.LayoutKey(inputHash(items), opts.LayoutKeyOpts())

	m.mu.Lock()
	defer m.mu.Unlock()
	if key == m.key {
		return m.result, true, nil
	}
	l, _, err := m.runner.GenerateLayoutWithCacheInfo(ctx, items, opts)
	if err != nil {
		return layout.Result{}, false, err
	}
	m.key, m.result = key, l
	return l, false, nil
}

// Reset forgets the remembered layout.
func (m *Memo) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.key, m.result = "", layout.Result{}
}
