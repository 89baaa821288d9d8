package cli

import (
	"context"
	"os"
)

// Execute runs the backlogtree CLI with args and returns the first command
// error. Logs go to stderr at info level, or debug with --verbose.
//
// Example:
//
//	func main() {
//	    if err := cli.Execute(ctx, os.Args[1:]); err != nil {
//	        os.Exit(1)
//	    }
//	}
func Execute(ctx context.Context, args []string) error {
	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
