package executor

import "context"

// Command describes one external process invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current one.
	Dir string
	// Env entries ("KEY=value") are added to the inherited environment.
	Env []string
}

// Executor runs external commands and returns their stdout.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	Run(ctx context.Context, c Command) (string, error)
}
