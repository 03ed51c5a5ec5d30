package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
)

// ColorEnv forces color output from the toolchains the pipeline
// invokes, matching what a CI terminal expects.
const (
	ColorEnvName  = "TERM_COLOR"
	ColorEnvValue = "always"
)

// Command describes one external command a step runs. The process
// inherits the parent environment plus ColorEnv plus Env; its exit
// code decides the step outcome.
type Command struct {
	Name string
	Argv []string
	Dir  string
	Env  map[string]string
}

// Step converts the command into a pipeline step writing combined
// output to out.
func (c Command) Step(out io.Writer) Step {
	return Step{
		Name: c.Name,
		Run: func(ctx context.Context) error {
			return c.run(ctx, out)
		},
	}
}

func (c Command) run(ctx context.Context, out io.Writer) error {
	if len(c.Argv) == 0 {
		return fmt.Errorf("command %q has no argv", c.Name)
	}

	cmd := exec.CommandContext(ctx, c.Argv[0], c.Argv[1:]...)
	cmd.Dir = c.Dir
	cmd.Stdout = out
	cmd.Stderr = out
	cmd.Env = append(os.Environ(), c.environ()...)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%v: %w", c.Argv, err)
	}
	return nil
}

func (c Command) environ() []string {
	env := []string{ColorEnvName + "=" + ColorEnvValue}

	keys := make([]string, 0, len(c.Env))
	for k := range c.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+c.Env[k])
	}
	return env
}

// ShellCommand wraps a shell line as a Command, for steps written as
// free-form `run:` strings in workflow files.
func ShellCommand(name, line string, env map[string]string) Command {
	return Command{
		Name: name,
		Argv: []string{"/bin/sh", "-c", line},
		Env:  env,
	}
}
