package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pagemill/pagemill/internal/registry"
)

const DefaultMainBranch = "main"

// DefaultInstallPackages are the native libraries the build links
// against; installing them precedes any compilation step.
var DefaultInstallPackages = []string{"libmupdf-dev", "libcairo2-dev"}

// Publisher is the registry surface the publish step needs.
type Publisher interface {
	Exists(ctx context.Context, name, version string) (bool, error)
	Publish(ctx context.Context, artifact registry.Artifact, token string) error
}

// ReleasePlan describes the canonical release pipeline: checkout,
// install native dependencies, build, test, publish. Build and test
// always share one feature-flag set.
type ReleasePlan struct {
	MainBranch      string
	AllFeatures     bool
	WorkDir         string
	InstallPackages []string

	// TokenEnv names the environment variable holding the registry
	// token. The publish step fails (it does not skip) when the
	// variable is unset or empty.
	TokenEnv string
	Artifact registry.Artifact
	Registry Publisher

	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

func (p ReleasePlan) mainBranch() string {
	if p.MainBranch == "" {
		return DefaultMainBranch
	}
	return p.MainBranch
}

// FeatureFlags returns the flag set shared by the build and test
// steps.
func (p ReleasePlan) FeatureFlags() []string {
	if p.AllFeatures {
		return []string{"-tags", "all"}
	}
	return nil
}

// Steps builds the five pipeline steps in execution order.
func (p ReleasePlan) Steps(out io.Writer) []Step {
	packages := p.InstallPackages
	if len(packages) == 0 {
		packages = DefaultInstallPackages
	}

	flags := p.FeatureFlags()
	buildArgv := append(append([]string{"go", "build"}, flags...), "./...")
	testArgv := append(append([]string{"go", "test"}, flags...), "./...")

	return []Step{
		Command{
			Name: "checkout",
			Argv: []string{"git", "rev-parse", "--is-inside-work-tree"},
			Dir:  p.WorkDir,
		}.Step(out),
		ShellCommand(
			"install dependencies",
			"apt-get update && apt-get install -y "+strings.Join(packages, " "),
			nil,
		).Step(out),
		Command{Name: "build", Argv: buildArgv, Dir: p.WorkDir}.Step(out),
		Command{Name: "test", Argv: testArgv, Dir: p.WorkDir}.Step(out),
		{
			Name: "publish",
			Condition: func(t Trigger) bool {
				return t.Event == EventPush && t.Branch == p.mainBranch()
			},
			Run: p.publish,
		},
	}
}

func (p ReleasePlan) publish(ctx context.Context) error {
	if p.Registry == nil {
		return fmt.Errorf("no registry configured")
	}

	lookup := p.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	token, _ := lookup(p.TokenEnv)
	if token == "" {
		return fmt.Errorf("%w: %s is not set", registry.ErrMissingToken, p.TokenEnv)
	}

	exists, err := p.Registry.Exists(ctx, p.Artifact.Name, p.Artifact.Version)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s %s", registry.ErrVersionExists, p.Artifact.Name, p.Artifact.Version)
	}

	return p.Registry.Publish(ctx, p.Artifact, token)
}
