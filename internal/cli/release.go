package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagemill/pagemill/internal/config"
	"github.com/pagemill/pagemill/internal/pipeline"
	"github.com/pagemill/pagemill/internal/registry"
	"github.com/pagemill/pagemill/pkg/version"
)

func NewReleaseCommand() *cobra.Command {
	var (
		configPath   string
		workflowPath string
		event        string
		branch       string
		allFeatures  bool
		artifactPath string
	)

	cmd := &cobra.Command{
		Use:   "release",
		Short: "Run the release pipeline",
		Long: `Run the linear release pipeline: checkout, install native
dependencies, build, test, publish. Publish only happens for a push
to the main branch and needs the registry token in the environment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelease(cmd, releaseOptions{
				configPath:   configPath,
				workflowPath: workflowPath,
				event:        event,
				branch:       branch,
				allFeatures:  allFeatures,
				artifactPath: artifactPath,
			})
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "config.yaml", "path to config file")
	cmd.Flags().StringVar(&workflowPath, "workflow", "", "run a workflow file instead of the built-in plan")
	cmd.Flags().StringVar(&event, "event", string(pipeline.EventPush), "trigger event: push or pull_request")
	cmd.Flags().StringVar(&branch, "branch", "", "branch the trigger targets (default: pipeline.main_branch)")
	cmd.Flags().BoolVar(&allFeatures, "all-features", false, "build and test with all optional features")
	cmd.Flags().StringVar(&artifactPath, "artifact", "", "artifact to publish")

	return cmd
}

type releaseOptions struct {
	configPath   string
	workflowPath string
	event        string
	branch       string
	allFeatures  bool
	artifactPath string
}

func runRelease(cmd *cobra.Command, opts releaseOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	trigger := pipeline.Trigger{
		Event:  pipeline.Event(opts.event),
		Branch: opts.branch,
	}
	if trigger.Branch == "" {
		trigger.Branch = cfg.Pipeline.MainBranch
	}
	switch trigger.Event {
	case pipeline.EventPush, pipeline.EventPullRequest:
	default:
		return fmt.Errorf("unknown event %q", opts.event)
	}

	log := newLogger()
	out := cmd.OutOrStdout()

	var steps []pipeline.Step
	if opts.workflowPath != "" {
		wf, err := pipeline.LoadWorkflow(opts.workflowPath)
		if err != nil {
			return err
		}
		if !wf.Triggers(trigger) {
			fmt.Fprintf(out, "workflow %q does not trigger for %s on %s\n",
				wf.Name, trigger.Event, trigger.Branch)
			return nil
		}
		steps = wf.CompileSteps(out)
	} else {
		plan := pipeline.ReleasePlan{
			MainBranch:      cfg.Pipeline.MainBranch,
			AllFeatures:     opts.allFeatures || cfg.Pipeline.AllFeatures,
			InstallPackages: cfg.Pipeline.InstallPackages,
			TokenEnv:        cfg.Registry.TokenEnv,
			Artifact: registry.Artifact{
				Name:    "pagemill",
				Version: version.Version,
				Path:    opts.artifactPath,
			},
		}
		if cfg.Registry.URL != "" {
			plan.Registry = registry.NewClient(cfg.Registry.URL, log)
		}
		steps = plan.Steps(out)
	}

	result := pipeline.NewRunner(log).Run(cmd.Context(), trigger, steps)

	for _, step := range result.Steps {
		fmt.Fprintf(out, "%-20s %s\n", step.Name, step.Status)
	}
	if !result.Succeeded() {
		return fmt.Errorf("pipeline failed")
	}
	return nil
}
