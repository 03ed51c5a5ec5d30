package pipeline

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Workflow is an on-disk pipeline definition.
type Workflow struct {
	Name string `yaml:"name"`
	On   struct {
		Push struct {
			Branches []string `yaml:"branches"`
		} `yaml:"push"`
		PullRequest struct {
			Branches []string `yaml:"branches"`
		} `yaml:"pull_request"`
	} `yaml:"on"`
	Env   map[string]string `yaml:"env"`
	Steps []StepSpec        `yaml:"steps"`
}

// StepSpec is one step entry of a workflow file.
type StepSpec struct {
	Name string            `yaml:"name"`
	Run  string            `yaml:"run"`
	Env  map[string]string `yaml:"env"`
}

// LoadWorkflow reads and defaults a workflow file.
func LoadWorkflow(path string) (*Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wf Workflow
	if err := yaml.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("failed to parse workflow %s: %w", path, err)
	}

	if wf.Name == "" {
		wf.Name = "ci"
	}
	if len(wf.On.Push.Branches) == 0 {
		wf.On.Push.Branches = []string{DefaultMainBranch}
	}
	if len(wf.On.PullRequest.Branches) == 0 {
		wf.On.PullRequest.Branches = []string{DefaultMainBranch}
	}

	for i, step := range wf.Steps {
		if step.Name == "" {
			return nil, fmt.Errorf("workflow %s: step %d has no name", path, i)
		}
		if step.Run == "" {
			return nil, fmt.Errorf("workflow %s: step %q has no run line", path, step.Name)
		}
	}

	return &wf, nil
}

// Triggers reports whether the given trigger matches the workflow's
// event/branch filters.
func (w *Workflow) Triggers(trigger Trigger) bool {
	var branches []string
	switch trigger.Event {
	case EventPush:
		branches = w.On.Push.Branches
	case EventPullRequest:
		branches = w.On.PullRequest.Branches
	default:
		return false
	}

	for _, b := range branches {
		if b == trigger.Branch {
			return true
		}
	}
	return false
}

// CompileSteps turns the workflow's step specs into runnable command
// steps. Workflow-level env applies to every step; step env overrides
// it key by key.
func (w *Workflow) CompileSteps(out io.Writer) []Step {
	steps := make([]Step, 0, len(w.Steps))
	for _, spec := range w.Steps {
		env := make(map[string]string, len(w.Env)+len(spec.Env))
		for k, v := range w.Env {
			env[k] = v
		}
		for k, v := range spec.Env {
			env[k] = v
		}
		steps = append(steps, ShellCommand(spec.Name, spec.Run, env).Step(out))
	}
	return steps
}
