// internal/config/config.go
package config

import (
	"gopkg.in/yaml.v3"
	"os"
)

type Config struct {
	SourceDir string `yaml:"source_dir"`
	OutputDir string `yaml:"output_dir"`
	Render    struct {
		Mode string `yaml:"mode"`
	} `yaml:"render"`
	PasswordEnv string `yaml:"password_env"`
	Registry    struct {
		URL      string `yaml:"url"`
		TokenEnv string `yaml:"token_env"`
	} `yaml:"registry"`
	Pipeline struct {
		MainBranch      string   `yaml:"main_branch"`
		AllFeatures     bool     `yaml:"all_features"`
		InstallPackages []string `yaml:"install_packages"`
	} `yaml:"pipeline"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.SourceDir == "" {
		cfg.SourceDir = "./pdfs"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./pages"
	}
	if cfg.Render.Mode == "" {
		cfg.Render.Mode = "screen"
	}
	if cfg.Registry.TokenEnv == "" {
		cfg.Registry.TokenEnv = "REGISTRY_TOKEN"
	}
	if cfg.Pipeline.MainBranch == "" {
		cfg.Pipeline.MainBranch = "main"
	}

	return &cfg, nil
}
