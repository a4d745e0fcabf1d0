package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all harness settings. Every field has a default matching
// the reference test layout, so a missing config file is not an error.
type Config struct {
	// Bin is the shell binary under test.
	Bin string `yaml:"bin"`
	// BuildCommand compiles the shell. Parsed with shell-style word
	// splitting. Empty disables the build step.
	BuildCommand string `yaml:"build_command"`

	// InputDir holds test input scripts, one shell line per line.
	InputDir string `yaml:"input_dir"`
	// OutputDir holds captured output, one <test>.out file per test.
	OutputDir string `yaml:"output_dir"`
	// ExpectedDir holds golden transcripts mirroring OutputDir names.
	ExpectedDir string `yaml:"expected_dir"`
	// FixtureDir is recreated for du tests with files of known sizes.
	FixtureDir string `yaml:"fixture_dir"`

	// Env is the fixed environment given to every run, for scripts that
	// assert variable expansion.
	Env map[string]string `yaml:"env"`

	Timing Timing `yaml:"timing"`
}

// Timing are the interactive-session delays. They model human-speed typing
// and give the shell time to react between harness actions; they are
// deliberate tunables, not hidden constants.
type Timing struct {
	// PerLine elapses after each scripted input line.
	PerLine time.Duration `yaml:"per_line"`
	// BeforeInterrupt elapses after the last scripted line, before SIGINT.
	BeforeInterrupt time.Duration `yaml:"before_interrupt"`
	// BeforeQuit elapses after SIGINT, before the quit command.
	BeforeQuit time.Duration `yaml:"before_quit"`
	// ExitWait bounds the wait for the shell to exit after quit. Exceeding
	// it is a harness fault, not a test failure.
	ExitWait time.Duration `yaml:"exit_wait"`
}

// UnmarshalYAML parses timing values in time.ParseDuration syntax
// ("100ms", "10s"). yaml.v3 has no native duration support.
func (t *Timing) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		PerLine         string `yaml:"per_line"`
		BeforeInterrupt string `yaml:"before_interrupt"`
		BeforeQuit      string `yaml:"before_quit"`
		ExitWait        string `yaml:"exit_wait"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	fields := []struct {
		name string
		src  string
		dst  *time.Duration
	}{
		{"per_line", raw.PerLine, &t.PerLine},
		{"before_interrupt", raw.BeforeInterrupt, &t.BeforeInterrupt},
		{"before_quit", raw.BeforeQuit, &t.BeforeQuit},
		{"exit_wait", raw.ExitWait, &t.ExitWait},
	}
	for _, f := range fields {
		if f.src == "" {
			continue
		}
		d, err := time.ParseDuration(f.src)
		if err != nil {
			return fmt.Errorf("timing.%s: %w", f.name, err)
		}
		*f.dst = d
	}
	return nil
}

// Default returns the configuration matching the reference test layout.
func Default() *Config {
	return &Config{
		Bin:          "./smash",
		BuildCommand: "g++ --std=c++11 -Wall Commands.cpp signals.cpp smash.cpp -o smash",
		InputDir:     "inputs",
		OutputDir:    "outputs/output",
		ExpectedDir:  "outputs/expected",
		FixtureDir:   "test_env_du",
		Env: map[string]string{
			"VAR1": "HELLO",
			"VAR2": "EHAB",
		},
		Timing: Timing{
			PerLine:         100 * time.Millisecond,
			BeforeInterrupt: 400 * time.Millisecond,
			BeforeQuit:      400 * time.Millisecond,
			ExitWait:        10 * time.Second,
		},
	}
}

// Load reads smashtest.yaml from the working directory, falling back to
// defaults when it does not exist.
func Load() (*Config, error) {
	return LoadFrom("smashtest.yaml")
}

// LoadFrom reads the harness config from the given path. A missing file
// yields the defaults with no error; fields absent from the file keep
// their default values.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills zero-valued fields after unmarshalling a partial file.
func (c *Config) applyDefaults() {
	d := Default()
	if c.Bin == "" {
		c.Bin = d.Bin
	}
	if c.InputDir == "" {
		c.InputDir = d.InputDir
	}
	if c.OutputDir == "" {
		c.OutputDir = d.OutputDir
	}
	if c.ExpectedDir == "" {
		c.ExpectedDir = d.ExpectedDir
	}
	if c.FixtureDir == "" {
		c.FixtureDir = d.FixtureDir
	}
	if c.Env == nil {
		c.Env = d.Env
	}
	if c.Timing.PerLine == 0 {
		c.Timing.PerLine = d.Timing.PerLine
	}
	if c.Timing.BeforeInterrupt == 0 {
		c.Timing.BeforeInterrupt = d.Timing.BeforeInterrupt
	}
	if c.Timing.BeforeQuit == 0 {
		c.Timing.BeforeQuit = d.Timing.BeforeQuit
	}
	if c.Timing.ExitWait == 0 {
		c.Timing.ExitWait = d.Timing.ExitWait
	}
}

// EnvSlice renders Env as KEY=VALUE pairs for exec.Cmd, appended to the
// parent environment so PATH and friends survive.
func (c *Config) EnvSlice() []string {
	env := os.Environ()
	for k, v := range c.Env {
		env = append(env, k+"="+v)
	}
	return env
}
