package driver

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"lexenv/interpreter-go/pkg/runtime"
)

const (
	// LocalConfigFile is looked up in the working directory.
	LocalConfigFile = "lexenv.yml"
	// UserConfigFile is looked up relative to the XDG config directories.
	UserConfigFile = "lexenv/config.yml"

	EnvStrict   = "LEXENV_STRICT"
	EnvLogLevel = "LEXENV_LOG_LEVEL"
	EnvMaxDepth = "LEXENV_MAX_DEPTH"
)

// Config holds the settings shared by the CLI and the fixture runner.
type Config struct {
	Strict       bool         `yaml:"strict"`
	MaxDepth     int          `yaml:"max_depth"`
	MaxCallDepth int          `yaml:"max_call_depth"`
	LogLevel     string       `yaml:"log_level"`
	Corpus       CorpusConfig `yaml:"corpus"`
	Baseline     string       `yaml:"baseline"`

	// Path is the file the config was read from, empty for defaults.
	Path string `yaml:"-"`
}

// CorpusConfig locates the fixture corpus.
type CorpusConfig struct {
	Dir        string    `yaml:"dir"`
	Git        GitSource `yaml:"git"`
	IgnoreFile bool      `yaml:"ignore_file"`
}

// GitSource names a repository and the revision to check out.
type GitSource struct {
	URL      string `yaml:"url"`
	Revision string `yaml:"revision"`
}

// DefaultConfig returns the settings used when no config file is found.
func DefaultConfig() *Config {
	return &Config{
		MaxDepth:     runtime.DefaultMaxDepth,
		MaxCallDepth: runtime.DefaultMaxCallDepth,
		LogLevel:     logrus.InfoLevel.String(),
		Corpus:       CorpusConfig{IgnoreFile: true},
	}
}

// ValidationError aggregates config and manifest validation failures.
type ValidationError struct {
	Subject string
	Issues  []string
}

func (e *ValidationError) Error() string {
	subject := e.Subject
	if subject == "" {
		subject = "config"
	}
	if len(e.Issues) == 0 {
		return subject + ": invalid configuration"
	}
	var b strings.Builder
	b.WriteString(subject)
	b.WriteString(" validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadConfig reads a config file over the defaults. Unknown keys are errors.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: open %s", path)
	}
	defer file.Close()

	cfg, err := decodeConfig(file)
	if err != nil {
		return nil, errors.Wrapf(err, "config: parse %s", path)
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

// FindConfig returns the config file to use: the explicit path, then
// ./lexenv.yml, then the XDG user config. An empty result means defaults.
func FindConfig(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.Wrapf(err, "config: %s", explicit)
		}
		return explicit, nil
	}
	if info, err := os.Stat(LocalConfigFile); err == nil && !info.IsDir() {
		return LocalConfigFile, nil
	}
	if path, err := xdg.SearchConfigFile(UserConfigFile); err == nil {
		return path, nil
	}
	return "", nil
}

// ResolveConfig finds and loads the config, then applies environment
// overrides. Variables from envFile fill in names the process environment
// leaves unset or empty.
func ResolveConfig(explicit, envFile string) (*Config, error) {
	path, err := FindConfig(explicit)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if path != "" {
		if cfg, err = LoadConfig(path); err != nil {
			return nil, err
		}
	}
	var fileEnv map[string]string
	if envFile != "" {
		if fileEnv, err = godotenv.Read(envFile); err != nil {
			return nil, errors.Wrapf(err, "config: read env file %s", envFile)
		}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from LEXENV_* variables and revalidates.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvStrict); ok && v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "config: %s", EnvStrict)
		}
		c.Strict = strict
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvMaxDepth); ok && v != "" {
		depth, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "config: %s", EnvMaxDepth)
		}
		c.MaxDepth = depth
	}
	return c.Validate()
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs ValidationError
	if c.MaxDepth <= 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_depth must be positive (got %d)", c.MaxDepth))
	}
	if c.MaxCallDepth <= 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_call_depth must be positive (got %d)", c.MaxCallDepth))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs.Issues = append(errs.Issues, fmt.Sprintf("log_level %q is not a valid level", c.LogLevel))
	}
	if c.Corpus.Git.URL == "" && c.Corpus.Git.Revision != "" {
		errs.Issues = append(errs.Issues, "corpus.git.revision requires corpus.git.url")
	}
	if c.Corpus.Git.URL != "" && c.Corpus.Dir != "" {
		errs.Issues = append(errs.Issues, "corpus.dir and corpus.git.url are mutually exclusive")
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}
