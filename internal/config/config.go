// Package config parses the harness CLI flags and the optional YAML
// configuration file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/awslabs/dataprocessing-mcp-harness/internal/exit"
)

const (
	// DefaultCallTimeout bounds a single tool call. Cluster operations can
	// take minutes on the server side.
	DefaultCallTimeout = 300 * time.Second
)

var (
	ErrNoArguments     = errors.New("no arguments provided")
	ErrNoServerCommand = errors.New("no server command specified")
)

// Config is the complete harness configuration.
type Config struct {
	// ServerCommand and ServerArgs launch the MCP server under test.
	ServerCommand string
	ServerArgs    []string

	// AWS credential resolution.
	Profile string
	Region  string

	// Groups filters which fixture groups run; empty runs everything.
	Groups []string

	CallTimeout time.Duration
	RateLimit   float64 // Tool calls per second (0 = unlimited)
	Debug       bool
}

// Validate returns an error if the configuration is incomplete.
func (c *Config) Validate() error {
	if c.ServerCommand == "" {
		return ErrNoServerCommand
	}
	return nil
}

// fileConfig mirrors the flag surface in YAML form.
type fileConfig struct {
	Server struct {
		Command string   `yaml:"command"`
		Args    []string `yaml:"args"`
	} `yaml:"server"`
	Profile   string   `yaml:"profile"`
	Region    string   `yaml:"region"`
	Groups    []string `yaml:"groups"`
	Timeout   string   `yaml:"timeout"`
	RateLimit float64  `yaml:"rate_limit"`
	Debug     bool     `yaml:"debug"`
}

// groupsFlag implements flag.Value for repeated -group flags.
type groupsFlag []string

func (g *groupsFlag) String() string {
	return strings.Join(*g, ",")
}

func (g *groupsFlag) Set(value string) error {
	name := strings.TrimSpace(value)
	if name == "" {
		return errors.New("group name cannot be empty")
	}
	*g = append(*g, name)
	return nil
}

// Parse parses command-line arguments and returns a validated Config.
// Positional arguments are the server command and its arguments.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	var (
		configFile = fs.String("config", "", "Path to YAML configuration file")
		profile    = fs.String("profile", "", "AWS profile for credential resolution")
		region     = fs.String("region", "", "AWS region")
		groups     groupsFlag
		timeout    = fs.Duration("timeout", DefaultCallTimeout, "Per tool call timeout")
		rateLimit  = fs.Float64("rate-limit", 0, "Rate limit in tool calls per second (0 for unlimited)")
		debug      = fs.Bool("debug", false, "Enable debug output showing tool calls and responses")
	)
	fs.Var(&groups, "group", "Fixture group to run (can be used multiple times, default all)")

	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	config := &Config{
		Profile:     *profile,
		Region:      *region,
		Groups:      groups,
		CallTimeout: *timeout,
		RateLimit:   *rateLimit,
		Debug:       *debug,
	}

	if *configFile != "" {
		if result := applyFile(config, *configFile, fs); result != nil {
			return nil, result
		}
	}

	// The server command line follows the flags, so its own flags pass
	// through untouched.
	if positional := fs.Args(); len(positional) > 0 {
		config.ServerCommand = positional[0]
		config.ServerArgs = positional[1:]
	}

	if err := config.Validate(); err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}

	return config, nil
}

// applyFile merges the YAML file into config. Flags that were set on the
// command line take precedence over file values.
func applyFile(config *Config, path string, fs *flag.FlagSet) *exit.Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return exit.Errorf("Error: failed to read config file: %v\n\n%s", err, Usage())
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return exit.Errorf("Error: failed to parse config file %s: %v\n\n%s", path, err, Usage())
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	config.ServerCommand = file.Server.Command
	config.ServerArgs = file.Server.Args

	if !set["profile"] && file.Profile != "" {
		config.Profile = file.Profile
	}
	if !set["region"] && file.Region != "" {
		config.Region = file.Region
	}
	if !set["group"] && len(file.Groups) > 0 {
		config.Groups = file.Groups
	}
	if !set["timeout"] && file.Timeout != "" {
		d, err := time.ParseDuration(file.Timeout)
		if err != nil {
			return exit.Errorf("Error: invalid timeout in config file: %v\n\n%s", err, Usage())
		}
		config.CallTimeout = d
	}
	if !set["rate-limit"] && file.RateLimit > 0 {
		config.RateLimit = file.RateLimit
	}
	if !set["debug"] && file.Debug {
		config.Debug = true
	}

	return nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return fmt.Sprintf(`dpmcp - integration-test harness for the AWS dataprocessing MCP server

Usage: dpmcp [options] <server-command> [server-args...]

Options:
  --config FILE       Path to YAML configuration file
  --profile NAME      AWS profile for credential resolution
  --region NAME       AWS region
  --group NAME        Fixture group to run (can be used multiple times, default all)
  --timeout DURATION  Per tool call timeout (default: %s)
  --rate-limit N      Rate limit in tool calls per second (0 for unlimited)
  --debug             Enable debug output showing tool calls and responses
  -h, --help          Show this help message

Examples:
  dpmcp --profile test uvx awslabs.aws-dataprocessing-mcp-server@latest --allow-write
  dpmcp --group glue_jobs --group athena_workgroups --debug uvx awslabs.aws-dataprocessing-mcp-server@latest --allow-write
  dpmcp --config harness.yaml`, DefaultCallTimeout)
}
