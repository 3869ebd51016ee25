package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// RunnerConfig is the optional TOML configuration used by the CLI runner.
// Parameter overrides are keyed by node name, then parameter name:
//
//	log_level = "debug"
//
//	[params.source]
//	value = 5
type RunnerConfig struct {
	LogLevel string                    `toml:"log_level"`
	Params   map[string]map[string]any `toml:"params"`
}

func LoadConfig(filePath string) (*RunnerConfig, error) {
	cfg := &RunnerConfig{}
	_, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadEnvFile(filePath string) error {
	return godotenv.Load(filePath)
}

type ResolveCliParamOpts struct {
	Flag      bool
	FlagValue string
	Env       bool
	Optional  bool
}

// ResolveCliParam resolves a CLI parameter with flag > env precedence.
// Env lookups use the NRN_ prefix with the upper-cased parameter name,
// e.g. 'config_file' becomes 'NRN_CONFIG_FILE'.
func ResolveCliParam(name string, opts ResolveCliParamOpts) (string, string) {
	if opts.Flag && opts.FlagValue != "" {
		LogOut.Debugf("using '%s' from flag\n", name)
		return opts.FlagValue, "flag"
	}

	if opts.Env {
		envName := "NRN_" + strings.ToUpper(name)
		if v, ok := os.LookupEnv(envName); ok && v != "" {
			LogOut.Debugf("using '%s' from env (%s)\n", name, envName)
			return v, "env"
		}
	}

	if !opts.Optional {
		LogErr.Errorf("missing required parameter '%s'\n", name)
	}
	return "", ""
}

// FormatParamValue renders an override value for log output, masking
// anything that looks like a credential.
func FormatParamValue(key string, val any) string {
	str := fmt.Sprintf("%v", val)
	if str == "" {
		return "(empty)"
	}

	filterWords := []string{"key", "access", "secret", "token", "password"}
	lowerKey := strings.ToLower(key)
	for _, word := range filterWords {
		if strings.Contains(lowerKey, word) {
			return strings.Repeat("*", len(str))
		}
	}

	const maxLen = 256
	if len(str) > maxLen {
		return str[:maxLen] + "..."
	}
	return str
}
