package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/cxcorp/js-to-flasm-as2-compiler/register"
)

// fileConfig is the --config sidecar shape: a JSON map from variable name
// to the register id it should be predeclared to, applied before
// compiling each input file the same way a
// `@js2f/push-register-context:` directive would.
type fileConfig struct {
	RegisterVariables map[string]int `json:"registerVariables"`
}

// loadConfig reads and validates a --config sidecar. An empty path is not
// an error: it simply means no predeclared bindings.
func loadConfig(path string) (map[string]register.Register, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}
	var cfg fileConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config file")
	}
	bindings := make(map[string]register.Register, len(cfg.RegisterVariables))
	for name, id := range cfg.RegisterVariables {
		if id < register.MinId || id > register.MaxId {
			return nil, errors.Errorf("config: invalid register id %d for %q", id, name)
		}
		bindings[name] = register.Register{Id: id, Name: name}
	}
	return bindings, nil
}
