package config

import (
	"os"

	"github.com/clover4media/razl/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Persona holds the path to an optional TOML persona file
type Persona struct {
	path string
}

// Flags returns CLI flags for persona configuration
func (x *Persona) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "persona",
			Usage:       "Path to a TOML persona file (name, nicknames, guidance)",
			Sources:     cli.EnvVars("RAZL_PERSONA"),
			Destination: &x.path,
		},
	}
}

// Configure loads the persona file, falling back to the built-in persona
// when no path is set.
func (x *Persona) Configure() (*model.Persona, error) {
	if x.path == "" {
		return model.DefaultPersona(), nil
	}

	raw, err := os.ReadFile(x.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read persona file", goerr.V("path", x.path))
	}

	var p model.Persona
	if err := toml.Unmarshal(raw, &p); err != nil {
		return nil, goerr.Wrap(err, "failed to parse persona file", goerr.V("path", x.path))
	}

	if err := p.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid persona file", goerr.V("path", x.path))
	}

	return &p, nil
}
