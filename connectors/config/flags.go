package config

import "github.com/urfave/cli/v3"

// Flags returns the CLI flags that fill o. Report flags are only offered
// when withReport is true.
func (o *Overrides) Flags(withReport bool) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Incident export CSV (overrides data.input)",
			Category:    "Data",
			Sources:     cli.EnvVars("INCIDENT_STATS_INPUT"),
			Destination: &o.Input,
		},
		&cli.StringFlag{
			Name:        "out",
			Aliases:     []string{"o"},
			Usage:       "Output directory (overrides data.output_dir)",
			Category:    "Data",
			Sources:     cli.EnvVars("INCIDENT_STATS_OUTPUT_DIR"),
			Destination: &o.OutputDir,
		},
	}
	if !withReport {
		return flags
	}
	return append(flags,
		&cli.StringFlag{
			Name:        "org",
			Usage:       "Organization name printed in the report header",
			Category:    "Report",
			Destination: &o.Organization,
		},
		&cli.StringFlag{
			Name:        "title",
			Usage:       "Report title",
			Category:    "Report",
			Destination: &o.Title,
		},
	)
}

// Resolve loads the config file at path, applies o and validates the result.
func Resolve(path string, o Overrides) (*Config, error) {
	c, err := LoadOptional(path)
	if err != nil {
		return nil, err
	}
	c.Apply(o)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
