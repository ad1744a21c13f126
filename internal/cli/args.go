// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package cli

import (
	"strconv"

	"github.com/neo4j/graphsemantics/internal/config"
	"github.com/urfave/cli/v3"
)

// Flag names shared by the root command and, since flags are inherited, every subcommand.
const (
	flagEnvFile     = "env-file"
	flagImportData  = "import-data"
	flagQuery       = "query"
	flagModel       = "model"
	flagTemperature = "temperature"
	flagURI         = "neo4j-uri"
	flagUsername    = "neo4j-username"
	flagPassword    = "neo4j-password"
	flagDatabase    = "neo4j-database"
	flagMatchPolicy = "match-policy"
	flagReadOnly    = "read-only"
	flagTransport   = "transport"
	flagHTTPHost    = "http-host"
	flagHTTPPort    = "http-port"
	flagLogLevel    = "log-level"
)

func rootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  flagEnvFile,
			Usage: "path to a .env file containing configuration (default: ./.env when present)",
		},
		&cli.BoolFlag{
			Name:  flagImportData,
			Usage: "import the sample movie dataset into the database",
		},
		&cli.StringFlag{
			Name:  flagQuery,
			Usage: "natural language query to run against the database",
		},
		&cli.StringFlag{
			Name:  flagModel,
			Usage: "OpenAI model to use (default: " + config.DefaultModel + ")",
		},
		&cli.FloatFlag{
			Name:  flagTemperature,
			Usage: "temperature for the model (default: 0)",
		},
		&cli.StringFlag{
			Name:  flagURI,
			Usage: "Neo4j connection URI (overrides NEO4J_URI)",
		},
		&cli.StringFlag{
			Name:  flagUsername,
			Usage: "database username (overrides NEO4J_USERNAME)",
		},
		&cli.StringFlag{
			Name:  flagPassword,
			Usage: "database password (overrides NEO4J_PASSWORD)",
		},
		&cli.StringFlag{
			Name:  flagDatabase,
			Usage: "database name (overrides NEO4J_DATABASE)",
		},
		&cli.StringFlag{
			Name:  flagMatchPolicy,
			Usage: "how candidates match titles and names: exact or contains",
		},
		&cli.BoolFlag{
			Name:  flagReadOnly,
			Usage: "do not expose the import tool over MCP",
		},
		&cli.StringFlag{
			Name:  flagTransport,
			Usage: "MCP transport: stdio or http",
		},
		&cli.StringFlag{
			Name:  flagHTTPHost,
			Usage: "HTTP bind address",
		},
		&cli.StringFlag{
			Name:  flagHTTPPort,
			Usage: "HTTP port",
		},
		&cli.StringFlag{
			Name:  flagLogLevel,
			Usage: "log level: debug, info, notice, warning, error, critical, alert or emergency",
		},
	}
}

// overridesFromFlags collects the flags that were set into config overrides. Unset flags leave the environment
// values in place.
func overridesFromFlags(cmd *cli.Command) *config.CLIOverrides {
	o := &config.CLIOverrides{
		URI:         cmd.String(flagURI),
		Username:    cmd.String(flagUsername),
		Password:    cmd.String(flagPassword),
		Database:    cmd.String(flagDatabase),
		Model:       cmd.String(flagModel),
		MatchPolicy: cmd.String(flagMatchPolicy),
		Transport:   cmd.String(flagTransport),
		Host:        cmd.String(flagHTTPHost),
		Port:        cmd.String(flagHTTPPort),
		LogLevel:    cmd.String(flagLogLevel),
	}
	if cmd.IsSet(flagTemperature) {
		o.Temperature = strconv.FormatFloat(cmd.Float(flagTemperature), 'f', -1, 64)
	}
	if cmd.IsSet(flagReadOnly) {
		o.ReadOnly = strconv.FormatBool(cmd.Bool(flagReadOnly))
	}
	return o
}
