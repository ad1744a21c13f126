// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

// Package cli builds the graphsemantics command tree on top of urfave/cli.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/neo4j/graphsemantics/internal/agent"
	"github.com/neo4j/graphsemantics/internal/config"
	"github.com/neo4j/graphsemantics/internal/database"
	"github.com/neo4j/graphsemantics/internal/logger"
	"github.com/neo4j/graphsemantics/internal/movies"
	"github.com/neo4j/graphsemantics/internal/server"
	"github.com/neo4j/graphsemantics/internal/tools"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 10 * time.Second

// App holds the IO streams and factories the commands run against.
type App struct {
	Version string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer

	OpenStore     func(cfg *config.Config, log *logger.Service) (database.Service, error)
	NewChatClient func(cfg *config.Config) agent.ChatCompleter
}

// New returns an App bound to the process streams, Neo4j and OpenAI.
func New(version string) *App {
	return &App{
		Version:       version,
		Stdin:         os.Stdin,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		OpenStore:     openStore,
		NewChatClient: newChatClient,
	}
}

// Run parses args and executes the selected command.
func (a *App) Run(ctx context.Context, args []string) error {
	return a.Command().Run(ctx, args)
}

// Command builds the root command.
func (a *App) Command() *cli.Command {
	return &cli.Command{
		Name:      "graphsemantics",
		Version:   a.Version,
		Usage:     "semantic layer over a Neo4j movie graph",
		Writer:    a.Stdout,
		ErrWriter: a.Stderr,
		Description: "Without a subcommand, --import-data loads the sample dataset and --query answers a question.\n" +
			"With neither flag the MCP server is started.",
		Flags: rootFlags(),
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the MCP server",
				Action: a.serve,
			},
			{
				Name:      "lookup",
				Usage:     "print what the graph knows about a movie or person",
				ArgsUsage: "<entity>",
				Action:    a.lookup,
			},
			{
				Name:  "import",
				Usage: "load movie data into the database",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "file",
						Usage: "local movies CSV to import instead of the dataset URL",
					},
					&cli.StringFlag{
						Name:  "url",
						Usage: "dataset URL to load (default: GRAPHSEMANTICS_DATASET_URL)",
					},
				},
				Action: a.importData,
			},
			{
				Name:      "query",
				Usage:     "answer a natural language question",
				ArgsUsage: "<question>",
				Action:    a.query,
			},
			{
				Name:   "chat",
				Usage:  "answer questions read line by line from stdin, keeping the conversation",
				Action: a.chat,
			},
		},
		Action: a.root,
	}
}

// setup loads configuration and builds the logger. Logs go to stderr so stdout stays clean for results.
func (a *App) setup(cmd *cli.Command) (*config.Config, *logger.Service, error) {
	if err := config.LoadEnvFile(cmd.String(flagEnvFile)); err != nil {
		return nil, nil, err
	}
	cfg, err := config.LoadConfig(overridesFromFlags(cmd))
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.New(cfg.LogLevel, cfg.LogFormat, a.Stderr), nil
}

// withRuntime runs fn against a connected runtime and closes it afterwards.
func (a *App) withRuntime(ctx context.Context, cmd *cli.Command, check func(*config.Config) error, fn func(*runtime) error) error {
	cfg, log, err := a.setup(cmd)
	if err != nil {
		return err
	}
	if check != nil {
		if err := check(cfg); err != nil {
			return err
		}
	}
	rt, err := a.newRuntime(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer rt.close(context.WithoutCancel(ctx))
	return fn(rt)
}

func (a *App) root(ctx context.Context, cmd *cli.Command) error {
	importData := cmd.Bool(flagImportData)
	question := cmd.String(flagQuery)
	if !importData && question == "" {
		return a.serve(ctx, cmd)
	}

	var check func(*config.Config) error
	if question != "" {
		check = (*config.Config).ValidateAgent
	}
	return a.withRuntime(ctx, cmd, check, func(rt *runtime) error {
		if importData {
			if err := a.importFromURL(ctx, rt, rt.cfg.DatasetURL); err != nil {
				return err
			}
		}
		if question == "" {
			return nil
		}
		return a.answer(ctx, rt, question)
	})
}

func (a *App) serve(ctx context.Context, cmd *cli.Command) error {
	return a.withRuntime(ctx, cmd, nil, func(rt *runtime) error {
		srv := server.NewGraphSemanticsServer(a.Version, rt.cfg, rt.db, rt.deps, rt.log)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start(ctx)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			rt.log.Info("Shutting down server")
			stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()
			return srv.Stop(stopCtx)
		}
	})
}

func (a *App) lookup(ctx context.Context, cmd *cli.Command) error {
	entity := strings.Join(cmd.Args().Slice(), " ")
	if strings.TrimSpace(entity) == "" {
		return errors.New("lookup requires an entity name")
	}
	return a.withRuntime(ctx, cmd, nil, func(rt *runtime) error {
		text, err := rt.deps.Resolver.Resolve(ctx, entity)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(a.Stdout, text)
		return err
	})
}

func (a *App) importData(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("file")
	return a.withRuntime(ctx, cmd, nil, func(rt *runtime) error {
		if path == "" {
			url := cmd.String("url")
			if url == "" {
				url = rt.cfg.DatasetURL
			}
			return a.importFromURL(ctx, rt, url)
		}
		return a.importFromFile(ctx, rt, path)
	})
}

func (a *App) importFromURL(ctx context.Context, rt *runtime, url string) error {
	fmt.Fprintln(a.Stdout, "Importing movie data...")
	summary, err := rt.importer.ImportFromURL(ctx, url)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.Stdout, "Data import completed: %s\n", summary)
	return err
}

func (a *App) importFromFile(ctx context.Context, rt *runtime, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	records, err := movies.ReadMoviesCSV(f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	fmt.Fprintf(a.Stdout, "Importing %d movies from %s...\n", len(records), path)
	summary, err := rt.importer.ImportMovies(ctx, records)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.Stdout, "Data import completed: %s\n", summary)
	return err
}

func (a *App) query(ctx context.Context, cmd *cli.Command) error {
	question := strings.Join(cmd.Args().Slice(), " ")
	if strings.TrimSpace(question) == "" {
		return errors.New("query requires a question")
	}
	return a.withRuntime(ctx, cmd, (*config.Config).ValidateAgent, func(rt *runtime) error {
		return a.answer(ctx, rt, question)
	})
}

func (a *App) answer(ctx context.Context, rt *runtime, question string) error {
	sa, err := rt.newAgent(a)
	if err != nil {
		return err
	}
	response, err := sa.Query(ctx, question, nil)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.Stdout, "Query: %s\nResponse: %s\n", question, response)
	return err
}

func (a *App) chat(ctx context.Context, cmd *cli.Command) error {
	return a.withRuntime(ctx, cmd, (*config.Config).ValidateAgent, func(rt *runtime) error {
		sa, err := rt.newAgent(a)
		if err != nil {
			return err
		}

		var history []agent.Exchange
		scanner := bufio.NewScanner(a.Stdin)
		for {
			fmt.Fprint(a.Stdout, "> ")
			if !scanner.Scan() {
				fmt.Fprintln(a.Stdout)
				return scanner.Err()
			}
			question := strings.TrimSpace(scanner.Text())
			if question == "" {
				continue
			}

			response, err := sa.Query(ctx, question, history)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.Stdout, response)
			history = append(history, agent.Exchange{Human: question, AI: response})
		}
	})
}

func agentTools(deps *tools.ToolDependencies) []tools.Invokable {
	return server.AgentTools(deps)
}
