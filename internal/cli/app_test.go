// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/neo4j/graphsemantics/internal/agent"
	agentmocks "github.com/neo4j/graphsemantics/internal/agent/mocks"
	"github.com/neo4j/graphsemantics/internal/cli"
	"github.com/neo4j/graphsemantics/internal/config"
	"github.com/neo4j/graphsemantics/internal/database"
	"github.com/neo4j/graphsemantics/internal/database/mocks"
	"github.com/neo4j/graphsemantics/internal/logger"
	"github.com/neo4j/neo4j-go-driver/v6/neo4j"
	"github.com/neo4j/neo4j-go-driver/v6/neo4j/dbtype"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setConnectionEnv(t *testing.T) {
	t.Helper()
	t.Setenv("NEO4J_URI", "bolt://localhost:7687")
	t.Setenv("NEO4J_USERNAME", "neo4j")
	t.Setenv("NEO4J_PASSWORD", "password")
	t.Setenv("OPENAI_API_KEY", "")
}

type testApp struct {
	*cli.App
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	cfg    *config.Config
}

// newTestApp returns an App whose store and chat client are the given mocks. A nil store fails the test when opened.
func newTestApp(t *testing.T, store database.Service, chat agent.ChatCompleter) *testApp {
	t.Helper()
	ta := &testApp{
		App:    cli.New("test-version"),
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	ta.Stdin = strings.NewReader("")
	ta.Stdout = ta.stdout
	ta.Stderr = ta.stderr
	ta.OpenStore = func(cfg *config.Config, _ *logger.Service) (database.Service, error) {
		ta.cfg = cfg
		if store == nil {
			t.Fatal("store must not be opened")
		}
		return store, nil
	}
	ta.NewChatClient = func(*config.Config) agent.ChatCompleter {
		if chat == nil {
			t.Fatal("chat client must not be created")
		}
		return chat
	}
	return ta
}

func matrixRecord() []*neo4j.Record {
	return []*neo4j.Record{{
		Keys: []string{"title", "released", "people"},
		Values: []any{
			"The Matrix",
			dbtype.Date(time.Date(1999, time.March, 31, 0, 0, 0, 0, time.UTC)),
			[]any{
				map[string]any{"name": "Lana Wachowski", "role": "DIRECTED"},
				map[string]any{"name": "Keanu Reeves", "role": "ACTED_IN"},
			},
		},
	}}
}

func expectConnected(store *mocks.MockService) {
	store.EXPECT().VerifyConnectivity(gomock.Any()).Return(nil)
	store.EXPECT().Close(gomock.Any()).Return(nil)
}

func TestLookup(t *testing.T) {
	ctx := context.Background()

	t.Run("prints the composed movie", func(t *testing.T) {
		setConnectionEnv(t)
		ctrl := gomock.NewController(t)
		store := mocks.NewMockService(ctrl)
		expectConnected(store)
		store.EXPECT().
			ExecuteReadQuery(gomock.Any(), gomock.Any(), map[string]any{"candidate": "The Matrix"}).
			Return(matrixRecord(), nil)

		app := newTestApp(t, store, nil)
		require.NoError(t, app.Run(ctx, []string{"graphsemantics", "lookup", "The", "Matrix"}))

		want := "Movie: The Matrix (1999)\nPeople involved:\n- Keanu Reeves (ACTED_IN)\n- Lana Wachowski (DIRECTED)\n"
		assert.Equal(t, want, app.stdout.String())
	})

	t.Run("reports a miss", func(t *testing.T) {
		setConnectionEnv(t)
		ctrl := gomock.NewController(t)
		store := mocks.NewMockService(ctrl)
		expectConnected(store)
		store.EXPECT().
			ExecuteReadQuery(gomock.Any(), gomock.Any(), map[string]any{"candidate": "Nobody"}).
			Return(nil, nil).
			Times(2)

		app := newTestApp(t, store, nil)
		err := app.Run(ctx, []string{"graphsemantics", "lookup", "Nobody"})
		assert.EqualError(t, err, "No information found for 'Nobody'")
		assert.Empty(t, app.stdout.String())
	})

	t.Run("flags override the environment", func(t *testing.T) {
		setConnectionEnv(t)
		ctrl := gomock.NewController(t)
		store := mocks.NewMockService(ctrl)
		expectConnected(store)
		store.EXPECT().ExecuteReadQuery(gomock.Any(), gomock.Any(), gomock.Any()).Return(matrixRecord(), nil)

		app := newTestApp(t, store, nil)
		err := app.Run(ctx, []string{
			"graphsemantics",
			"--neo4j-uri", "bolt://override:7687",
			"--neo4j-database", "movies",
			"--match-policy", "contains",
			"lookup", "Matrix",
		})
		require.NoError(t, err)
		require.NotNil(t, app.cfg)
		assert.Equal(t, "bolt://override:7687", app.cfg.URI)
		assert.Equal(t, "movies", app.cfg.Database)
		assert.Equal(t, config.MatchContains, app.cfg.MatchPolicy)
	})

	t.Run("requires an entity", func(t *testing.T) {
		setConnectionEnv(t)
		app := newTestApp(t, nil, nil)
		err := app.Run(ctx, []string{"graphsemantics", "lookup"})
		assert.EqualError(t, err, "lookup requires an entity name")
	})

	t.Run("requires a connection URI", func(t *testing.T) {
		setConnectionEnv(t)
		t.Setenv("NEO4J_URI", "")
		app := newTestApp(t, nil, nil)
		err := app.Run(ctx, []string{"graphsemantics", "lookup", "The Matrix"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Neo4j URI is required")
	})

	t.Run("closes the store when it is unreachable", func(t *testing.T) {
		setConnectionEnv(t)
		ctrl := gomock.NewController(t)
		store := mocks.NewMockService(ctrl)
		store.EXPECT().VerifyConnectivity(gomock.Any()).Return(errors.New("connection refused"))
		store.EXPECT().Close(gomock.Any()).Return(nil)

		app := newTestApp(t, store, nil)
		err := app.Run(ctx, []string{"graphsemantics", "lookup", "The Matrix"})
		assert.EqualError(t, err, "connection refused")
	})
}

func TestImport(t *testing.T) {
	ctx := context.Background()

	t.Run("imports a local file", func(t *testing.T) {
		setConnectionEnv(t)
		path := filepath.Join(t.TempDir(), "movies.csv")
		csv := "movieId,title,released,imdbRating,director,actors,genres\n" +
			"1,Toy Story,1995-11-22,8.3,John Lasseter,Tom Hanks,Animation\n"
		require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

		ctrl := gomock.NewController(t)
		store := mocks.NewMockService(ctrl)
		expectConnected(store)
		// three constraints and one batch
		store.EXPECT().ExecuteWriteQuery(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(4)
		store.EXPECT().ExecuteReadQuery(gomock.Any(), gomock.Any(), gomock.Nil()).Return([]*neo4j.Record{{
			Keys:   []string{"movies", "people", "genres"},
			Values: []any{int64(1), int64(2), int64(1)},
		}}, nil)

		app := newTestApp(t, store, nil)
		require.NoError(t, app.Run(ctx, []string{"graphsemantics", "import", "--file", path}))

		out := app.stdout.String()
		assert.Contains(t, out, "Importing 1 movies from "+path)
		assert.Contains(t, out, "Data import completed: 1 movies, 2 people, 1 genres")
	})

	t.Run("imports from a url", func(t *testing.T) {
		setConnectionEnv(t)
		const url = "https://example.com/movies.csv"

		ctrl := gomock.NewController(t)
		store := mocks.NewMockService(ctrl)
		expectConnected(store)
		store.EXPECT().ExecuteWriteQuery(gomock.Any(), gomock.Any(), gomock.Nil()).Return(nil, nil).Times(3)
		store.EXPECT().ExecuteWriteQuery(gomock.Any(), gomock.Any(), map[string]any{"url": url}).Return(nil, nil)
		store.EXPECT().ExecuteReadQuery(gomock.Any(), gomock.Any(), gomock.Nil()).Return([]*neo4j.Record{{
			Keys:   []string{"movies", "people", "genres"},
			Values: []any{int64(9), int64(30), int64(4)},
		}}, nil)

		app := newTestApp(t, store, nil)
		require.NoError(t, app.Run(ctx, []string{"graphsemantics", "import", "--url", url}))
		assert.Contains(t, app.stdout.String(), "Data import completed: 9 movies, 30 people, 4 genres")
	})

	t.Run("missing file", func(t *testing.T) {
		setConnectionEnv(t)
		ctrl := gomock.NewController(t)
		store := mocks.NewMockService(ctrl)
		expectConnected(store)

		app := newTestApp(t, store, nil)
		err := app.Run(ctx, []string{"graphsemantics", "import", "--file", filepath.Join(t.TempDir(), "absent.csv")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open")
	})
}

func answer(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content},
		}},
	}
}

func TestQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("requires an api key", func(t *testing.T) {
		setConnectionEnv(t)
		app := newTestApp(t, nil, nil)
		err := app.Run(ctx, []string{"graphsemantics", "query", "Who acted in The Matrix?"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OPENAI_API_KEY")
	})

	t.Run("prints the answer", func(t *testing.T) {
		setConnectionEnv(t)
		t.Setenv("OPENAI_API_KEY", "sk-test")

		ctrl := gomock.NewController(t)
		store := mocks.NewMockService(ctrl)
		expectConnected(store)
		chat := agentmocks.NewMockChatCompleter(ctrl)
		chat.EXPECT().CreateChatCompletion(gomock.Any(), gomock.Any()).Return(answer("Keanu Reeves acted in it."), nil)

		app := newTestApp(t, store, chat)
		require.NoError(t, app.Run(ctx, []string{"graphsemantics", "query", "Who acted in The Matrix?"}))
		assert.Equal(t, "Query: Who acted in The Matrix?\nResponse: Keanu Reeves acted in it.\n", app.stdout.String())
	})

	t.Run("root query flag uses the model flag", func(t *testing.T) {
		setConnectionEnv(t)
		t.Setenv("OPENAI_API_KEY", "sk-test")

		ctrl := gomock.NewController(t)
		store := mocks.NewMockService(ctrl)
		expectConnected(store)
		chat := agentmocks.NewMockChatCompleter(ctrl)
		chat.EXPECT().CreateChatCompletion(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
				assert.Equal(t, "gpt-4o", req.Model)
				return answer("1999."), nil
			})

		app := newTestApp(t, store, chat)
		err := app.Run(ctx, []string{"graphsemantics", "--model", "gpt-4o", "--query", "When was The Matrix released?"})
		require.NoError(t, err)
		assert.Contains(t, app.stdout.String(), "Response: 1999.")
	})
}

func TestChat(t *testing.T) {
	setConnectionEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	ctrl := gomock.NewController(t)
	store := mocks.NewMockService(ctrl)
	expectConnected(store)
	chat := agentmocks.NewMockChatCompleter(ctrl)
	gomock.InOrder(
		chat.EXPECT().CreateChatCompletion(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
				assert.Len(t, req.Messages, 2)
				return answer("Keanu Reeves."), nil
			}),
		chat.EXPECT().CreateChatCompletion(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
				require.Len(t, req.Messages, 4)
				assert.Equal(t, "Keanu Reeves.", req.Messages[2].Content)
				return answer("1964."), nil
			}),
	)

	app := newTestApp(t, store, chat)
	app.Stdin = strings.NewReader("Who starred in The Matrix?\n\nWhen was he born?\n")
	require.NoError(t, app.Run(context.Background(), []string{"graphsemantics", "chat"}))

	out := app.stdout.String()
	assert.Contains(t, out, "Keanu Reeves.\n")
	assert.Contains(t, out, "1964.\n")
}
