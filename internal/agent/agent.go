// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

// Package agent runs the function-calling loop that lets a chat model answer questions through the graph tools.
package agent

//go:generate mockgen -destination=mocks/mock_agent.go -package=mocks github.com/neo4j/graphsemantics/internal/agent ChatCompleter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/graphsemantics/internal/config"
	"github.com/neo4j/graphsemantics/internal/logger"
	"github.com/neo4j/graphsemantics/internal/metrics"
	"github.com/neo4j/graphsemantics/internal/resolver"
	"github.com/neo4j/graphsemantics/internal/tools"
	"github.com/sashabaranov/go-openai"
)

// SystemPrompt instructs the model how to use the tools.
const SystemPrompt = "You are a helpful assistant that finds information about movies " +
	"and recommends them. If tools require follow up questions, " +
	"make sure to ask the user for clarification. Make sure to include any " +
	"available options that need to be clarified in the follow up questions " +
	"Do only the things the user specifically requested. "

const defaultRequestTimeout = 60 * time.Second

// ErrMaxStepsExceeded is returned when the model keeps calling tools past the step limit.
var ErrMaxStepsExceeded = errors.New("agent exceeded the maximum number of steps")

// ChatCompleter is the part of the OpenAI client the agent uses.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Exchange is one earlier (human, ai) turn of the conversation.
type Exchange struct {
	Human string
	AI    string
}

// Options configures a SemanticAgent.
type Options struct {
	Model       string
	Temperature float64
	// MaxSteps bounds the number of completions per query.
	MaxSteps int
}

// SemanticAgent answers natural language questions by letting the model call tools.
type SemanticAgent struct {
	client      ChatCompleter
	opts        Options
	tools       map[string]tools.Invokable
	definitions []openai.Tool
	log         *logger.Service
}

// New creates a SemanticAgent offering the given tools to the model.
func New(client ChatCompleter, opts Options, log *logger.Service, invokables ...tools.Invokable) (*SemanticAgent, error) {
	if client == nil {
		return nil, fmt.Errorf("chat client cannot be nil")
	}
	if opts.Model == "" {
		opts.Model = config.DefaultModel
	}
	if opts.MaxSteps < 1 {
		opts.MaxSteps = config.DefaultAgentMaxSteps
	}
	if log == nil {
		log = logger.Discard()
	}

	a := &SemanticAgent{
		client: client,
		opts:   opts,
		tools:  make(map[string]tools.Invokable, len(invokables)),
		log:    log.Component("agent"),
	}
	for _, inv := range invokables {
		if err := tools.CheckInputSchema(inv.Tool); err != nil {
			return nil, err
		}
		if _, dup := a.tools[inv.Name()]; dup {
			return nil, fmt.Errorf("tool %s registered twice", inv.Name())
		}
		params, err := tools.InputSchemaJSON(inv.Tool)
		if err != nil {
			return nil, err
		}
		a.tools[inv.Name()] = inv
		a.definitions = append(a.definitions, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        inv.Name(),
				Description: inv.Tool.Description,
				Parameters:  params,
			},
		})
	}
	return a, nil
}

// NewOpenAIClient creates a chat client for OpenAI or any compatible endpoint.
func NewOpenAIClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: defaultRequestTimeout}
	return openai.NewClientWithConfig(cfg)
}

// Query answers input given the earlier exchanges of the conversation.
func (a *SemanticAgent) Query(ctx context.Context, input string, history []Exchange) (string, error) {
	log := a.log.With("query_id", uuid.NewString())
	log.Info("Agent query started", "input", input, "history", len(history))

	messages := buildMessages(input, history)
	for step := 1; step <= a.opts.MaxSteps; step++ {
		resp, err := a.client.CreateChatCompletion(ctx, a.request(messages))
		metrics.AgentCompletionsTotal.WithLabelValues(metrics.Status(err)).Inc()
		if err != nil {
			return "", fmt.Errorf("chat completion failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("chat completion returned no choices")
		}

		msg := resp.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			log.Info("Agent query completed", "steps", step)
			return msg.Content, nil
		}

		messages = append(messages, msg)
		for _, call := range msg.ToolCalls {
			content, err := a.runTool(ctx, log, call)
			if err != nil {
				return "", err
			}
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    content,
				Name:       call.Function.Name,
				ToolCallID: call.ID,
			})
		}
	}

	log.Warn("Agent query gave up", "max_steps", a.opts.MaxSteps)
	return "", ErrMaxStepsExceeded
}

func (a *SemanticAgent) request(messages []openai.ChatCompletionMessage) openai.ChatCompletionRequest {
	temperature := float32(a.opts.Temperature)
	if temperature == 0 {
		// omitempty drops an explicit zero, leaving the server default in place
		temperature = math.SmallestNonzeroFloat32
	}
	return openai.ChatCompletionRequest{
		Model:       a.opts.Model,
		Messages:    messages,
		Tools:       a.definitions,
		Temperature: temperature,
	}
}

// runTool returns the text handed back to the model. Misses and bad arguments are reported to the model so it can
// ask the user for clarification; any other failure ends the query.
func (a *SemanticAgent) runTool(ctx context.Context, log *slog.Logger, call openai.ToolCall) (string, error) {
	name := call.Function.Name
	inv, ok := a.tools[name]
	if !ok {
		log.Warn("Model called an unknown tool", "tool", name)
		return fmt.Sprintf("Unknown tool '%s'", name), nil
	}

	var args map[string]any
	if call.Function.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			log.Warn("Model sent malformed tool arguments", "tool", name, "error", err)
			return fmt.Sprintf("%v: %v", tools.ErrInvalidArguments, err), nil
		}
	}

	log.Debug("Calling tool", "tool", name, "arguments", call.Function.Arguments)
	text, err := inv.Invoke(ctx, args)
	if err == nil {
		return text, nil
	}

	var notFound *resolver.EntityNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, tools.ErrInvalidArguments) {
		log.Debug("Tool reported a recoverable error", "tool", name, "error", err)
		return err.Error(), nil
	}
	log.Error("Tool call failed", "tool", name, "error", err)
	return "", fmt.Errorf("tool %s failed: %w", name, err)
}

func buildMessages(input string, history []Exchange) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, 2+2*len(history))
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt})
	for _, ex := range history {
		messages = append(messages,
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: ex.Human},
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: ex.AI},
		)
	}
	return append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: input})
}
