package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/collatz"
	"github.com/aretw0/collatz/pkg/domain"
	"github.com/aretw0/collatz/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// StateURI addresses the persisted state document.
const StateURI = "collatz://state"

// ComputeResponse is the structured output of the compute_sequence tool.
type ComputeResponse struct {
	Result            *domain.SequenceResult `json:"result" jsonschema_description:"The computed trajectory summary"`
	StoppingTime      int                    `json:"stopping_time" jsonschema_description:"Steps needed to first reach 1"`
	TotalStoppingTime int                    `json:"total_stopping_time" jsonschema_description:"Same as stopping_time; trajectories halt at 1"`
	Summary           string                 `json:"summary" jsonschema_description:"Human readable summary"`
}

// StoppingTimeResponse is the structured output of the stopping_time tool.
type StoppingTimeResponse struct {
	Seed              int64 `json:"seed"`
	StoppingTime      int   `json:"stopping_time"`
	TotalStoppingTime int   `json:"total_stopping_time"`
}

// Engine defines the engine operations exposed as tools.
type Engine interface {
	Compute(ctx context.Context, seed int64, limit int) (*domain.SequenceResult, error)
	StoppingTime(seed int64) (int, error)
	Limit() int
}

// Server wraps the Collatz Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	store     ports.StateStore
	mcpServer *server.MCPServer
	// routes are extra handlers served next to the SSE endpoints.
	routes map[string]http.Handler
}

// NewServer creates a new MCP Server instance.
// store may be nil, in which case the state resource is not registered.
func NewServer(engine Engine, store ports.StateStore) *Server {
	s := &Server{
		engine:    engine,
		store:     store,
		mcpServer: server.NewMCPServer("collatz-mcp", strings.TrimSpace(collatz.Version)),
	}
	s.registerTools()
	if store != nil {
		s.registerResources()
	}
	return s
}

// Mount serves handler on pattern alongside the SSE endpoints.
// It has no effect on the stdio transport.
func (s *Server) Mount(pattern string, handler http.Handler) {
	if s.routes == nil {
		s.routes = make(map[string]http.Handler)
	}
	s.routes[pattern] = handler
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	for pattern, handler := range s.routes {
		mux.Handle(pattern, handler)
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	computeTool := mcp.NewTool("compute_sequence",
		mcp.WithDescription("Compute the Collatz trajectory of a positive integer. Statistics cover the full trajectory even when the returned sequence is truncated."),
		mcp.WithNumber("seed", mcp.Required(), mcp.Description("Positive integer to start from")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of values to return; 0 returns the full trajectory")),
		mcp.WithOutputSchema[ComputeResponse](),
	)
	s.mcpServer.AddTool(computeTool, mcp.NewStructuredToolHandler(s.handleCompute))

	stoppingTool := mcp.NewTool("stopping_time",
		mcp.WithDescription("Return the number of steps a positive integer needs to reach 1."),
		mcp.WithNumber("seed", mcp.Required(), mcp.Description("Positive integer to start from")),
		mcp.WithOutputSchema[StoppingTimeResponse](),
	)
	s.mcpServer.AddTool(stoppingTool, mcp.NewStructuredToolHandler(s.handleStoppingTime))
}

func (s *Server) handleCompute(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ComputeResponse, error) {
	seed, err := intArg(args, "seed", -1)
	if err != nil {
		return ComputeResponse{}, err
	}
	limit, err := intArg(args, "limit", int64(s.engine.Limit()))
	if err != nil {
		return ComputeResponse{}, err
	}

	result, err := s.engine.Compute(ctx, seed, int(limit))
	if err != nil {
		return ComputeResponse{}, fmt.Errorf("compute failed: %w", err)
	}

	return ComputeResponse{
		Result:            result,
		StoppingTime:      result.StoppingTime(),
		TotalStoppingTime: result.TotalStoppingTime(),
		Summary:           result.Summary(),
	}, nil
}

func (s *Server) handleStoppingTime(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StoppingTimeResponse, error) {
	seed, err := intArg(args, "seed", -1)
	if err != nil {
		return StoppingTimeResponse{}, err
	}

	steps, err := s.engine.StoppingTime(seed)
	if err != nil {
		return StoppingTimeResponse{}, fmt.Errorf("stopping time failed: %w", err)
	}

	return StoppingTimeResponse{
		Seed:              seed,
		StoppingTime:      steps,
		TotalStoppingTime: steps,
	}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(StateURI, "Persisted Collatz state",
		mcp.WithMIMEType("application/json"),
	), s.readState)
}

func (s *Server) readState(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrStateNotFound) {
			return nil, fmt.Errorf("no state has been persisted: %w", err)
		}
		return nil, fmt.Errorf("failed to read state: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      StateURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// intArg reads a whole number from the JSON arguments.
// A negative def marks the argument as required.
func intArg(args map[string]interface{}, key string, def int64) (int64, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		if def < 0 {
			return 0, fmt.Errorf("missing %q: %w", key, domain.ErrInvalidInput)
		}
		return def, nil
	}

	f, ok := raw.(float64)
	if !ok {
		return 0, fmt.Errorf("%q must be a number, got %T: %w", key, raw, domain.ErrInvalidInput)
	}
	if f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("%q must be a whole number, got %v: %w", key, f, domain.ErrInvalidInput)
	}
	return int64(f), nil
}
