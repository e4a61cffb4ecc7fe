// Package mcpserver launches the MCP server under test as a stdio subprocess
// and exposes tool calls against it.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"
)

const (
	protocolVersion = "2024-11-05"
	initTimeout     = 30 * time.Second
)

// ToolCaller is the surface the harness needs from the server connection.
// *Manager is the live implementation; tests substitute fakes.
type ToolCaller interface {
	CallTool(ctx context.Context, name string, args map[string]any) (map[string]any, error)
}

// Options configures the server subprocess.
type Options struct {
	// Command and Args launch the server, e.g.
	// "uvx" ["awslabs.aws-dataprocessing-mcp-server@latest", "--allow-write"].
	Command string
	Args    []string

	// Profile and Region are injected into the subprocess environment as
	// AWS_PROFILE and AWS_DEFAULT_REGION when non-empty.
	Profile string
	Region  string

	// CallTimeout bounds each tool call. Zero means no per-call bound.
	CallTimeout time.Duration

	Debug bool
}

// Manager owns the server subprocess and its MCP session.
type Manager struct {
	client      *client.Client
	command     string
	callTimeout time.Duration
	debug       bool
}

// Start launches the server and performs the MCP initialize handshake.
func Start(ctx context.Context, opts Options) (*Manager, error) {
	var env []string
	if opts.Profile != "" {
		env = append(env, "AWS_PROFILE="+opts.Profile)
	}
	if opts.Region != "" {
		env = append(env, "AWS_DEFAULT_REGION="+opts.Region)
	}

	c, err := client.NewStdioMCPClient(opts.Command, env, opts.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to start MCP server %q: %w", opts.Command, err)
	}

	m := &Manager{
		client:      c,
		command:     opts.Command,
		callTimeout: opts.CallTimeout,
		debug:       opts.Debug,
	}

	initCtx, cancel := context.WithTimeout(ctx, initTimeout)
	defer cancel()

	initRequest := mcp.InitializeRequest{
		Params: struct {
			ProtocolVersion string                 `json:"protocolVersion"`
			Capabilities    mcp.ClientCapabilities `json:"capabilities"`
			ClientInfo      mcp.Implementation     `json:"clientInfo"`
		}{
			ProtocolVersion: protocolVersion,
			ClientInfo: mcp.Implementation{
				Name:    "dataprocessing-mcp-harness",
				Version: "1.0.0",
			},
			Capabilities: mcp.ClientCapabilities{},
		},
	}

	info, err := c.Initialize(initCtx, initRequest)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("MCP initialize failed for %q: %w", opts.Command, err)
	}

	logrus.WithFields(logrus.Fields{
		"server":  info.ServerInfo.Name,
		"version": info.ServerInfo.Version,
	}).Debug("MCP server initialized")

	return m, nil
}

// CallTool invokes a tool and returns its decoded response wrapped as
// {"result": {...}}, the shape fixture extraction paths resolve against.
func (m *Manager) CallTool(ctx context.Context, name string, args map[string]any) (map[string]any, error) {
	if m.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.callTimeout)
		defer cancel()
	}

	if m.debug {
		raw, _ := json.Marshal(args)
		logrus.WithFields(logrus.Fields{"tool": name, "args": string(raw)}).Debug("calling tool")
	}

	request := mcp.CallToolRequest{
		Params: struct {
			Name      string    `json:"name"`
			Arguments any       `json:"arguments,omitempty"`
			Meta      *mcp.Meta `json:"_meta,omitempty"`
		}{
			Name:      name,
			Arguments: args,
		},
	}

	result, err := m.client.CallTool(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("tool call %s failed: %w", name, err)
	}

	response, err := toolResponse(result)
	if err != nil {
		return nil, fmt.Errorf("tool call %s returned an undecodable result: %w", name, err)
	}

	if m.debug {
		raw, _ := json.Marshal(response)
		logrus.WithFields(logrus.Fields{"tool": name, "response": string(raw)}).Debug("tool responded")
	}

	return response, nil
}

// ListTools returns the names of the tools the server advertises.
func (m *Manager) ListTools(ctx context.Context) ([]string, error) {
	result, err := m.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	return names, nil
}

// Close shuts down the MCP session and the server subprocess.
func (m *Manager) Close() error {
	if m.client == nil {
		return nil
	}
	err := m.client.Close()
	m.client = nil
	return err
}

// toolResponse converts an MCP result into the generic value graph the
// extraction paths expect.
func toolResponse(result *mcp.CallToolResult) (map[string]any, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}

	return map[string]any{"result": decoded}, nil
}
