// Package mcp exposes a live chatbot session as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aretw0/chatbot/internal/logging"
	"github.com/aretw0/chatbot/internal/presentation/graph"
	"github.com/aretw0/chatbot/pkg/domain"
	"github.com/aretw0/chatbot/pkg/runner"
	"github.com/aretw0/chatbot/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	graphURI   = "chatbot://graph"
	mermaidURI = "chatbot://graph/mermaid"
)

// SendMessageArgs are the arguments of the send_message tool.
type SendMessageArgs struct {
	Text string `json:"text"`
}

// MessageResult is the structured output of send_message.
type MessageResult struct {
	SessionID string   `json:"session_id" jsonschema_description:"The live session"`
	NodeID    int      `json:"node_id" jsonschema_description:"The node the session moved to"`
	Replies   []string `json:"replies" jsonschema_description:"Replies produced by the message"`
}

// Position is the output of current_node.
type Position struct {
	SessionID string   `json:"session_id"`
	NodeID    int      `json:"node_id"`
	Answers   []string `json:"answers"`
	History   []int    `json:"history"`
}

// Server exposes one session through a runner.Relay as an MCP server.
type Server struct {
	graph     *domain.Graph
	relay     *runner.Relay
	manager   *session.Manager
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithManager checkpoints the session after every message.
func WithManager(m *session.Manager) Option {
	return func(s *Server) {
		s.manager = m
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(g *domain.Graph, relay *runner.Relay, version string, opts ...Option) *Server {
	s := &Server{
		graph:     g,
		relay:     relay,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("chatbot-mcp", version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, e.g. for an in-process client.
func (s *Server) MCPServer() *server.MCPServer { return s.mcpServer }

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("send_message",
		mcp.WithDescription("Send a user message to the chatbot and return its replies."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The user message")),
		mcp.WithOutputSchema[MessageResult](),
	), mcp.NewStructuredToolHandler(s.handleSendMessage))

	s.mcpServer.AddTool(mcp.NewTool("current_node",
		mcp.WithDescription("Describe where the chatbot currently is in the dialogue."),
	), s.handleCurrentNode)

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get the full dialogue graph for introspection."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, err := json.Marshal(graph.NewView(s.graph))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode graph: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleSendMessage(ctx context.Context, request mcp.CallToolRequest, args SendMessageArgs) (MessageResult, error) {
	var result MessageResult
	err := s.relay.Do(func(sess *session.Session) error {
		err := s.relay.Dispatch(sess, args.Text)
		result.Replies = s.relay.Drain()
		if err != nil {
			return err
		}
		result.SessionID = sess.ID()
		result.NodeID = sess.CurrentNode().ID
		if s.manager != nil {
			if err := s.manager.Checkpoint(ctx, sess); err != nil {
				s.logger.Error("Checkpoint failed", "session_id", sess.ID(), "err", err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("MCP send_message failed", "err", err)
		return MessageResult{}, fmt.Errorf("send message: %w", err)
	}
	return result, nil
}

func (s *Server) handleCurrentNode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var pos Position
	err := s.relay.Do(func(sess *session.Session) error {
		node := sess.CurrentNode()
		if node == nil {
			return domain.ErrNoCurrentNode
		}
		pos = Position{
			SessionID: sess.ID(),
			NodeID:    node.ID,
			Answers:   node.Answers(),
			History:   sess.History(),
		}
		return nil
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	jsonBytes, _ := json.Marshal(pos)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(graphURI, "Dialogue Graph",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(graph.NewView(s.graph))
		if err != nil {
			return nil, fmt.Errorf("failed to encode graph: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: graphURI, MIMEType: "application/json", Text: string(jsonBytes)},
		}, nil
	})

	s.mcpServer.AddResource(mcp.NewResource(mermaidURI, "Dialogue Graph (Mermaid)",
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		var history []int
		_ = s.relay.Do(func(sess *session.Session) error {
			history = sess.History()
			return nil
		})
		text := graph.GenerateMermaid(s.graph, graph.OverlayFromHistory(history))
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: mermaidURI, MIMEType: "text/plain", Text: text},
		}, nil
	})
}
