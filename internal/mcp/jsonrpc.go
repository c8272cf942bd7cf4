// Package mcp implements a Model Context Protocol server over stdio that
// exposes streaks, recommendations and today's summary as tools.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/blackwell-systems/wellwatch/internal/logging"
	"github.com/blackwell-systems/wellwatch/internal/recommend"
	"github.com/blackwell-systems/wellwatch/internal/tracker"
)

// Version is reported in the initialize handshake.
var Version = "0.1.0"

// protocolVersion is the MCP revision this server speaks.
const protocolVersion = "2024-11-05"

// JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

// maxLineBytes bounds a single request line.
const maxLineBytes = 1 << 20

// SnapshotSource loads the current records.
type SnapshotSource interface {
	LoadSnapshot(ctx context.Context) (*tracker.Snapshot, error)
}

// Options configures a Server.
type Options struct {
	// Location is the timezone calendar days are computed in.
	Location *time.Location
	// DefaultLimit caps get_recommendations when no limit is given.
	DefaultLimit int
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Server is an MCP stdio server. It reads JSON-RPC requests from r and
// writes JSON-RPC responses to w. Calls are dispatched to registered tools.
type Server struct {
	tools     []toolDef
	toolIndex map[string]int
	methods   map[string]methodHandler
	source    SnapshotSource
	engine    *recommend.Engine
	opts      Options
}

// toolDef describes a registered MCP tool.
type toolDef struct {
	Name        string
	Description string
	InputSchema json.RawMessage
	Handler     toolHandler
}

// toolHandler is the function signature for MCP tool handlers.
type toolHandler func(ctx context.Context, args json.RawMessage) (any, error)

// methodHandler answers one JSON-RPC method. A non-nil *rpcError becomes the
// response's error object.
type methodHandler func(ctx context.Context, params json.RawMessage) (any, *rpcError)

type rpcRequest struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Result  any              `json:"result,omitempty"`
	Error   *rpcError        `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type initializeResult struct {
	ProtocolVersion string         `json:"protocolVersion"`
	Capabilities    map[string]any `json:"capabilities"`
	ServerInfo      serverInfo     `json:"serverInfo"`
}

type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type toolsCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// toolsCallResult wraps a tool result as MCP text content. Tool failures
// are reported here with IsError set, not as protocol errors.
type toolsCallResult struct {
	Content []mcpContent `json:"content"`
	IsError bool         `json:"isError"`
}

type mcpContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type toolListEntry struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// NewServer constructs a Server reading records from source.
func NewServer(source SnapshotSource, opts Options) *Server {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Server{
		toolIndex: make(map[string]int),
		source:    source,
		engine:    recommend.NewEngine(),
		opts:      opts,
	}
	s.methods = map[string]methodHandler{
		"initialize": s.initialize,
		"ping":       s.ping,
		"tools/list": s.listTools,
		"tools/call": s.callTool,
	}
	addTools(s)
	return s
}

// registerTool adds a tool. Registering a name twice replaces the earlier
// definition in place.
func (s *Server) registerTool(def toolDef) {
	if i, ok := s.toolIndex[def.Name]; ok {
		s.tools[i] = def
		return
	}
	s.toolIndex[def.Name] = len(s.tools)
	s.tools = append(s.tools, def)
}

// Run reads newline-delimited JSON-RPC 2.0 messages from r and writes one
// response line per request to w. It returns nil when ctx is cancelled or
// r reaches EOF, and the read error otherwise.
func (s *Server) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	bw := bufio.NewWriter(w)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lines := make(chan string)
	errCh := make(chan error, 1)

	go func() {
		defer close(lines)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			errCh <- err
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-errCh:
					return err
				default:
					return nil
				}
			}
			resp, ok := s.handle(ctx, line)
			if !ok {
				continue
			}
			if err := writeLine(bw, resp); err != nil {
				return err
			}
		}
	}
}

// handle decodes one line and dispatches it. ok is false for notifications,
// which get no response.
func (s *Server) handle(ctx context.Context, line string) (resp rpcResponse, ok bool) {
	resp.JSONRPC = "2.0"

	var req rpcRequest
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		resp.Error = &rpcError{Code: codeParseError, Message: "Parse error"}
		return resp, true
	}
	if req.ID == nil {
		logging.FromContext(ctx).Debug("mcp notification", "method", req.Method)
		return resp, false
	}
	resp.ID = req.ID

	method, found := s.methods[req.Method]
	if !found {
		resp.Error = &rpcError{Code: codeMethodNotFound, Message: "Method not found"}
		return resp, true
	}
	resp.Result, resp.Error = method(ctx, req.Params)
	return resp, true
}

func (s *Server) initialize(context.Context, json.RawMessage) (any, *rpcError) {
	return initializeResult{
		ProtocolVersion: protocolVersion,
		Capabilities:    map[string]any{"tools": map[string]any{}},
		ServerInfo:      serverInfo{Name: "wellwatch", Version: Version},
	}, nil
}

func (s *Server) ping(context.Context, json.RawMessage) (any, *rpcError) {
	return struct{}{}, nil
}

func (s *Server) listTools(context.Context, json.RawMessage) (any, *rpcError) {
	entries := make([]toolListEntry, 0, len(s.tools))
	for _, t := range s.tools {
		entries = append(entries, toolListEntry{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		})
	}
	return map[string]any{"tools": entries}, nil
}

func (s *Server) callTool(ctx context.Context, raw json.RawMessage) (any, *rpcError) {
	var params toolsCallParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, &rpcError{Code: codeInvalidParams, Message: "Invalid params"}
	}

	i, found := s.toolIndex[params.Name]
	if !found {
		return textResult(fmt.Sprintf("unknown tool: %s", params.Name), true), nil
	}
	tool := s.tools[i]

	args := params.Arguments
	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}

	start := time.Now()
	result, err := tool.Handler(ctx, args)
	if err != nil {
		logging.FromContext(ctx).Debug("mcp tool failed", "tool", tool.Name, "err", err)
		return textResult(err.Error(), true), nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return textResult(err.Error(), true), nil
	}
	logging.FromContext(ctx).Debug("mcp tool call", "tool", tool.Name, "elapsed", time.Since(start))
	return textResult(string(data), false), nil
}

func textResult(text string, isError bool) toolsCallResult {
	return toolsCallResult{
		Content: []mcpContent{{Type: "text", Text: text}},
		IsError: isError,
	}
}

// writeLine marshals resp as a single JSON line and flushes.
func writeLine(bw *bufio.Writer, resp rpcResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if _, err := bw.Write(data); err != nil {
		return err
	}
	return bw.Flush()
}
