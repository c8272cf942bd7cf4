package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/wellwatch/internal/tracker"
)

// newEmptyServer creates a Server over an empty snapshot for use in tests.
func newEmptyServer() *Server {
	return NewServer(&staticSource{snap: &tracker.Snapshot{}}, Options{Location: time.UTC, Now: fixedNow})
}

// exchange feeds lines to s.Run and returns the response lines written
// before Run returned at EOF.
func exchange(t *testing.T, s *Server, lines ...string) []string {
	t.Helper()
	var input string
	if len(lines) > 0 {
		input = strings.Join(lines, "\n") + "\n"
	}
	in := strings.NewReader(input)
	var out bytes.Buffer
	if err := s.Run(context.Background(), in, &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	trimmed := strings.TrimSuffix(out.String(), "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}

// call sends one request and decodes the single response into v.
func call(t *testing.T, s *Server, req string, v any) string {
	t.Helper()
	resp := exchange(t, s, req)
	if len(resp) != 1 {
		t.Fatalf("expected 1 response line, got %d: %q", len(resp), resp)
	}
	if v != nil {
		if err := json.Unmarshal([]byte(resp[0]), v); err != nil {
			t.Fatalf("unmarshal response: %v\nresponse: %s", err, resp[0])
		}
	}
	return resp[0]
}

func TestRun_Initialize(t *testing.T) {
	var parsed struct {
		Result initializeResult `json:"result"`
	}
	resp := call(t, newEmptyServer(), `{"jsonrpc":"2.0","id":1,"method":"initialize"}`, &parsed)

	if parsed.Result.ProtocolVersion != protocolVersion {
		t.Errorf("protocolVersion = %q; response: %s", parsed.Result.ProtocolVersion, resp)
	}
	if parsed.Result.ServerInfo.Name != "wellwatch" {
		t.Errorf("serverInfo.name = %q; response: %s", parsed.Result.ServerInfo.Name, resp)
	}
	if _, ok := parsed.Result.Capabilities["tools"]; !ok {
		t.Errorf("expected tools capability; response: %s", resp)
	}
}

func TestRun_ToolsList(t *testing.T) {
	s := newEmptyServer()
	s.registerTool(toolDef{
		Name:        "test_tool",
		Description: "A test tool",
		InputSchema: json.RawMessage(`{"type":"object","properties":{}}`),
		Handler: func(context.Context, json.RawMessage) (any, error) {
			return map[string]string{"ok": "true"}, nil
		},
	})

	var parsed struct {
		Result struct {
			Tools []toolListEntry `json:"tools"`
		} `json:"result"`
	}
	resp := call(t, s, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`, &parsed)

	var names []string
	for _, tool := range parsed.Result.Tools {
		names = append(names, tool.Name)
		if len(tool.InputSchema) == 0 {
			t.Errorf("tool %s has no input schema; response: %s", tool.Name, resp)
		}
	}
	want := "get_streaks,get_recommendations,get_today,test_tool"
	if got := strings.Join(names, ","); got != want {
		t.Errorf("tools = %s, want %s", got, want)
	}
}

func TestRegisterTool_ReplacesByName(t *testing.T) {
	s := newEmptyServer()
	before := len(s.tools)
	s.registerTool(toolDef{
		Name: "get_today",
		Handler: func(context.Context, json.RawMessage) (any, error) {
			return "replaced", nil
		},
	})
	if len(s.tools) != before {
		t.Fatalf("expected %d tools after replacement, got %d", before, len(s.tools))
	}

	var parsed struct {
		Result toolsCallResult `json:"result"`
	}
	call(t, s, `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"get_today"}}`, &parsed)
	if parsed.Result.Content[0].Text != `"replaced"` {
		t.Errorf("expected replaced handler to run, got %s", parsed.Result.Content[0].Text)
	}
}

func TestRun_ProtocolErrors(t *testing.T) {
	tests := []struct {
		name string
		req  string
		code int
	}{
		{"unknown method", `{"jsonrpc":"2.0","id":3,"method":"nonexistent/method"}`, codeMethodNotFound},
		{"malformed json", `{"jsonrpc":`, codeParseError},
		{"bad call params", `{"jsonrpc":"2.0","id":4,"method":"tools/call","params":[1,2]}`, codeInvalidParams},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var parsed struct {
				Result any       `json:"result"`
				Error  *rpcError `json:"error"`
			}
			resp := call(t, newEmptyServer(), tt.req, &parsed)
			if parsed.Error == nil {
				t.Fatalf("expected error in response; response: %s", resp)
			}
			if parsed.Error.Code != tt.code {
				t.Errorf("code = %d, want %d; response: %s", parsed.Error.Code, tt.code, resp)
			}
			if parsed.Result != nil {
				t.Errorf("expected no result alongside error; response: %s", resp)
			}
		})
	}
}

func TestRun_ToolsCall(t *testing.T) {
	s := newEmptyServer()
	resp := exchange(t, s,
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"get_streaks"}}`,
		`{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"nope"}}`,
	)
	if len(resp) != 2 {
		t.Fatalf("expected 2 responses, got %d: %q", len(resp), resp)
	}

	var ok, unknown struct {
		Result toolsCallResult `json:"result"`
	}
	if err := json.Unmarshal([]byte(resp[0]), &ok); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ok.Result.IsError || len(ok.Result.Content) != 1 {
		t.Fatalf("unexpected result: %s", resp[0])
	}
	if !strings.Contains(ok.Result.Content[0].Text, `"date":"2026-10-15"`) {
		t.Errorf("expected today's date in result, got %s", ok.Result.Content[0].Text)
	}

	if err := json.Unmarshal([]byte(resp[1]), &unknown); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !unknown.Result.IsError || !strings.Contains(unknown.Result.Content[0].Text, "unknown tool: nope") {
		t.Errorf("expected isError for unknown tool: %s", resp[1])
	}
}

func TestRun_Ping(t *testing.T) {
	resp := call(t, newEmptyServer(), `{"jsonrpc":"2.0","id":6,"method":"ping"}`, nil)
	if resp != `{"jsonrpc":"2.0","id":6,"result":{}}` {
		t.Errorf("unexpected ping response: %s", resp)
	}
}

// Notifications carry no id and get no response; the ping after one must
// still be answered.
func TestRun_NotificationsGetNoResponse(t *testing.T) {
	resp := exchange(t, newEmptyServer(),
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":7,"method":"ping"}`,
	)
	if len(resp) != 1 || !strings.Contains(resp[0], `"id":7`) {
		t.Errorf("expected only the ping response, got %q", resp)
	}
}

func TestRun_ContextCancel(t *testing.T) {
	s := newEmptyServer()
	ctx, cancel := context.WithCancel(context.Background())

	pr, pw := io.Pipe()
	defer pw.Close()

	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, pr, io.Discard)
	}()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected Run to return nil on context cancel, got: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("Run did not return after context cancel")
	}
}

func TestRun_EOFClean(t *testing.T) {
	resp := exchange(t, newEmptyServer())
	if len(resp) != 0 {
		t.Errorf("expected no output for empty input, got %q", resp)
	}
}

func TestRun_LineTooLong(t *testing.T) {
	long := `{"jsonrpc":"2.0","id":8,"method":"ping","params":"` + strings.Repeat("x", maxLineBytes) + `"}`
	var out bytes.Buffer
	err := newEmptyServer().Run(context.Background(), strings.NewReader(long+"\n"), &out)
	if err == nil {
		t.Fatal("expected an error for an oversized line")
	}
}
