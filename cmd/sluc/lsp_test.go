package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/mgomes/sluc/sluc"
)

const hoverSource = "int square(int n) { return n * n; }\nint main() { print(square(2)); }\n"

func TestRunCLIStartsLSPAndExitsOnEOF(t *testing.T) {
	origStdin := os.Stdin
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close write pipe: %v", err)
	}
	os.Stdin = r
	defer func() {
		os.Stdin = origStdin
		_ = r.Close()
	}()

	if err := runCLI([]string{"sluc", "lsp"}); err != nil {
		t.Fatalf("runCLI lsp failed: %v", err)
	}
}

func TestDiagnosticsForSourceWithoutErrors(t *testing.T) {
	engine := sluc.MustNewEngine(sluc.Config{})
	diags := diagnosticsForSource(engine, "int main() {\n  print(1);\n}\n")
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %d", len(diags))
	}
}

func TestDiagnosticsForSourceWithParseError(t *testing.T) {
	engine := sluc.MustNewEngine(sluc.Config{})
	diags := diagnosticsForSource(engine, "int main() {\n  int x;\n  x = ;\n}\n")
	if len(diags) == 0 {
		t.Fatalf("expected diagnostics for invalid source")
	}
	first := diags[0]
	if first["severity"] != 1 {
		t.Fatalf("expected severity 1, got %#v", first["severity"])
	}
	if first["code"] != string(sluc.CodeUnexpectedToken) {
		t.Fatalf("unexpected code %#v", first["code"])
	}
	if line := diagnosticLine(t, first); line != 2 {
		t.Fatalf("expected zero-based line 2, got %d", line)
	}
	message, ok := first["message"].(string)
	if !ok || !strings.HasPrefix(message, "parse: ") {
		t.Fatalf("unexpected diagnostic message, got %#v", first["message"])
	}
}

func TestDiagnosticsForSourceReportsEveryTypeError(t *testing.T) {
	engine := sluc.MustNewEngine(sluc.Config{})
	diags := diagnosticsForSource(engine, "int main() {\n  bool b = 1;\n  int x = true;\n}\n")
	if len(diags) != 2 {
		t.Fatalf("expected two diagnostics, got %d", len(diags))
	}
	for i, want := range []int{1, 2} {
		if line := diagnosticLine(t, diags[i]); line != want {
			t.Fatalf("diagnostic %d: expected line %d, got %d", i, want, line)
		}
		if diags[i]["code"] != string(sluc.CodeIncompatibleAssignment) {
			t.Fatalf("diagnostic %d: unexpected code %#v", i, diags[i]["code"])
		}
	}
}

func TestCompletionItemsAreSortedAndCategorized(t *testing.T) {
	items := completionItems(hoverSource)
	if len(items) == 0 {
		t.Fatalf("expected completion items")
	}

	labels := make([]string, 0, len(items))
	for _, item := range items {
		label, ok := item["label"].(string)
		if !ok {
			t.Fatalf("unexpected completion label: %#v", item["label"])
		}
		labels = append(labels, label)
	}
	if !slices.IsSorted(labels) {
		t.Fatalf("expected sorted completion labels, got %v", labels)
	}

	keyword := findCompletionItem(t, items, "while")
	if keyword["detail"] != "keyword" {
		t.Fatalf("expected keyword detail, got %#v", keyword["detail"])
	}
	if keyword["kind"] != 14 {
		t.Fatalf("expected keyword kind 14, got %#v", keyword["kind"])
	}

	function := findCompletionItem(t, items, "square")
	if function["detail"] != "int square(int n)" {
		t.Fatalf("expected function signature detail, got %#v", function["detail"])
	}
	if function["kind"] != 3 {
		t.Fatalf("expected function kind 3, got %#v", function["kind"])
	}
}

func TestHandleMessageDidOpenPublishesDiagnostics(t *testing.T) {
	server := &lspServer{
		engine: sluc.MustNewEngine(sluc.Config{}),
		docs:   make(map[string]string),
	}
	params := map[string]any{
		"textDocument": map[string]any{
			"uri":  "file:///tmp/test.sluc",
			"text": "int main() {\n  x = 1;\n}\n",
		},
	}
	payload, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}

	messages := server.handleMessage(lspInboundMessage{
		JSONRPC: "2.0",
		Method:  "textDocument/didOpen",
		Params:  payload,
	})
	if len(messages) != 1 {
		t.Fatalf("expected one publishDiagnostics notification, got %d", len(messages))
	}
	if messages[0].Method != "textDocument/publishDiagnostics" {
		t.Fatalf("unexpected method: %q", messages[0].Method)
	}
	paramsMap, ok := messages[0].Params.(map[string]any)
	if !ok {
		t.Fatalf("unexpected params payload: %#v", messages[0].Params)
	}
	diags, ok := paramsMap["diagnostics"].([]map[string]any)
	if !ok {
		t.Fatalf("unexpected diagnostics payload: %#v", paramsMap["diagnostics"])
	}
	if len(diags) != 1 || diags[0]["code"] != string(sluc.CodeUndeclaredIdentifier) {
		t.Fatalf("expected one undeclared identifier diagnostic, got %v", diags)
	}
}

func TestHandleMessageDidCloseForgetsDocument(t *testing.T) {
	server := &lspServer{
		engine: sluc.MustNewEngine(sluc.Config{}),
		docs:   map[string]string{"file:///tmp/test.sluc": hoverSource},
	}
	payload, err := json.Marshal(map[string]any{
		"textDocument": map[string]any{"uri": "file:///tmp/test.sluc"},
	})
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}

	messages := server.handleMessage(lspInboundMessage{
		JSONRPC: "2.0",
		Method:  "textDocument/didClose",
		Params:  payload,
	})
	if len(messages) != 0 {
		t.Fatalf("expected no response, got %d", len(messages))
	}
	if _, ok := server.docs["file:///tmp/test.sluc"]; ok {
		t.Fatalf("expected closed document to be dropped")
	}
}

func TestHandleMessageHoverShowsFunctionSignature(t *testing.T) {
	value := hoverAt(t, 1, 21)
	if !strings.Contains(value, "int square(int n)") {
		t.Fatalf("expected function signature in hover value, got %q", value)
	}
	if !strings.Contains(value, "declared at 1:1") {
		t.Fatalf("expected declaration position in hover value, got %q", value)
	}
}

func TestHandleMessageHoverClassifiesKeywords(t *testing.T) {
	value := hoverAt(t, 1, 14)
	if !strings.Contains(value, "`print`") || !strings.Contains(value, "keyword") {
		t.Fatalf("expected keyword classification in hover value, got %q", value)
	}
}

func TestHandleMessageUnknownRequest(t *testing.T) {
	server := &lspServer{engine: sluc.MustNewEngine(sluc.Config{}), docs: make(map[string]string)}
	messages := server.handleMessage(lspInboundMessage{JSONRPC: "2.0", ID: rawID("7"), Method: "workspace/symbol"})
	if len(messages) != 1 || messages[0].Error == nil || messages[0].Error.Code != -32601 {
		t.Fatalf("expected method not found error, got %#v", messages)
	}
	if notes := server.handleMessage(lspInboundMessage{JSONRPC: "2.0", Method: "$/cancelRequest"}); len(notes) != 0 {
		t.Fatalf("notifications must not be answered, got %#v", notes)
	}
}

func TestServeAnswersFramedRequests(t *testing.T) {
	var input bytes.Buffer
	writeFrame(t, &input, map[string]any{"jsonrpc": "2.0", "id": 1, "method": "initialize", "params": map[string]any{}})
	writeFrame(t, &input, map[string]any{"jsonrpc": "2.0", "id": 2, "method": "shutdown"})
	writeFrame(t, &input, map[string]any{"jsonrpc": "2.0", "method": "exit"})

	var output bytes.Buffer
	server := &lspServer{
		reader: bufio.NewReader(&input),
		writer: bufio.NewWriter(&output),
		engine: sluc.MustNewEngine(sluc.Config{}),
		docs:   make(map[string]string),
	}
	if err := server.serve(); err != nil {
		t.Fatalf("serve failed: %v", err)
	}

	out := output.String()
	if strings.Count(out, "Content-Length: ") != 2 {
		t.Fatalf("expected two framed responses, got %q", out)
	}
	if !strings.Contains(out, `"hoverProvider":true`) || !strings.Contains(out, `"name":"sluc-lsp"`) {
		t.Fatalf("unexpected initialize response: %q", out)
	}
}

func TestReadPayloadRequiresContentLength(t *testing.T) {
	server := &lspServer{reader: bufio.NewReader(strings.NewReader("X-Other: 1\r\n\r\n{}"))}
	if _, err := server.readPayload(); err == nil || !strings.Contains(err.Error(), "missing Content-Length") {
		t.Fatalf("expected missing header error, got %v", err)
	}
}

func TestWordAtPosition(t *testing.T) {
	source := "int main() {\n  print(square(2));\n}\n"
	if word := wordAtPosition(source, 1, 10); word != "square" {
		t.Fatalf("expected square, got %q", word)
	}
	if word := wordAtPosition(source, 1, 7); word != "print" {
		t.Fatalf("expected word before cursor, got %q", word)
	}
	if word := wordAtPosition(source, 5, 0); word != "" {
		t.Fatalf("expected no word past the end, got %q", word)
	}
}

func TestWordAtPositionUsesUTF16CharacterOffsets(t *testing.T) {
	source := "😀😀x y\n"
	word := wordAtPosition(source, 0, 4)
	if word != "x" {
		t.Fatalf("expected x, got %q", word)
	}
}

func hoverAt(t *testing.T, line, character int) string {
	t.Helper()
	server := &lspServer{
		engine: sluc.MustNewEngine(sluc.Config{}),
		docs: map[string]string{
			"file:///tmp/test.sluc": hoverSource,
		},
	}
	params := map[string]any{
		"textDocument": map[string]any{
			"uri": "file:///tmp/test.sluc",
		},
		"position": map[string]any{
			"line":      line,
			"character": character,
		},
	}
	payload, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}

	messages := server.handleMessage(lspInboundMessage{
		JSONRPC: "2.0",
		ID:      rawID("1"),
		Method:  "textDocument/hover",
		Params:  payload,
	})
	if len(messages) != 1 {
		t.Fatalf("expected one response, got %d", len(messages))
	}
	result, ok := messages[0].Result.(map[string]any)
	if !ok {
		t.Fatalf("unexpected hover result: %#v", messages[0].Result)
	}
	contents, ok := result["contents"].(map[string]any)
	if !ok {
		t.Fatalf("unexpected hover contents: %#v", result["contents"])
	}
	value, ok := contents["value"].(string)
	if !ok {
		t.Fatalf("unexpected hover value: %#v", contents["value"])
	}
	return value
}

func diagnosticLine(t *testing.T, diag map[string]any) int {
	t.Helper()
	rng, ok := diag["range"].(map[string]any)
	if !ok {
		t.Fatalf("unexpected range %#v", diag["range"])
	}
	start, ok := rng["start"].(map[string]any)
	if !ok {
		t.Fatalf("unexpected range start %#v", rng["start"])
	}
	line, ok := start["line"].(int)
	if !ok {
		t.Fatalf("unexpected line %#v", start["line"])
	}
	return line
}

func writeFrame(t *testing.T, buf *bytes.Buffer, msg map[string]any) {
	t.Helper()
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal frame: %v", err)
	}
	fmt.Fprintf(buf, "Content-Length: %d\r\n\r\n%s", len(data), data)
}

func rawID(value string) *json.RawMessage {
	raw := json.RawMessage(value)
	return &raw
}

func findCompletionItem(t *testing.T, items []map[string]any, label string) map[string]any {
	t.Helper()
	for _, item := range items {
		itemLabel, ok := item["label"].(string)
		if ok && itemLabel == label {
			return item
		}
	}
	t.Fatalf("missing completion item %q", label)
	return nil
}
