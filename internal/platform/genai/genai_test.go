package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClient_GenerateContent(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"hello"}]}}]}`))
	}))
	defer srv.Close()

	client := NewClient(Config{
		APIKey:     "test-key",
		Model:      "test-model",
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
	})

	raw, err := client.GenerateContent(context.Background(), "analyze this", "application/pdf", []byte("%PDF-1.4"))
	if err != nil {
		t.Fatalf("GenerateContent() error: %v", err)
	}

	if gotPath != "/v1beta/models/test-model:generateContent" {
		t.Errorf("request path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api key = %q", gotKey)
	}
	if len(gotBody.Contents) != 1 || len(gotBody.Contents[0].Parts) != 2 {
		t.Fatalf("unexpected request shape: %+v", gotBody)
	}
	if gotBody.Contents[0].Parts[0].Text != "analyze this" {
		t.Errorf("prompt = %q", gotBody.Contents[0].Parts[0].Text)
	}
	inline := gotBody.Contents[0].Parts[1].InlineData
	if inline == nil || inline.MimeType != "application/pdf" || inline.Data == "" {
		t.Errorf("inline data = %+v", inline)
	}

	if text := ExtractText(raw); text != "hello" {
		t.Errorf("ExtractText() = %q, want %q", text, "hello")
	}
}

func TestClient_GenerateContent_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: srv.URL, HTTPClient: srv.Client()})
	_, err := client.GenerateContent(context.Background(), "p", "image/png", []byte("img"))
	if err == nil {
		t.Fatal("expected error for non-200 reply")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error %q does not mention the status code", err)
	}
}

func TestClient_FetchDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("document bytes"))
	}))
	defer srv.Close()

	client := NewClient(Config{HTTPClient: srv.Client()})
	data, err := client.FetchDocument(context.Background(), srv.URL+"/raw/u1/report.pdf")
	if err != nil {
		t.Fatalf("FetchDocument() error: %v", err)
	}
	if string(data) != "document bytes" {
		t.Errorf("FetchDocument() = %q", data)
	}
}

func TestClient_FetchDocument_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	client := NewClient(Config{HTTPClient: srv.Client()})
	if _, err := client.FetchDocument(context.Background(), srv.URL+"/missing"); err == nil {
		t.Fatal("expected error for 404 document")
	}
}

func TestExtractText_Shapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "candidates with multiple parts",
			raw:  `{"candidates":[{"content":{"parts":[{"text":"part one "},{"text":"part two"}]}}]}`,
			want: "part one part two",
		},
		{
			name: "output list",
			raw:  `{"output":[{"content":[{"text":"from output"}]}]}`,
			want: "from output",
		},
		{
			name: "response list",
			raw:  `{"response":[{"content":[{"text":"from response"}]}]}`,
			want: "from response",
		},
		{
			name: "bare text field",
			raw:  `{"text":"bare"}`,
			want: "bare",
		},
		{
			name: "root array",
			raw:  `[{"text":"array root"}]`,
			want: "array root",
		},
		{
			name: "plain string",
			raw:  `"just a string"`,
			want: "just a string",
		},
		{
			name: "unknown shape",
			raw:  `{"something":"else"}`,
			want: "",
		},
		{
			name: "not json",
			raw:  `<html>error</html>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractText([]byte(tt.raw)); got != tt.want {
				t.Errorf("ExtractText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no fences", in: `{"a":1}`, want: `{"a":1}`},
		{name: "json fence", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "bare fence", in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "fence without newline", in: "```{\"a\":1}```", want: `{"a":1}`},
		{name: "surrounding whitespace", in: "  ```json\n{\"a\":1}\n```  ", want: `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFences(tt.in); got != tt.want {
				t.Errorf("StripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
