package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTelegram_Notify(t *testing.T) {
	var gotPath string
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":1700000000,"chat":{"id":42,"type":"private"},"text":"hi"}}`))
	}))
	defer server.Close()

	tg, err := NewTelegram(server.URL, "123:abc", "42")
	if err != nil {
		t.Fatalf("NewTelegram: %v", err)
	}
	if err := tg.Notify(context.Background(), "hi"); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	if gotPath != "/bot123:abc/sendMessage" {
		t.Errorf("path = %q", gotPath)
	}
	if got["chat_id"] != "42" {
		t.Errorf("chat_id = %v", got["chat_id"])
	}
	if got["text"] != "hi" {
		t.Errorf("text = %v", got["text"])
	}
}

func TestTelegram_Notify_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
	}))
	defer server.Close()

	tg, err := NewTelegram(server.URL, "123:abc", "42")
	if err != nil {
		t.Fatalf("NewTelegram: %v", err)
	}
	if err := tg.Notify(context.Background(), "hi"); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewTelegram_EmptyToken(t *testing.T) {
	if _, err := NewTelegram("http://localhost", " ", "42"); err == nil {
		t.Error("expected error for empty token")
	}
	if _, err := NewTelegram("http://localhost", "123:abc", ""); err == nil {
		t.Error("expected error for empty chat id")
	}
}

func TestNtfy_Notify(t *testing.T) {
	var gotPath, gotBody, gotTags, gotPriority string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotTags = r.Header.Get("Tags")
		gotPriority = r.Header.Get("Priority")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
	}))
	defer server.Close()

	n := NewNtfy(server.URL+"/", "homework")
	if err := n.Notify(context.Background(), "status changed"); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	if gotPath != "/homework" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody != "status changed" {
		t.Errorf("body = %q", gotBody)
	}
	if gotTags != "homework" {
		t.Errorf("tags = %q", gotTags)
	}
	if gotPriority != "3" {
		t.Errorf("priority = %q", gotPriority)
	}
}

func TestNtfy_Notify_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic is reserved", http.StatusForbidden)
	}))
	defer server.Close()

	err := NewNtfy(server.URL, "homework").Notify(context.Background(), "x")
	if err == nil || !strings.Contains(err.Error(), "topic is reserved") {
		t.Fatalf("unexpected error: %v", err)
	}
}

type recorder struct {
	texts []string
	err   error
}

func (r *recorder) Notify(_ context.Context, text string) error {
	r.texts = append(r.texts, text)
	return r.err
}

func TestMulti_DeliversToAll(t *testing.T) {
	errBoom := errors.New("boom")
	first := &recorder{err: errBoom}
	second := &recorder{}

	err := Multi{first, second}.Notify(context.Background(), "hello")
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if len(second.texts) != 1 || second.texts[0] != "hello" {
		t.Errorf("second channel got %v", second.texts)
	}
}
