package notifier

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"homework-notifier/model"
)

const EmojiMemo = "📝"

// Ntfy publishes messages to an ntfy.sh topic.
type Ntfy struct {
	baseURL string
	topic   string
	client  *http.Client
}

func NewNtfy(baseURL, topic string) *Ntfy {
	return &Ntfy{
		baseURL: strings.TrimRight(baseURL, "/"),
		topic:   topic,
		client:  &http.Client{Timeout: sendTimeout},
	}
}

func (n *Ntfy) Notify(ctx context.Context, text string) error {
	return n.Send(ctx, &model.Notification{
		Topic:   n.topic,
		Title:   EmojiMemo + " Homework status changed",
		Tags:    []string{"homework"},
		Message: text,
	})
}

func (n *Ntfy) Send(ctx context.Context, ntf *model.Notification) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/"+ntf.Topic,
		strings.NewReader(ntf.Message))
	if err != nil {
		return fmt.Errorf("can't create request to NTFY: %w", err)
	}

	req.Header.Set("Content-Type", "text/plain")
	if ntf.Title != "" {
		req.Header.Set("Title", ntf.Title)
	}
	if len(ntf.Tags) > 0 {
		req.Header.Set("Tags", strings.Join(ntf.Tags, ","))
	}
	if ntf.Priority != 0 {
		req.Header.Set("Priority", strconv.Itoa(ntf.Priority))
	} else {
		req.Header.Set("Priority", "3")
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("can't send request to NTFY: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("NTFY error response: %s: %s", resp.Status, strings.TrimSpace(string(bodyBytes)))
	}

	slog.Debug("notification sent to NTFY", slog.String("topic", ntf.Topic))
	return nil
}
