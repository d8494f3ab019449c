package slack

import (
	"strings"
	"testing"
	"time"

	"github.com/edunexa/academy-api/internal/observability/notify"
)

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatal("expected error when webhook url missing")
	}
}

func TestFormatMessageIncludesFields(t *testing.T) {
	client, err := NewClient(Config{
		WebhookURL: "https://hooks.slack.com/services/test",
		Channel:    "#admissions",
		Username:   "bot",
		Timeout:    time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := client.formatMessage(notify.InquiryPayload{
		InquiryID: "inq-123",
		Name:      "Priya Shah",
		Email:     "priya@example.com",
		Phone:     "555-0100",
		Subject:   "Course fees",
		Message:   "What are the fees for the summer batch?",
	})

	if msg["username"] != "bot" {
		t.Fatalf("expected username to be preserved, got %v", msg["username"])
	}
	if msg["channel"] != "#admissions" {
		t.Fatalf("expected channel to be set, got %v", msg["channel"])
	}

	text, ok := msg["text"].(string)
	if !ok {
		t.Fatalf("expected text field")
	}
	if !containsAll(
		text,
		[]string{"New contact inquiry", "inq-123", "Course fees", "Priya Shah", "priya@example.com", "555-0100", "summer batch"},
	) {
		t.Fatalf("message text missing fields: %s", text)
	}
}

func TestFormatMessageAdminLink(t *testing.T) {
	client, err := NewClient(Config{
		WebhookURL:     "https://hooks.slack.com/services/test",
		AdminURLPrefix: "https://academy.example.com/admin/inquiries",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := client.formatMessage(notify.InquiryPayload{
		InquiryID: "inq-123",
	})

	text, ok := msg["text"].(string)
	if !ok {
		t.Fatalf("expected text field")
	}

	expected := "<https://academy.example.com/admin/inquiries/inq-123|inq-123>"
	if !strings.Contains(text, expected) {
		t.Fatalf("expected inquiry link %q in text: %s", expected, text)
	}
}

func TestFormatMessageEscapesAndTruncates(t *testing.T) {
	client, err := NewClient(Config{
		WebhookURL: "https://hooks.slack.com/services/test",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := client.formatMessage(notify.InquiryPayload{
		InquiryID: "inq-1",
		Name:      "<script>",
		Message:   strings.Repeat("a", 400),
	})

	text, ok := msg["text"].(string)
	if !ok {
		t.Fatalf("expected text field")
	}
	if strings.Contains(text, "<script>") {
		t.Fatalf("expected angle brackets escaped: %s", text)
	}
	if !strings.Contains(text, "&lt;script&gt;") {
		t.Fatalf("expected escaped name in text: %s", text)
	}
	if strings.Contains(text, strings.Repeat("a", 400)) {
		t.Fatalf("expected long message truncated")
	}
	if !strings.Contains(text, "…") {
		t.Fatalf("expected truncation marker in text")
	}
}

func containsAll(s string, parts []string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
