package tools

import (
	"strings"
	"testing"
)

func TestEmailPrompt(t *testing.T) {
	got := EmailPrompt(EmailParams{
		SenderRole:        "project manager",
		ReceiverRole:      "client",
		Purpose:           "announce a delivery delay",
		AdditionalContext: "delay is two weeks",
	})

	for _, want := range []string{
		"SUBJECT:",
		"professional email from a project manager to a client",
		"Purpose: announce a delivery delay",
		"Additional context: delay is two weeks",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestEmailPromptDefaultTone(t *testing.T) {
	got := EmailPrompt(EmailParams{SenderRole: "a", ReceiverRole: "b", Purpose: "c"})
	if !strings.Contains(got, "Write a professional email") {
		t.Error("empty tone should default to professional")
	}

	got = EmailPrompt(EmailParams{SenderRole: "a", ReceiverRole: "b", Purpose: "c", Tone: "friendly"})
	if !strings.Contains(got, "Write a friendly email") {
		t.Error("explicit tone not applied")
	}
}

func TestParseEmail(t *testing.T) {
	content := `SUBJECT: Delivery update
GREETING: Dear client,
BODY: The delivery slips by two weeks.

We apologize for the inconvenience.
CLOSING: Best regards,
The team`

	email := ParseEmail(content)
	if email.Subject != "Delivery update" {
		t.Errorf("Subject = %q", email.Subject)
	}
	if email.Greeting != "Dear client," {
		t.Errorf("Greeting = %q", email.Greeting)
	}
	if !strings.Contains(email.Body, "slips by two weeks") || !strings.Contains(email.Body, "apologize") {
		t.Errorf("Body = %q", email.Body)
	}
	if !strings.HasPrefix(email.Closing, "Best regards,") {
		t.Errorf("Closing = %q", email.Closing)
	}
}

func TestParseEmailUnstructured(t *testing.T) {
	content := "Just a plain reply with no labels."
	email := ParseEmail(content)

	if email.Subject != "Generated Email" {
		t.Errorf("Subject = %q, want default", email.Subject)
	}
	if email.Body != content {
		t.Errorf("Body = %q, want full content", email.Body)
	}
}

func TestEmailRender(t *testing.T) {
	email := Email{Subject: "S", Greeting: "G", Body: "B", Closing: "C"}
	if got := email.Render(); got != "S\n\nG\n\nB\n\nC" {
		t.Errorf("Render() = %q", got)
	}
}

func TestCaptionPrompt(t *testing.T) {
	if got := CaptionPrompt(""); !strings.Contains(got, "Generate a concise caption") {
		t.Errorf("default style not applied: %q", got)
	}
	if got := CaptionPrompt("funny"); !strings.Contains(got, "Generate a funny caption") {
		t.Errorf("explicit style not applied: %q", got)
	}
}

func TestCSVPrompt(t *testing.T) {
	got := CSVPrompt(CSVParams{CSVData: "a,b\n1,2", Question: "what is the sum of b?"})
	if !strings.Contains(got, "CSV Data:\na,b\n1,2") {
		t.Errorf("prompt missing data: %q", got)
	}
	if !strings.Contains(got, "Question: what is the sum of b?") {
		t.Errorf("prompt missing question: %q", got)
	}
}

func TestSummarizeCSV(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantRows int
		wantCols []string
	}{
		{"simple", "name, age\nann,30\nbob,41", 2, []string{"name", "age"}},
		{"blank lines ignored", "a,b\n\n1,2\n\n", 1, []string{"a", "b"}},
		{"header only", "a,b", 0, []string{"a", "b"}},
		{"empty", "", 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SummarizeCSV(tt.data)
			if got.TotalRows != tt.wantRows {
				t.Errorf("TotalRows = %d, want %d", got.TotalRows, tt.wantRows)
			}
			if len(got.Columns) != len(tt.wantCols) {
				t.Fatalf("Columns = %v, want %v", got.Columns, tt.wantCols)
			}
			for i := range tt.wantCols {
				if got.Columns[i] != tt.wantCols[i] {
					t.Errorf("Columns[%d] = %q, want %q", i, got.Columns[i], tt.wantCols[i])
				}
			}
		})
	}
}
