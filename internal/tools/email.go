// Package tools holds the prompt builders behind the generation endpoints.
// Each builder is an ordinary typed function returning instruction text for
// the generative model; there is no dynamic dispatch because each is used in
// exactly one place.
package tools

import (
	"fmt"
	"strings"
)

// EmailParams describes the email to draft.
type EmailParams struct {
	SenderRole        string
	ReceiverRole      string
	Purpose           string
	Tone              string // defaults to "professional"
	AdditionalContext string
}

// emailFormatContract fixes the output layout so the response can be parsed
// into subject/greeting/body/closing sections.
const emailFormatContract = `You are a professional email writing assistant.

When generating emails, always format your response like this:
SUBJECT: [subject line]
GREETING: [greeting]
BODY: [email body - can be multiple paragraphs]
CLOSING: [closing and signature]

Make the email clear, professional, and appropriate for the given context.`

// EmailPrompt renders the instruction text for drafting an email.
func EmailPrompt(p EmailParams) string {
	tone := p.Tone
	if tone == "" {
		tone = "professional"
	}

	var b strings.Builder
	b.WriteString(emailFormatContract)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Write a %s email from a %s to a %s.\n\nPurpose: %s\n", tone, p.SenderRole, p.ReceiverRole, p.Purpose)
	if p.AdditionalContext != "" {
		fmt.Fprintf(&b, "Additional context: %s\n", p.AdditionalContext)
	}
	b.WriteString("\nGenerate a complete professional email.")
	return b.String()
}

// Email is a parsed generated email.
type Email struct {
	Subject  string `json:"subject"`
	Greeting string `json:"greeting"`
	Body     string `json:"body"`
	Closing  string `json:"closing"`
}

// ParseEmail splits a model response into its labelled sections. Missing
// sections fall back to sensible defaults, with the full response as body.
func ParseEmail(content string) Email {
	email := Email{
		Subject:  "Generated Email",
		Greeting: "Dear Recipient,",
		Body:     content,
		Closing:  "Best regards,",
	}

	if v, ok := section(content, "SUBJECT:", "GREETING:"); ok {
		email.Subject = v
	}
	if v, ok := section(content, "GREETING:", "BODY:"); ok {
		email.Greeting = v
	}
	if v, ok := section(content, "BODY:", "CLOSING:"); ok {
		email.Body = v
	}
	if v, ok := section(content, "CLOSING:", ""); ok {
		email.Closing = v
	}
	return email
}

// Render joins the sections back into a complete email text.
func (e Email) Render() string {
	return fmt.Sprintf("%s\n\n%s\n\n%s\n\n%s", e.Subject, e.Greeting, e.Body, e.Closing)
}

// section extracts the text between a label and the next label (or the end of
// the content when next is empty).
func section(content, label, next string) (string, bool) {
	start := strings.Index(content, label)
	if start < 0 {
		return "", false
	}
	start += len(label)
	rest := content[start:]
	if next != "" {
		if end := strings.Index(rest, next); end >= 0 {
			rest = rest[:end]
		}
	}
	value := strings.TrimSpace(rest)
	if value == "" {
		return "", false
	}
	return value, true
}
