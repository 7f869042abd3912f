package mailer

import (
	"strings"
	"testing"
)

func TestRenderVerificationChallenge(t *testing.T) {
	subject, text, html, err := Render(TemplateVerificationChallenge, map[string]any{
		"answer":          "Ab_1-z",
		"purpose":         "create-auth-token",
		"expires_minutes": "15",
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if subject == "" {
		t.Fatalf("empty subject")
	}
	for _, body := range []string{text, html} {
		if !strings.Contains(body, "Ab_1-z") {
			t.Fatalf("answer missing from body:\n%s", body)
		}
		if !strings.Contains(body, "15") {
			t.Fatalf("expiry missing from body:\n%s", body)
		}
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, _, _, err := Render("no-such-template", nil); err == nil {
		t.Fatalf("expected error for unknown template")
	}
}
