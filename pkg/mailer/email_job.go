package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending
// email. The API publishes one per verification challenge; the worker
// renders the template and delivers through Mailgun.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "verification_challenge"
	Data     map[string]any `json:"data,omitempty"`
}

// TemplateVerificationChallenge carries a short-lived answer code the
// user types back to prove control of the address. Data keys: "answer",
// "purpose", "expires_minutes".
const TemplateVerificationChallenge = "verification_challenge"
