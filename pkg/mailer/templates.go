package mailer

import (
	"bytes"
	"fmt"
	htmltmpl "html/template"
	texttmpl "text/template"
)

const challengeSubject = "Your verification code"

const challengeText = `Hi,

Your verification code is: {{.answer}}

Enter it within {{.expires_minutes}} minutes to continue ({{.purpose}}).

If you did not request this, you can ignore this email.
`

const challengeHTML = `<html><body>
<p>Hi,</p>
<p>Your verification code is: <strong>{{.answer}}</strong></p>
<p>Enter it within {{.expires_minutes}} minutes to continue ({{.purpose}}).</p>
<p>If you did not request this, you can ignore this email.</p>
</body></html>`

var (
	challengeTextTmpl = texttmpl.Must(texttmpl.New("challenge_text").Parse(challengeText))
	challengeHTMLTmpl = htmltmpl.Must(htmltmpl.New("challenge_html").Parse(challengeHTML))
)

// Render produces subject, text, and html bodies for a named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case TemplateVerificationChallenge:
		var tb, hb bytes.Buffer
		if err = challengeTextTmpl.Execute(&tb, data); err != nil {
			return "", "", "", err
		}
		if err = challengeHTMLTmpl.Execute(&hb, data); err != nil {
			return "", "", "", err
		}
		return challengeSubject, tb.String(), hb.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
}
