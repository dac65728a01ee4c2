package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

const confirmationSubject = "YaMDb confirmation code"

var confirmationTemplate = template.Must(template.New("confirmation").Parse(
	`<p>Hello, {{.Username}}!</p>
<p>Your confirmation code: <b>{{.Code}}</b></p>
<p>Exchange it for an access token at POST /api/v1/auth/token/.</p>
`))

// ConfirmationMessage builds the signup email carrying code.
func ConfirmationMessage(from, to, username, code string) (*Message, error) {
	var buf bytes.Buffer
	data := struct{ Username, Code string }{Username: username, Code: code}
	if err := confirmationTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render confirmation email: %w", err)
	}
	return &Message{
		From:        from,
		To:          []string{to},
		Subject:     confirmationSubject,
		Body:        buf.String(),
		ContentType: "text/html; charset=UTF-8",
	}, nil
}
