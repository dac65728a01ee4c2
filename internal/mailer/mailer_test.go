package mailer

import (
	"bufio"
	"bytes"
	"context"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"yamdb/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmationMessage(t *testing.T) {
	msg, err := ConfirmationMessage("noreply@yamdb.local", "alice@example.com", "<alice>", "abc-123")
	require.NoError(t, err)

	assert.Equal(t, []string{"alice@example.com"}, msg.To)
	assert.Equal(t, confirmationSubject, msg.Subject)
	assert.Contains(t, msg.Body, "abc-123")
	assert.Contains(t, msg.Body, "&lt;alice&gt;", "username must be escaped")
	assert.Contains(t, msg.ContentType, "text/html")
}

func TestLogMailer_Send(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(slog.New(slog.NewTextHandler(&buf, nil)))

	err := m.Send(context.Background(), &Message{From: "a@x", To: []string{"b@x"}, Subject: "hi", Body: "code"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "subject=hi")
	assert.Contains(t, buf.String(), "to=b@x")
}

func TestMessageValidate(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
	}{
		{"no sender", Message{To: []string{"b@x"}, Subject: "s"}},
		{"no recipient", Message{From: "a@x", Subject: "s"}},
		{"no subject", Message{From: "a@x", To: []string{"b@x"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, NewLogMailer(nil).Send(context.Background(), &tt.msg))
		})
	}
}

func TestNew(t *testing.T) {
	m, err := New(&config.Config{EmailBackend: "console"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &LogMailer{}, m)

	m, err = New(&config.Config{EmailBackend: "smtp", SMTPHost: "smtp.example.com"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &SMTPMailer{}, m)

	_, err = New(&config.Config{EmailBackend: "fax"}, nil)
	assert.Error(t, err)
}

// fakeSMTP accepts one plain-text session and returns the DATA payload.
func fakeSMTP(t *testing.T) (addr string, data <-chan string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	out := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		r := bufio.NewReader(conn)
		reply := func(s string) { conn.Write([]byte(s + "\r\n")) }

		reply("220 fake ESMTP")
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			cmd := strings.ToUpper(strings.TrimSpace(line))
			switch {
			case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
				reply("250 fake")
			case strings.HasPrefix(cmd, "MAIL"), strings.HasPrefix(cmd, "RCPT"):
				reply("250 OK")
			case cmd == "DATA":
				reply("354 end with <CRLF>.<CRLF>")
				var body strings.Builder
				for {
					l, err := r.ReadString('\n')
					if err != nil {
						return
					}
					if l == ".\r\n" {
						break
					}
					body.WriteString(l)
				}
				out <- body.String()
				reply("250 OK")
			case cmd == "QUIT":
				reply("221 bye")
				return
			default:
				reply("502 not implemented")
			}
		}
	}()
	return ln.Addr().String(), out
}

func TestSMTPMailer_Send(t *testing.T) {
	addr, data := fakeSMTP(t)
	host, portStr, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	port, err := net.LookupPort("tcp", portStr)
	require.NoError(t, err)

	m := NewSMTPMailer(SMTPConfig{Host: host, Port: port})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = m.Send(ctx, &Message{From: "noreply@yamdb.local", To: []string{"alice@example.com"}, Subject: "code", Body: "abc-123"})
	require.NoError(t, err)

	select {
	case payload := <-data:
		assert.Contains(t, payload, "Subject: code")
		assert.Contains(t, payload, "abc-123")
	case <-time.After(5 * time.Second):
		t.Fatal("smtp server received no data")
	}
}
