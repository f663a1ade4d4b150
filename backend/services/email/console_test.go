package emailsvc

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/backend/config"
)

func TestConsoleServiceRecordsSentMail(t *testing.T) {
	cfg := &config.Config{MailFromName: "Learning Portal", MailFromAddr: "no-reply@example.com"}
	svc := NewConsoleService(cfg, log.New(io.Discard, "", 0)).(*consoleService)

	err := svc.Send(Message{
		ToName:   "Ada Lovelace",
		ToAddr:   "ada@example.com",
		Subject:  "Welcome to the learning portal",
		TextBody: "Hi Ada",
	})
	require.NoError(t, err)

	sent := svc.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "ada@example.com", sent[0].ToAddr)
	assert.Equal(t, "Welcome to the learning portal", sent[0].Subject)
}

func TestNewPicksConsoleWithoutAPIKey(t *testing.T) {
	logger := log.New(io.Discard, "", 0)

	_, isConsole := New(&config.Config{}, logger).(*consoleService)
	assert.True(t, isConsole)

	_, isSendgrid := New(&config.Config{SendgridAPIKey: "SG.x"}, logger).(*sendgridService)
	assert.True(t, isSendgrid)
}
