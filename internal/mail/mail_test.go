package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doccenter/internal/logging"
)

func TestLogMailer_Send(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(logging.New(&buf, time.UTC))

	err := m.Send(context.Background(), Message{
		To:      []string{"john@example.com"},
		Subject: "Document Request for Tax Preparation",
		Body:    "Dear John",
	})
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "mail_sent", entry["msg"])
	assert.Equal(t, "john@example.com", entry["to"])
	assert.Equal(t, float64(9), entry["body_bytes"])
}

func TestLogMailer_NoRecipients(t *testing.T) {
	m := NewLogMailer(logging.New(&bytes.Buffer{}, time.UTC))
	assert.ErrorIs(t, m.Send(context.Background(), Message{}), ErrNoRecipients)
}
