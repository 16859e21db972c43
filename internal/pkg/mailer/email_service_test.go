package mailer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent  []*gomail.Message
	err   error
	delay time.Duration
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

func TestSendHTML(t *testing.T) {
	d := &fakeDialer{}
	svc := newEmailService(d, "bot@example.com", "SmarterStarts")

	err := svc.SendHTML(context.Background(), "admin@example.com", "Hello", "<p>hi</p>")
	require.NoError(t, err)
	require.Len(t, d.sent, 1)

	m := d.sent[0]
	assert.Equal(t, []string{"admin@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Hello"}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	assert.True(t, strings.Contains(buf.String(), "<p>hi</p>"))
}

func TestSendHTMLErrors(t *testing.T) {
	tests := []struct {
		name    string
		to      string
		dialer  *fakeDialer
		timeout time.Duration
		wantIs  error
	}{
		{"no recipient", "", &fakeDialer{}, time.Second, ErrNoRecipient},
		{"relay failure", "a@example.com", &fakeDialer{err: errors.New("535 auth")}, time.Second, nil},
		{"deadline", "a@example.com", &fakeDialer{delay: 200 * time.Millisecond}, 10 * time.Millisecond, context.DeadlineExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newEmailService(tt.dialer, "bot@example.com", "")
			ctx, cancel := context.WithTimeout(context.Background(), tt.timeout)
			defer cancel()

			err := svc.SendHTML(ctx, tt.to, "s", "b")
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
		})
	}
}
