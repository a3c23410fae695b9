package mailer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/metinatakli/afisha/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderConfirmationMessage(t *testing.T) {
	m := NewSMTPMailer("localhost", 2525, "", "", "Afisha <no-reply@afisha.local>")

	data := map[string]any{
		"orderID": "a1b2c3",
		"daytime": "2024-06-28 10:00",
		"total":   "700",
		"tickets": []domain.Ticket{
			{Row: 1, Seat: 3, Price: decimal.NewFromInt(350)},
			{Row: 1, Seat: 4, Price: decimal.NewFromInt(350)},
		},
	}

	msg, err := m.newMessage("viewer@example.com", "order_confirmation.tmpl", data)
	require.NoError(t, err)

	assert.Equal(t, []string{"viewer@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Your Afisha tickets, order a1b2c3"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)

	body := buf.String()
	assert.True(t, strings.Contains(body, "row 1, seat 3: 350"), "body does not list the first ticket")
	assert.True(t, strings.Contains(body, "Total: 700"), "body does not contain the total")
}

func TestUnknownTemplate(t *testing.T) {
	m := NewSMTPMailer("localhost", 2525, "", "", "Afisha <no-reply@afisha.local>")

	_, err := m.newMessage("viewer@example.com", "missing.tmpl", nil)
	assert.Error(t, err)
}
