package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplatesIncludeDetails(t *testing.T) {
	subject, body := WelcomeEmail("Steel Co")
	assert.Equal(t, "Welcome to Reclaim Market", subject)
	assert.Contains(t, body, "Steel Co")

	subject, body = OrderPlacedEmail("Reclaimed Steel Beams")
	assert.Equal(t, "New Order Received", subject)
	assert.Contains(t, body, "Reclaimed Steel Beams")

	_, body = OrderRejectedEmail("Fly Ash")
	assert.Contains(t, body, "rejected")

	_, body = OrderCancelledEmail("Fly Ash")
	assert.Contains(t, body, "administrator")

	subject, body = PaymentVerifiedEmail("400.00")
	assert.Equal(t, "Payment Received", subject)
	assert.Contains(t, body, "400.00")
}
