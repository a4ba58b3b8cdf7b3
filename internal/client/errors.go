package client

import "fmt"

// ErrAuth is returned when the identity service rejects the refresh token.
type ErrAuth struct {
	error
}

func NewErrAuth(reason string) *ErrAuth {
	return &ErrAuth{fmt.Errorf("refresh token rejected: %s", reason)}
}

// ErrMalformedResponse is returned when a required resource is missing from a
// response or cannot be read at all.
type ErrMalformedResponse struct {
	error
}

func NewErrMalformedResponse(resource string, reason string) *ErrMalformedResponse {
	return &ErrMalformedResponse{fmt.Errorf("malformed %s response: %s", resource, reason)}
}

// ErrWebhookDelivery is returned when the chat webhook does not accept the message.
type ErrWebhookDelivery struct {
	error
}

func NewErrWebhookDelivery(reason string) *ErrWebhookDelivery {
	return &ErrWebhookDelivery{fmt.Errorf("webhook delivery failed: %s", reason)}
}
