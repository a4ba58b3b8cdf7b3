package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/kubev2v/sddcinfo/internal/client"
)

const (
	exitGeneric   = 1
	exitAuth      = 2
	exitMalformed = 3
	exitWebhook   = 4
	exitCanceled  = 130
)

type exitError struct {
	code   int
	err    error
	silent bool
}

func (e *exitError) Error() string {
	if e == nil {
		return ""
	}
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit %d", e.code)
}

func (e *exitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// classifyError maps the fatal errors of a run to their exit code.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var (
		authErr      *client.ErrAuth
		malformedErr *client.ErrMalformedResponse
		webhookErr   *client.ErrWebhookDelivery
	)
	switch {
	case errors.Is(err, context.Canceled):
		return err
	case errors.As(err, &authErr):
		return &exitError{code: exitAuth, err: err}
	case errors.As(err, &malformedErr):
		return &exitError{code: exitMalformed, err: err}
	case errors.As(err, &webhookErr):
		return &exitError{code: exitWebhook, err: err}
	default:
		return &exitError{code: exitGeneric, err: err}
	}
}
