package log

import (
	"fmt"
	"net/http"
	"time"

	"github.com/kubev2v/sddcinfo/pkg/requestid"
	"go.uber.org/zap"
)

// Transport wraps an http.RoundTripper and logs every outgoing request once completed.
// Query strings are not logged.
func Transport(l *zap.Logger, name string, next http.RoundTripper) http.RoundTripper {
	if l == nil {
		panic("log.Transport received a nil *zap.Logger")
	}
	if next == nil {
		next = http.DefaultTransport
	}

	return &loggingTransport{
		logger: l.WithOptions(zap.AddCallerSkip(1)).Named(name),
		next:   next,
	}
}

type loggingTransport struct {
	logger *zap.Logger
	next   http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t1 := time.Now()
	resp, err := t.next.RoundTrip(req)
	latency := time.Since(t1)

	fields := []zap.Field{
		zap.String("type", "http_request"),
		zap.String("request_id", requestid.FromContext(req.Context())),
		zap.String("http_method", req.Method),
		zap.String("http_host", req.URL.Host),
		zap.String("http_path", req.URL.Path),
		zap.Duration("latency", latency),
	}

	msg := fmt.Sprintf("HTTP request completed: %s", req.URL.Path)

	if err != nil {
		t.logger.Warn(msg, append(fields, zap.Error(err))...)
		return resp, err
	}

	fields = append(fields,
		zap.Int("http_status_code", resp.StatusCode),
		zap.String("http_status_text", statusLabel(resp.StatusCode)),
	)

	switch {
	case resp.StatusCode >= 500:
		t.logger.Warn(msg, fields...)
	default:
		t.logger.Debug(msg, fields...)
	}

	return resp, nil
}

func statusLabel(status int) string {
	switch {
	case status >= 100 && status < 300:
		return fmt.Sprintf("%d OK", status)
	case status >= 300 && status < 400:
		return fmt.Sprintf("%d Redirect", status)
	case status >= 400 && status < 500:
		return fmt.Sprintf("%d Client Error", status)
	case status >= 500:
		return fmt.Sprintf("%d Server Error", status)
	default:
		return fmt.Sprintf("%d Unknown", status)
	}
}
