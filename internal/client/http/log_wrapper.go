package client

import (
	"bytes"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

const redacted = "REDACTED"

// logTransportWrapper logs requests and responses at debug level.
// The api key is never logged.
type logTransportWrapper struct {
	next http.RoundTripper
}

func (l *logTransportWrapper) Wrap(transport http.RoundTripper) http.RoundTripper {
	return &logTransportWrapper{
		next: transport,
	}
}

func (l *logTransportWrapper) RoundTrip(request *http.Request) (response *http.Response, err error) {
	if !zap.L().Core().Enabled(zap.DebugLevel) {
		return l.next.RoundTrip(request)
	}

	// Read the complete body in memory, in order to send it to the log, and replace it with a
	// reader that reads it from memory:
	var body []byte
	if request.Body != nil {
		body, err = io.ReadAll(request.Body)
		if err != nil {
			return
		}

		err = request.Body.Close()
		if err != nil {
			return
		}

		request.Body = io.NopCloser(bytes.NewReader(body))
	}
	l.logRequest(request, body)

	response, err = l.next.RoundTrip(request)
	if err != nil {
		return
	}

	body = nil
	if response.Body != nil {
		body, err = io.ReadAll(response.Body)
		if err != nil {
			return
		}

		err = response.Body.Close()
		if err != nil {
			return
		}

		response.Body = io.NopCloser(bytes.NewReader(body))
	}
	l.logResponse(response, body)

	return
}

func (l *logTransportWrapper) logRequest(request *http.Request, body []byte) {
	zap.S().Debugw("heartbeat request",
		"method", request.Method,
		"url", redactURL(request.URL.String()),
		"header", redactHeader(request.Header),
		"body", string(body),
	)
}

func (l *logTransportWrapper) logResponse(response *http.Response, body []byte) {
	zap.S().Debugw("heartbeat response",
		"protocol", response.Proto,
		"status", response.Status,
		"body", string(body),
	)
}

func redactHeader(header http.Header) http.Header {
	h := header.Clone()
	if h.Get("Authorization") != "" {
		h.Set("Authorization", redacted)
	}
	return h
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	q := u.Query()
	if q.Has(apiKeyParam) {
		q.Set(apiKeyParam, redacted)
		u.RawQuery = q.Encode()
	}

	return u.String()
}
