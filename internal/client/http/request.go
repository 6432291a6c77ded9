package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type RequestBuilder struct {
	method string
	body   interface{}
	url    string
	header map[string]string
}

func newRequestBuilder() *RequestBuilder {
	return &RequestBuilder{
		method: http.MethodPost,
		header: make(map[string]string),
	}
}

func (rb *RequestBuilder) Url(url string) *RequestBuilder {
	rb.url = url
	return rb
}

func (rb *RequestBuilder) Body(b interface{}) *RequestBuilder {
	rb.body = b
	return rb
}

func (rb *RequestBuilder) Header(key, value string) *RequestBuilder {
	rb.header[key] = value
	return rb
}

func (rb *RequestBuilder) Build(ctx context.Context) (*http.Request, error) {
	var body io.Reader
	if rb.body != nil {
		payload, err := json.Marshal(rb.body)
		if err != nil {
			return nil, fmt.Errorf("cannot marshal '%+v' '%w'", rb.body, err)
		}

		body = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, rb.method, rb.url, body)
	if err != nil {
		return nil, fmt.Errorf("cannot create request '%w'", redactError(err))
	}

	for k, v := range rb.header {
		request.Header.Set(k, v)
	}

	return request, nil
}
