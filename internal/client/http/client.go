package client

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/tupyy/editor-heartbeat/internal/entity"
	"github.com/tupyy/editor-heartbeat/internal/scheduler"
	"golang.org/x/net/http2"
)

const (
	heartbeatPath = "/api/heartbeat"
	apiKeyParam   = "api_key"
)

// transportWrapper is a wrapper for transport. It can be used as a middleware.
type transportWrapper func(http.RoundTripper) http.RoundTripper

type Client struct {
	// userAgent is sent with every request
	userAgent string

	transportWrappers []transportWrapper

	// client makes the actual requests. There is no timeout: transport defaults apply.
	client *http.Client
}

// New creates a client sending heartbeats with the given user agent.
func New(userAgent string) (*Client, error) {
	transportWrappers := make([]transportWrapper, 0, 1)
	logWrapper := &logTransportWrapper{}
	transportWrappers = append(transportWrappers, logWrapper.Wrap)

	c := &Client{
		userAgent:         userAgent,
		transportWrappers: transportWrappers,
	}

	transport, err := c.createTransport()
	if err != nil {
		return nil, err
	}

	c.client = &http.Client{Transport: transport}

	return c, nil
}

// UserAgent returns the user agent of the client.
func UserAgent(pluginVersion, operatingSystem, editor string) string {
	return fmt.Sprintf("wakatime/%s (%s) editor-heartbeat/%s %s", pluginVersion, operatingSystem, pluginVersion, editor)
}

// PostHeartbeat sends the heartbeat in background and returns immediately.
// The returned future is resolved with the server acknowledgement or with the error.
func (c *Client) PostHeartbeat(ctx context.Context, heartbeat entity.Heartbeat, creds entity.Credentials) *scheduler.Future[entity.HeartbeatResult] {
	request, err := c.newHeartbeatRequest(ctx, heartbeat, creds)
	if err != nil {
		return scheduler.NewResolvedFuture(entity.HeartbeatResult{Error: err})
	}

	ch := make(chan entity.HeartbeatResult, 1)
	future := scheduler.NewFuture(ch)

	go func() {
		defer close(ch)

		response, err := c.send(request)
		ch <- entity.HeartbeatResult{Value: response, Error: err}
	}()

	return future
}

func (c *Client) newHeartbeatRequest(ctx context.Context, heartbeat entity.Heartbeat, creds entity.Credentials) (*http.Request, error) {
	u, err := heartbeatURL(creds)
	if err != nil {
		return nil, err
	}

	request, err := newRequestBuilder().
		Url(u).
		Body([]heartbeatModel{heartbeatEntity2Model(heartbeat)}).
		Header("Content-Type", "application/json").
		Header("Authorization", basicAuth(creds.APIKey)).
		Header("X-Machine-Name", heartbeat.Machine).
		Header("User-Agent", c.userAgent).
		Build(ctx)

	if err != nil {
		return nil, fmt.Errorf("cannot create heartbeat request '%w'", err)
	}

	return request, nil
}

func (c *Client) send(request *http.Request) (entity.HeartbeatResponse, error) {
	response, err := c.client.Do(request)
	if err != nil {
		return entity.HeartbeatResponse{}, fmt.Errorf("cannot send heartbeat '%w'", redactError(err))
	}

	data, err := extractData(response)
	if err != nil {
		return entity.HeartbeatResponse{}, err
	}

	return heartbeatResponseModel2Entity(data), nil
}

func (c *Client) createTransport() (http.RoundTripper, error) {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
	}

	if err := http2.ConfigureTransport(t); err != nil {
		return nil, fmt.Errorf("cannot configure http2 transport '%w'", err)
	}

	var result http.RoundTripper = t

	// call the other wrappers backwards
	for i := len(c.transportWrappers) - 1; i >= 0; i-- {
		result = c.transportWrappers[i](result)
	}

	return result, nil
}

func heartbeatURL(creds entity.Credentials) (string, error) {
	base, err := url.Parse(strings.TrimRight(creds.BaseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid base url '%w'", err)
	}

	base.Path += heartbeatPath

	q := base.Query()
	q.Set(apiKeyParam, creds.APIKey)
	base.RawQuery = q.Encode()

	return base.String(), nil
}

func basicAuth(apiKey string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(apiKey))
}

// redactError removes the api key from url errors.
func redactError(err error) error {
	urlErr, ok := err.(*url.Error)
	if !ok {
		return err
	}

	return &url.Error{Op: urlErr.Op, URL: redactURL(urlErr.URL), Err: urlErr.Err}
}
