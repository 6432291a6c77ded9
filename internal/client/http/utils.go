package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	// ErrMalformedResponse is returned when the body of the response cannot be understood.
	ErrMalformedResponse = errors.New("malformed response")
)

// ServerError is the error reported by the server in the response body or by its status code.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error. code: %d", e.StatusCode)
	}
	return fmt.Sprintf("server error. code: %d message: %s", e.StatusCode, e.Message)
}

// extractData reads the response body as a message response and returns its data.
func extractData(response *http.Response) (heartbeatResponseModel, error) {
	var result heartbeatResponseModel

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return result, fmt.Errorf("cannot read response body '%w'", err)
	}
	defer response.Body.Close()

	var message messageResponse[heartbeatResponseModel]
	if err := json.Unmarshal(data, &message); err != nil {
		if response.StatusCode >= 400 {
			return result, ServerError{StatusCode: response.StatusCode}
		}
		return result, fmt.Errorf("%w: cannot unmarshal body '%s'", ErrMalformedResponse, err)
	}

	if message.Error != nil {
		return result, ServerError{StatusCode: response.StatusCode, Message: *message.Error}
	}

	if response.StatusCode >= 400 {
		return result, ServerError{StatusCode: response.StatusCode}
	}

	if message.Data == nil {
		return result, fmt.Errorf("%w: data is missing", ErrMalformedResponse)
	}

	return *message.Data, nil
}
