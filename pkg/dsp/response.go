package dsp

import "fmt"

// ResponseData is the success envelope of an endpoint operation.
type ResponseData[T any] struct {
	Body   T
	Status int
	Method string
	URL    string
}

// DecodeResponseData decodes body with decode and wraps the result. A decode
// failure is returned as a ResponseError with StatusDecodeFailure.
func DecodeResponseData[T any](status int, method, url string, body []byte, decode func([]byte) (T, error)) (*ResponseData[T], error) {
	value, err := decode(body)
	if err != nil {
		return nil, &ResponseError{
			Status: StatusDecodeFailure,
			Method: method,
			URL:    url,
			Body:   body,
			Err:    fmt.Errorf("%w: %w", ErrDecode, err),
		}
	}

	return &ResponseData[T]{
		Body:   value,
		Status: status,
		Method: method,
		URL:    url,
	}, nil
}
