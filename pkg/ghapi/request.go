package ghapi

import (
	"encoding/json"
	"net/url"
	"slices"
	"strings"
)

// Header is a single request header. Order is preserved when a backend
// builds its native request.
type Header struct {
	Name  string
	Value string
}

// RequestEnvelope is the backend-neutral description of one request.
// Endpoint code builds it and hands it to a Caller. Its methods never modify
// the receiver; WithHeader and WithBody return copies.
type RequestEnvelope struct {
	URI     string
	Method  string
	Headers []Header
	// Body holds a UTF-8 JSON document, or nil when the request has no body.
	Body []byte
}

// NewRequest creates an envelope with no extra headers and no body.
func NewRequest(method, uri string) *RequestEnvelope {
	return &RequestEnvelope{URI: uri, Method: method}
}

// WithHeader returns a copy of the envelope with an extra header appended.
func (r *RequestEnvelope) WithHeader(name, value string) *RequestEnvelope {
	cp := r.clone()
	cp.Headers = append(cp.Headers, Header{Name: name, Value: value})

	return cp
}

// WithBody returns a copy of the envelope carrying body.
func (r *RequestEnvelope) WithBody(body []byte) *RequestEnvelope {
	cp := r.clone()
	cp.Body = slices.Clone(body)

	return cp
}

// HeaderValue returns the last value set for name, matched case-insensitively.
func (r *RequestEnvelope) HeaderValue(name string) string {
	for i := len(r.Headers) - 1; i >= 0; i-- {
		if strings.EqualFold(r.Headers[i].Name, name) {
			return r.Headers[i].Value
		}
	}

	return ""
}

func (r *RequestEnvelope) clone() *RequestEnvelope {
	return &RequestEnvelope{
		URI:     r.URI,
		Method:  r.Method,
		Headers: slices.Clone(r.Headers),
		Body:    r.Body,
	}
}

// EncodeBody serializes model as the JSON body of a request.
func EncodeBody(model any) ([]byte, error) {
	data, err := json.Marshal(model)
	if err != nil {
		return nil, &SerializationError{Err: err}
	}

	return data, nil
}

// BuildURI joins base and path and attaches the encoded query.
func BuildURI(base, path string, query url.Values) (string, error) {
	u, err := url.Parse(strings.TrimRight(base, "/") + path)
	if err != nil {
		return "", &URLEncodingError{Err: err}
	}

	if u.Scheme == "" || u.Host == "" {
		return "", &URLEncodingError{Err: &url.Error{Op: "parse", URL: base, Err: ErrNoHostInURL}}
	}

	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	return u.String(), nil
}
