package ghapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
)

// fakeResponse is a blocking-style response view over an in-memory body.
type fakeResponse struct {
	mu       sync.Mutex
	status   int
	header   http.Header
	body     []byte
	consumed bool
	closed   bool
}

func newFakeResponse(status int, body string) *fakeResponse {
	return &fakeResponse{status: status, header: http.Header{}, body: []byte(body)}
}

func (r *fakeResponse) IsSuccess() bool           { return ghapi.IsSuccessStatus(r.status) }
func (r *fakeResponse) StatusCode() int           { return r.status }
func (r *fakeResponse) Header(name string) string { return r.header.Get(name) }

func (r *fakeResponse) ToJSON(v any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.consumed {
		return ghapi.ErrBodyConsumed
	}

	r.consumed = true

	return json.Unmarshal(r.body, v)
}

func (r *fakeResponse) ToJSONAsync(context.Context, any) error {
	return ghapi.ErrUnimplemented
}

func (r *fakeResponse) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true

	return nil
}

// fakeAdapter records built envelopes and replays canned responses.
type fakeAdapter struct {
	mu        sync.Mutex
	built     []*ghapi.RequestEnvelope
	responses []*fakeResponse
	err       error
}

func (a *fakeAdapter) Build(env *ghapi.RequestEnvelope) (*ghapi.RequestEnvelope, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.built = append(a.built, env)

	return env, nil
}

func (a *fakeAdapter) Fetch(context.Context, *ghapi.RequestEnvelope) (ghapi.Response, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.err != nil {
		return nil, a.err
	}

	resp := a.responses[0]
	a.responses = a.responses[1:]

	return resp, nil
}

func (a *fakeAdapter) FetchAsync(ctx context.Context, req *ghapi.RequestEnvelope) *ghapi.Future[ghapi.Response] {
	return ghapi.NewFuture(ctx, func(ctx context.Context) (ghapi.Response, error) {
		return a.Fetch(ctx, req)
	})
}

func (a *fakeAdapter) FromJSON(model any) ([]byte, error) {
	return json.Marshal(model)
}

// recordingLogger captures log calls.
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

func (l *recordingLogger) add(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, logEntry{level: level, msg: msg, fields: fields})
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) { l.add("debug", msg, fields) }
func (l *recordingLogger) Info(msg string, fields map[string]interface{})  { l.add("info", msg, fields) }
func (l *recordingLogger) Warn(msg string, fields map[string]interface{})  { l.add("warn", msg, fields) }
func (l *recordingLogger) Error(msg string, fields map[string]interface{}) { l.add("error", msg, fields) }

func (l *recordingLogger) messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e.msg)
	}

	return out
}
