//go:build integration

package mock

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
)

// ApiMock is an httptest server standing in for the upstream records API. Responses
// are keyed by method+path; unset paths answer 200 with an empty array.
type ApiMock struct {
	mu              sync.Mutex
	headersReceived map[string][]http.Header
	responseMap     map[string]any
	responseStatus  map[string]int
	server          *httptest.Server
}

func NewApiServer() *ApiMock {
	return &ApiMock{
		headersReceived: map[string][]http.Header{},
		responseMap:     map[string]any{},
		responseStatus:  map[string]int{},
	}
}

func (a *ApiMock) Start() {
	a.server = httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				key := r.Method + r.URL.Path

				a.mu.Lock()
				a.headersReceived[key] = append(a.headersReceived[key], r.Header.Clone())
				status, ok := a.responseStatus[key]
				if !ok {
					status = http.StatusOK
				}
				body, ok := a.responseMap[key]
				if !ok {
					body = []any{}
				}
				a.mu.Unlock()

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				_ = json.NewEncoder(w).Encode(body)
			},
		),
	)
}

func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

func (a *ApiMock) GetUrl() string {
	return a.server.URL
}

// SetResponse sets the status and JSON body served for method+path.
func (a *ApiMock) SetResponse(method, path string, status int, response any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responseMap[method+path] = response
	a.responseStatus[method+path] = status
}

// RequestCount returns how many requests were received for method+path.
func (a *ApiMock) RequestCount(method, path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.headersReceived[method+path])
}

// GetRequestHeaders returns the headers of the index-th request for method+path.
func (a *ApiMock) GetRequestHeaders(method, path string, index int) http.Header {
	a.mu.Lock()
	defer a.mu.Unlock()
	received := a.headersReceived[method+path]
	if index < 0 || index >= len(received) {
		return nil
	}
	return received[index]
}

// Reset forgets every configured response and received request.
func (a *ApiMock) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.headersReceived = map[string][]http.Header{}
	a.responseMap = map[string]any{}
	a.responseStatus = map[string]int{}
}
