package httpx

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ledgerline/invoiceflow/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingBody flags whether anything ever read from it.
type recordingBody struct {
	reader io.Reader
	read   bool
	closed bool
}

func (b *recordingBody) Read(p []byte) (int, error) {
	b.read = true
	return b.reader.Read(p)
}

func (b *recordingBody) Close() error {
	b.closed = true
	return nil
}

// stubTransport serves canned responses without a network.
type stubTransport struct {
	response *http.Response
	err      error
}

func (t *stubTransport) RoundTrip(_ *http.Request) (*http.Response, error) {
	if t.err != nil {
		return nil, t.err
	}
	return t.response, nil
}

func TestSendTypedDecodesJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"token":"abc","unknown_field":42}`))
	}))
	defer server.Close()

	client := NewClient(Config{})

	type tokenResponse struct {
		Token string `json:"token"`
	}

	req, err := NewRequest(http.MethodPost, server.URL).Build()
	require.NoError(t, err)

	resp, err := SendTyped[tokenResponse](context.Background(), client, req)
	require.NoError(t, err)
	assert.Equal(t, "abc", resp.Token)
}

func TestSendTypedMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"token":`))
	}))
	defer server.Close()

	client := NewClient(Config{})

	req, err := NewRequest(http.MethodGet, server.URL).Build()
	require.NoError(t, err)

	_, err = SendTyped[map[string]string](context.Background(), client, req)
	var decodeErr *common.DecodeError
	require.ErrorAs(t, err, &decodeErr)
}

type requiredToken struct {
	Token string `json:"token"`
}

func (r requiredToken) Validate() error {
	if r.Token == "" {
		return errors.New("token is required")
	}
	return nil
}

func TestSendTypedMissingRequiredField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(Config{})

	req, err := NewRequest(http.MethodPost, server.URL).Build()
	require.NoError(t, err)

	_, err = SendTyped[requiredToken](context.Background(), client, req)
	var decodeErr *common.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Contains(t, decodeErr.Error(), "token is required")
}

func TestSendNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("bad credentials"))
	}))
	defer server.Close()

	client := NewClient(Config{})

	req, err := NewRequest(http.MethodPost, server.URL).Build()
	require.NoError(t, err)

	_, err = client.Send(context.Background(), req)
	var apiErr *common.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "bad credentials", apiErr.Body)
}

func TestSendTransportFailure(t *testing.T) {
	client := NewClient(Config{})

	// Reserved TEST-NET address; nothing listens there.
	req, err := NewRequest(http.MethodGet, "http://192.0.2.1:9/").Build()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.Send(ctx, req)
	var transportErr *common.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.MethodGet, transportErr.Method)
}

func TestSendTypedUnitSkipsBody(t *testing.T) {
	body := &recordingBody{reader: strings.NewReader(`{"ignored":"payload"}`)}
	client := NewClient(Config{
		Transport: &stubTransport{
			response: &http.Response{
				StatusCode: http.StatusOK,
				Header:     make(http.Header),
				Body:       body,
			},
		},
	})

	req, err := NewRequest(http.MethodPost, "https://example.com/auth").Build()
	require.NoError(t, err)

	_, err = SendTyped[Unit](context.Background(), client, req)
	require.NoError(t, err)

	assert.False(t, body.read, "unit response body must not be read")
	assert.True(t, body.closed, "response body must be closed")
}

func TestSendTypedUnitPropagatesAPIError(t *testing.T) {
	body := &recordingBody{reader: strings.NewReader("bad credentials")}
	client := NewClient(Config{
		Transport: &stubTransport{
			response: &http.Response{
				StatusCode: http.StatusUnauthorized,
				Header:     make(http.Header),
				Body:       body,
			},
		},
	})

	req, err := NewRequest(http.MethodPost, "https://example.com/auth").Build()
	require.NoError(t, err)

	_, err = SendTyped[Unit](context.Background(), client, req)
	var apiErr *common.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "bad credentials", apiErr.Body)
}

func TestBuildRejectsRelativeURL(t *testing.T) {
	_, err := NewRequest(http.MethodGet, "/relative/path").Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absolute")
}

func TestSendAttachesJSONBody(t *testing.T) {
	var received string
	var contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		received = string(raw)
		contentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(Config{})

	req, err := NewRequest(http.MethodPost, server.URL).
		Body(map[string]any{"category": "Debet", "records": 50}).
		Build()
	require.NoError(t, err)

	_, err = client.Send(context.Background(), req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"category":"Debet","records":50}`, received)
	assert.Equal(t, "application/json", contentType)
}
