package registry

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hss-gateway/internal/platform/config"
	"hss-gateway/internal/spml"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(url string) *Client {
	return NewClient(config.RegistryConfig{
		EndpointURL: url,
		Username:    "provuser",
		Password:    "provpass",
		Timeout:     5 * time.Second,
	}, testLogger())
}

func TestClientSendsSOAPHeaders(t *testing.T) {
	var got *http.Request
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		io.WriteString(w, "<ok/>")
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	resp, err := c.Do(context.Background(), "<envelope/>")
	require.NoError(t, err)
	assert.Equal(t, "<ok/>", resp)

	require.NotNil(t, got)
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "text/xml; charset=utf-8", got.Header.Get("Content-Type"))
	assert.Equal(t, `""`, got.Header.Get("SOAPAction"))
	assert.Equal(t, "<envelope/>", body)

	user, pass, ok := got.BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "provuser", user)
	assert.Equal(t, "provpass", pass)
}

func TestClientSkipsAuthWithoutCredentials(t *testing.T) {
	var hadAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _, hadAuth = r.BasicAuth()
	}))
	defer srv.Close()

	c := NewClient(config.RegistryConfig{EndpointURL: srv.URL, Timeout: 5 * time.Second}, testLogger())
	_, err := c.Do(context.Background(), "<envelope/>")
	require.NoError(t, err)
	assert.False(t, hadAuth)
}

func TestClientRejectsClientErrorStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusUnauthorized} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", status)
		}))

		c := newTestClient(srv.URL)
		_, err := c.Do(context.Background(), "<envelope/>")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "registry status")

		srv.Close()
	}
}

func TestClientReturnsServerErrorBody(t *testing.T) {
	body := `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Body>
    <spml:addResponse xmlns:spml="urn:siemens:names:prov:gw:SPML:2:0" result="failure">
      <errorMessage>subscriber already exists</errorMessage>
    </spml:addResponse>
  </soapenv:Body>
</soapenv:Envelope>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, body)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	got, err := c.Do(context.Background(), "<envelope/>")
	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestGatewayParsesRegistryFailureOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Body>
    <spml:addResponse xmlns:spml="urn:siemens:names:prov:gw:SPML:2:0" result="failure">
      <errorMessage>quota exceeded</errorMessage>
    </spml:addResponse>
  </soapenv:Body>
</soapenv:Envelope>`)
	}))
	defer srv.Close()

	g := NewGateway(newTestClient(srv.URL), testLogger())
	resp, err := g.Exchange(context.Background(), &spml.SearchRequest{
		SPMLNamespace: spml.Namespace,
		XSINamespace:  spml.XSINamespace,
		Version:       spml.Version,
	}, "tx-3")
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.False(t, resp.Success())
	assert.Equal(t, "quota exceeded", resp.ErrorMessage)
}

type stubTransport struct {
	reply string
	err   error
	sent  string
}

func (s *stubTransport) Do(_ context.Context, envelope string) (string, error) {
	s.sent = envelope
	return s.reply, s.err
}

func TestGatewayExchangeDecodesReply(t *testing.T) {
	stub := &stubTransport{reply: `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Body>
    <spml:deleteResponse xmlns:spml="urn:siemens:names:prov:gw:SPML:2:0" result="success">
      <version>HSS_SUBSCRIBER_v82</version>
    </spml:deleteResponse>
  </soapenv:Body>
</soapenv:Envelope>`}
	g := NewGateway(stub, testLogger())

	req := &spml.DeleteRequest{
		SPMLNamespace: spml.Namespace,
		DeleteScope:   spml.DeleteScopeAll,
		Execution:     spml.ExecutionSynchronous,
		Version:       spml.Version,
		ObjectClass:   spml.ObjectClass,
		Identifier:    "42",
	}
	resp, err := g.Exchange(context.Background(), req, "tx-1")
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.True(t, resp.Success())
	assert.Equal(t, "deleteResponse", resp.XMLName.Local)

	assert.Contains(t, stub.sent, "SOAP-ENV:Envelope")
	assert.Contains(t, stub.sent, "<identifier>42</identifier>")
}

func TestGatewayExchangeEmptyBodyIsFailure(t *testing.T) {
	stub := &stubTransport{reply: `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Body></soapenv:Body>
</soapenv:Envelope>`}
	g := NewGateway(stub, testLogger())

	resp, err := g.Exchange(context.Background(), &spml.SearchRequest{
		SPMLNamespace: spml.Namespace,
		XSINamespace:  spml.XSINamespace,
		Version:       spml.Version,
	}, "tx-2")
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.False(t, resp.Success())
}
