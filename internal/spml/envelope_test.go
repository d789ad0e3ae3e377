package spml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapSOAP(t *testing.T) {
	payload := `<?xml version="1.0" encoding="UTF-8"?>` +
		`<spml:searchRequest xmlns:spml="urn:siemens:names:prov:gw:SPML:2:0">` +
		`<version>HSS_SUBSCRIBER_v82</version></spml:searchRequest>`

	env, err := WrapSOAP(payload)
	require.NoError(t, err)

	assert.Contains(t, env, `<SOAP-ENV:Envelope xmlns:SOAP-ENV="http://schemas.xmlsoap.org/soap/envelope/">`)
	assert.Contains(t, env, `<SOAP-ENV:Header/>`)
	assert.Contains(t, env, `<SOAP-ENV:Body>`)
	assert.Contains(t, env, `<spml:searchRequest xmlns:spml="urn:siemens:names:prov:gw:SPML:2:0">`)
	assert.Contains(t, env, `<version>HSS_SUBSCRIBER_v82</version>`)
}

func TestWrapSOAPRejectsGarbage(t *testing.T) {
	_, err := WrapSOAP(`not xml at all <<<`)
	require.Error(t, err)
}

func TestExtractPayload(t *testing.T) {
	env := `<?xml version="1.0" encoding="UTF-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Header/>
  <soapenv:Body>
    <!-- registry reply -->
    <spml:searchResponse xmlns:spml="urn:siemens:names:prov:gw:SPML:2:0" result="success">
      <version>HSS_SUBSCRIBER_v82</version>
    </spml:searchResponse>
  </soapenv:Body>
</soapenv:Envelope>`

	payload, err := ExtractPayload(env)
	require.NoError(t, err)
	assert.Contains(t, payload, `<spml:searchResponse`)
	assert.Contains(t, payload, `result="success"`)
	assert.Contains(t, payload, `<version>HSS_SUBSCRIBER_v82</version>`)
}

func TestExtractPayloadEmptyBody(t *testing.T) {
	env := `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Body>
  </soapenv:Body>
</soapenv:Envelope>`

	payload, err := ExtractPayload(env)
	require.NoError(t, err)
	assert.Empty(t, payload)
}

func TestExtractPayloadMissingEnvelope(t *testing.T) {
	_, err := ExtractPayload(`<notSoap></notSoap>`)
	require.Error(t, err)
}

func TestWrapThenExtractRoundTrip(t *testing.T) {
	req := &DeleteRequest{
		SPMLNamespace:         Namespace,
		DeleteScope:           DeleteScopeAll,
		Execution:             ExecutionSynchronous,
		Language:              LanguageUS,
		ReturnResultingObject: ReturnResultingObject,
		Version:               Version,
		ObjectClass:           ObjectClass,
		Identifier:            "42",
	}
	payload, err := MarshalRequest(req)
	require.NoError(t, err)

	env, err := WrapSOAP(payload)
	require.NoError(t, err)

	extracted, err := ExtractPayload(env)
	require.NoError(t, err)
	assert.Contains(t, extracted, `<identifier>42</identifier>`)
	assert.Contains(t, extracted, `deleteScope="all"`)
}
