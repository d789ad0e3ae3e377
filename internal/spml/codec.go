package spml

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>`

var cdataPattern = regexp.MustCompile(`<!\[CDATA\[([^\]]+)\]\]>`)

// MarshalRequest serializes a request graph to its wire form, including
// the XML declaration.
func MarshalRequest(req any) (string, error) {
	body, err := xml.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal spml request: %w", err)
	}
	return xmlHeader + string(body), nil
}

// Normalize rewrites a raw registry payload so the decoder can consume
// it: vendor xsi:type attributes become plain type attributes, the spml
// prefix is stripped, and CDATA sections are unwrapped.
func Normalize(payload string) string {
	payload = strings.ReplaceAll(payload, "xsi:type", "type")
	payload = strings.ReplaceAll(payload, "spml:", "")
	return cdataPattern.ReplaceAllString(payload, "$1")
}

// UnmarshalResponse decodes a registry reply payload. All four response
// element types share the Response shape; the received element name is
// preserved in XMLName. An empty payload yields a nil response.
func UnmarshalResponse(payload string) (*Response, error) {
	payload = strings.TrimSpace(Normalize(payload))
	if payload == "" {
		return nil, nil
	}

	var resp Response
	if err := xml.Unmarshal([]byte(payload), &resp); err != nil {
		return nil, fmt.Errorf("unmarshal spml response: %w", err)
	}

	switch resp.XMLName.Local {
	case elemSearchResponse, elemAddResponse, elemModifyResponse, elemDeleteResponse:
		return &resp, nil
	default:
		return nil, fmt.Errorf("unexpected response element %q", resp.XMLName.Local)
	}
}
