package spml

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

const soapEnvelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"

// WrapSOAP embeds a serialized request inside a SOAP 1.1 envelope with an
// empty header.
func WrapSOAP(payload string) (string, error) {
	inner := etree.NewDocument()
	if err := inner.ReadFromString(payload); err != nil {
		return "", fmt.Errorf("parse request payload: %w", err)
	}
	root := inner.Root()
	if root == nil {
		return "", fmt.Errorf("request payload has no root element")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	env := doc.CreateElement("SOAP-ENV:Envelope")
	env.CreateAttr("xmlns:SOAP-ENV", soapEnvelopeNamespace)
	env.CreateElement("SOAP-ENV:Header")
	body := env.CreateElement("SOAP-ENV:Body")
	body.AddChild(root.Copy())

	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("serialize soap envelope: %w", err)
	}
	return out, nil
}

// ExtractPayload pulls the first element out of a SOAP body and returns
// it serialized. An envelope with an empty body yields an empty string.
func ExtractPayload(envelope string) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(envelope); err != nil {
		return "", fmt.Errorf("parse soap envelope: %w", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "Envelope" {
		return "", fmt.Errorf("missing soap envelope element")
	}

	var body *etree.Element
	for _, child := range root.ChildElements() {
		if child.Tag == "Body" {
			body = child
			break
		}
	}
	if body == nil {
		return "", fmt.Errorf("missing soap body element")
	}

	for _, child := range body.ChildElements() {
		out := etree.NewDocument()
		out.AddChild(child.Copy())
		s, err := out.WriteToString()
		if err != nil {
			return "", fmt.Errorf("serialize soap payload: %w", err)
		}
		return strings.TrimSpace(s), nil
	}
	return "", nil
}
