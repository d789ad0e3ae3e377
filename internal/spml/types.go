// Package spml implements the registry's SPML provisioning dialect: the
// request/response graph types, the XML codec that reproduces the wire
// format exactly, and the SOAP 1.1 envelope handling.
package spml

import "encoding/xml"

// Protocol constants fixed by the registry schema.
const (
	Namespace           = "urn:siemens:names:prov:gw:SPML:2:0"
	SubscriberNamespace = "urn:siemens:names:prov:gw:HSS_SUBSCRIBER:8:2"
	XSINamespace        = "http://www.w3.org/2001/XMLSchema-instance"

	Version     = "HSS_SUBSCRIBER_v82"
	LanguageUS  = "en_us"
	ObjectClass = "Subscriber"

	SearchAliasPublic  = "impu"
	SearchAliasPrivate = "impi"

	NewGenerated          = "true"
	ReturnResultingObject = "none"
	DeleteScopeAll        = "all"
	ExecutionSynchronous  = "synchronous"

	ModOpSetOrAdd = "setoradd"
	ModOpRemove   = "remove"

	TypeSubscriber            = "subscriber:Subscriber"
	TypePublicUserID          = "subscriber:PublicUserId"
	TypePrivateUserID         = "subscriber:PrivateUserId"
	TypeServiceProfile        = "subscriber:ServiceProfile"
	TypeImplicitRegisteredSet = "subscriber:ImplicitRegisteredSet"

	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Response element names, used to detect which reply type was received.
const (
	elemSearchResponse = "searchResponse"
	elemAddResponse    = "addResponse"
	elemModifyResponse = "modifyResponse"
	elemDeleteResponse = "deleteResponse"
)

// SearchRequest looks up a subscriber by a single aliased key.
type SearchRequest struct {
	XMLName       xml.Name `xml:"spml:searchRequest"`
	SPMLNamespace string   `xml:"xmlns:spml,attr"`
	XSINamespace  string   `xml:"xmlns:xsi,attr"`
	Version       string   `xml:"version"`
	Base          Base     `xml:"base"`
}

// Base scopes a search to an object class plus one alias.
type Base struct {
	ObjectClass string `xml:"objectclass"`
	Alias       Alias  `xml:"alias"`
}

// Alias is a named search key/value pair.
type Alias struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// AddRequest creates a subscriber with its full identity graph.
type AddRequest struct {
	XMLName               xml.Name    `xml:"spml:addRequest"`
	SPMLNamespace         string      `xml:"xmlns:spml,attr"`
	SubscriberNamespace   string      `xml:"xmlns:subscriber,attr"`
	NewGenerated          string      `xml:"newGenerated,attr"`
	Language              string      `xml:"language,attr"`
	ReturnResultingObject string      `xml:"returnResultingObject,attr"`
	Version               string      `xml:"version"`
	Object                *Subscriber `xml:"object"`
}

// DeleteRequest removes a whole subscriber by identifier.
type DeleteRequest struct {
	XMLName               xml.Name `xml:"spml:deleteRequest"`
	SPMLNamespace         string   `xml:"xmlns:spml,attr"`
	DeleteScope           string   `xml:"deleteScope,attr"`
	Execution             string   `xml:"execution,attr"`
	Language              string   `xml:"language,attr"`
	ReturnResultingObject string   `xml:"returnResultingObject,attr"`
	Version               string   `xml:"version"`
	ObjectClass           string   `xml:"objectclass"`
	Identifier            string   `xml:"identifier"`
}

// ModifyRequest applies an ordered list of modifications to a subscriber.
// The registry applies modifications in list order.
type ModifyRequest struct {
	XMLName               xml.Name       `xml:"spml:modifyRequest"`
	SPMLNamespace         string         `xml:"xmlns:spml,attr"`
	SubscriberNamespace   string         `xml:"xmlns:subscriber,attr"`
	XSINamespace          string         `xml:"xmlns:xsi,attr"`
	Language              string         `xml:"language,attr"`
	ReturnResultingObject string         `xml:"returnResultingObject,attr"`
	Version               string         `xml:"version"`
	ObjectClass           string         `xml:"objectclass"`
	Identifier            string         `xml:"identifier"`
	Modifications         []Modification `xml:"modification"`
}

// AddModification appends one modification, preserving list order.
func (m *ModifyRequest) AddModification(mod Modification) {
	m.Modifications = append(m.Modifications, mod)
}

// Modification is a single set/remove instruction within a modify request.
type Modification struct {
	Name        string       `xml:"name,attr,omitempty"`
	Operation   string       `xml:"operation,attr"`
	Scope       string       `xml:"scope,attr,omitempty"`
	Match       *Match       `xml:"match,omitempty"`
	ValueObject *ValueObject `xml:"valueObject,omitempty"`
}

// Match selects the registry object a modification applies to. The type
// discriminator serializes as an xsi:type attribute.
type Match struct {
	Type                 string `xml:"type,attr"`
	OriginalPublicUserID string `xml:"originalPublicUserId,omitempty"`
	ProfileName          string `xml:"profileName,omitempty"`
	PrivateUserID        string `xml:"privateUserId,omitempty"`
	IRSID                string `xml:"irsId,omitempty"`
}

// MarshalXML rewrites the type discriminator to the vendor xsi:type form.
func (m Match) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	type wire struct {
		Type                 string `xml:"xsi:type,attr"`
		OriginalPublicUserID string `xml:"originalPublicUserId,omitempty"`
		ProfileName          string `xml:"profileName,omitempty"`
		PrivateUserID        string `xml:"privateUserId,omitempty"`
		IRSID                string `xml:"irsId,omitempty"`
	}
	return e.EncodeElement(wire(m), start)
}

// ValueObject carries the replacement value for a setoradd modification.
type ValueObject struct {
	Type                 string           `xml:"type,attr"`
	OriginalPublicUserID string           `xml:"originalPublicUserId,omitempty"`
	DefaultIndication    string           `xml:"defaultIndication,omitempty"`
	ServiceProfileName   string           `xml:"serviceProfileName,omitempty"`
	IRSID                string           `xml:"irsId,omitempty"`
	GlobalFilterIDs      []GlobalFilterID `xml:"globalFilterId,omitempty"`
}

// MarshalXML rewrites the type discriminator to the vendor xsi:type form.
func (v ValueObject) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	type wire struct {
		Type                 string           `xml:"xsi:type,attr"`
		OriginalPublicUserID string           `xml:"originalPublicUserId,omitempty"`
		DefaultIndication    string           `xml:"defaultIndication,omitempty"`
		ServiceProfileName   string           `xml:"serviceProfileName,omitempty"`
		IRSID                string           `xml:"irsId,omitempty"`
		GlobalFilterIDs      []GlobalFilterID `xml:"globalFilterId,omitempty"`
	}
	return e.EncodeElement(wire(v), start)
}

// Subscriber is the registry's root object for one telephone subscriber.
type Subscriber struct {
	Type         string `xml:"type,attr"`
	XSINamespace string `xml:"xmlns:xsi,attr,omitempty"`
	Identifier   string `xml:"identifier"`
	Hss          *Hss   `xml:"hss,omitempty"`
}

// MarshalXML rewrites the type discriminator to the vendor xsi:type form.
func (s Subscriber) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	type wire struct {
		Type         string `xml:"xsi:type,attr"`
		XSINamespace string `xml:"xmlns:xsi,attr,omitempty"`
		Identifier   string `xml:"identifier"`
		Hss          *Hss   `xml:"hss,omitempty"`
	}
	return e.EncodeElement(wire(s), start)
}

// Hss groups a subscriber's identities. The identity lists serialize as
// repeated sibling elements without a wrapper.
type Hss struct {
	SubscriptionID         string                  `xml:"subscriptionId,omitempty"`
	ProfileType            string                  `xml:"profileType,omitempty"`
	AdminBlocked           string                  `xml:"adminBlocked,omitempty"`
	DefaultSCSCFRequired   string                  `xml:"defaultScscfRequired,omitempty"`
	CCFPrimary             string                  `xml:"ccfPrimary,omitempty"`
	CCFSecondary           string                  `xml:"ccfSecondary,omitempty"`
	PrivateUserIDs         []PrivateUserID         `xml:"privateUserId,omitempty"`
	ImplicitRegisteredSets []ImplicitRegisteredSet `xml:"implicitRegisteredSet,omitempty"`
	PublicUserIDs          []PublicUserID          `xml:"publicUserId,omitempty"`
	ServiceProfiles        []ServiceProfile        `xml:"serviceProfile,omitempty"`
}

// PrivateUserID is an authentication identity.
type PrivateUserID struct {
	PrivateUserID                  string `xml:"privateUserId,omitempty"`
	HTTPDigestKey                  string `xml:"httpDigestKey,omitempty"`
	HTTPDigestKeyVersion           string `xml:"httpDigestKeyVersion,omitempty"`
	PreferredAuthenticationScheme  string `xml:"preferredAuthenticationScheme,omitempty"`
	ActAsVLR                       string `xml:"actAsVLR,omitempty"`
	PreferredDomain                string `xml:"preferredDomain,omitempty"`
	LooseRoutingIndicationRequired string `xml:"looseRoutingIndicationRequired,omitempty"`
}

// ImplicitRegisteredSet groups public identities that register together.
type ImplicitRegisteredSet struct {
	IRSID                 string `xml:"irsId,omitempty"`
	RegistrationStatus    string `xml:"registrationStatus,omitempty"`
	AuthenticationPending string `xml:"authenticationPending,omitempty"`
}

// PublicUserID is one addressable SIP identity of a subscriber.
type PublicUserID struct {
	PublicUserID         string `xml:"publicUserId,omitempty"`
	OriginalPublicUserID string `xml:"originalPublicUserId,omitempty"`
	BarringIndication    string `xml:"barringIndication,omitempty"`
	DefaultIndication    string `xml:"defaultIndication,omitempty"`
	ServiceProfileName   string `xml:"serviceProfileName,omitempty"`
	IRSID                string `xml:"irsId,omitempty"`
	DisplayNamePrivacy   string `xml:"displayNamePrivacy,omitempty"`
}

// ServiceProfile owns the global filter list for one public identity.
type ServiceProfile struct {
	ProfileName              string                    `xml:"profileName,omitempty"`
	GlobalFilterIDs          []GlobalFilterID          `xml:"globalFilterId,omitempty"`
	SubscribedMediaProfileID *SubscribedMediaProfileID `xml:"subscribedMediaProfileID,omitempty"`
}

// GlobalFilterID is a feature code attached to a service profile. The
// registry nests the value inside an element of the same name.
type GlobalFilterID struct {
	GlobalFilterID string `xml:"globalFilterId"`
}

// SubscribedMediaProfileID carries the static media policy values.
type SubscribedMediaProfileID struct {
	SessionReleasePolicy string `xml:"sessionReleasePolicy,omitempty"`
	ForkingPolicy        string `xml:"forkingPolicy,omitempty"`
}

// Response is the shared shape of the four registry reply elements. The
// element name that was received is recorded in XMLName.
type Response struct {
	XMLName       xml.Name
	ExecutionTime string         `xml:"executionTime,attr"`
	Language      string         `xml:"language,attr"`
	RequestID     string         `xml:"requestID,attr"`
	Result        string         `xml:"result,attr"`
	SearchStatus  string         `xml:"searchStatus,attr"`
	Version       string         `xml:"version"`
	ObjectClass   string         `xml:"objectclass"`
	Identifier    string         `xml:"identifier"`
	ErrorMessage  string         `xml:"errorMessage"`
	Subscriber    *Subscriber    `xml:"objects"`
	Modifications []Modification `xml:"modification"`
}

// Success reports whether the registry accepted the request.
func (r *Response) Success() bool {
	return r != nil && r.Result == ResultSuccess
}

// FailureResponse is the synthetic reply used when the registry returned
// an empty payload after a request was sent.
func FailureResponse() *Response {
	return &Response{Result: ResultFailure}
}
