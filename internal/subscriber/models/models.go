// Package models defines the REST-facing subscriber resources and the
// vocabulary shared by the provisioning workflows.
package models

// Operation values accepted on resources and their nested parts.
const (
	OperationCreate = "create"
	OperationDelete = "delete"
	OperationUpdate = "update"
)

// Workflow names carried in the request body's name field.
const (
	NameIndividual    = "DPHONE"
	NameHuntGroup     = "HGROUP"
	NameBusinessGroup = "BGROUP"
)

// Feature markers with special handling in filter resolution.
const (
	FeatureBlock   = "BLOCK"
	FeaturePackage = "package"
)

// Response statuses returned to the REST caller.
const (
	StatusCreated = "CREATED"
	StatusSuccess = "SUCCESS"
	StatusFailure = "FAILURE"
)

// DigitalPhone is the provisioning request resource. One resource covers
// an individual line, a hunt group, or a business group pickup group,
// discriminated by Name.
type DigitalPhone struct {
	Operation       string            `json:"operation,omitempty"`
	UUID            string            `json:"uuid,omitempty"`
	Name            string            `json:"name,omitempty"`
	Site            string            `json:"site,omitempty"`
	FeaturePackage  string            `json:"featurePackage,omitempty"`
	PublicIdentity  []PublicIdentity  `json:"publicIdentity,omitempty"`
	Profile         *Profile          `json:"profile,omitempty"`
	PrivateIdentity []PrivateIdentity `json:"privateIdentity,omitempty"`
}

// PublicIdentity is a requested public identity: a telephone number, a
// hunt group member id, or a pickup group id.
type PublicIdentity struct {
	Operation string `json:"operation,omitempty"`
	UserID    string `json:"userId,omitempty"`
	Forward   string `json:"forward,omitempty"`
	ServiceID string `json:"serviceId,omitempty"`
}

// PrivateIdentity is the authentication identity tied to a subscriber.
type PrivateIdentity struct {
	Operation string `json:"operation,omitempty"`
	UserID    string `json:"userId,omitempty"`
	PublicID  string `json:"publicId,omitempty"`
	Password  string `json:"password,omitempty"`
}

// Profile carries the application server and feature selections.
type Profile struct {
	Operation string    `json:"operation,omitempty"`
	TAS       string    `json:"tas,omitempty"`
	VM        string    `json:"vm,omitempty"`
	Features  []Feature `json:"features,omitempty"`
}

// Feature is one requested feature. BLOCK features carry their codes in
// nested properties instead of the feature name.
type Feature struct {
	Name              string            `json:"name,omitempty"`
	Type              string            `json:"type,omitempty"`
	Value             string            `json:"value,omitempty"`
	Operation         string            `json:"operation,omitempty"`
	FeatureProperties []FeatureProperty `json:"featureProperties,omitempty"`
}

// FeatureProperty is a nested feature attribute.
type FeatureProperty struct {
	Name      string `json:"name,omitempty"`
	Type      string `json:"type,omitempty"`
	Value     string `json:"value,omitempty"`
	Operation string `json:"operation,omitempty"`
}

// DigitalPhoneResponse is the REST reply for create and delete calls.
type DigitalPhoneResponse struct {
	Status      string   `json:"status,omitempty"`
	ErrorCodes  []string `json:"errorCodes,omitempty"`
	Description string   `json:"description,omitempty"`
}

// ErrorResponse is the REST error body.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
