package service

import (
	"strings"

	"hss-gateway/internal/subscriber/models"
	dErrors "hss-gateway/pkg/domain-errors"
)

// Variant selects the provisioning workflow for a request.
type Variant int

const (
	VariantIndividual Variant = iota
	VariantHuntGroup
	VariantBusinessGroup
)

// ResolveVariant maps a request name to its workflow, ignoring case. An
// absent name means an individual line; anything else unrecognized is
// rejected.
func ResolveVariant(name string) (Variant, error) {
	switch strings.ToUpper(name) {
	case "", models.NameIndividual:
		return VariantIndividual, nil
	case models.NameHuntGroup:
		return VariantHuntGroup, nil
	case models.NameBusinessGroup:
		return VariantBusinessGroup, nil
	default:
		return 0, dErrors.New(dErrors.CodeBadRequest, "unsupported subscriber type: "+name)
	}
}
