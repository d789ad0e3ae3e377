package service

import (
	"regexp"
	"strings"

	"hss-gateway/internal/subscriber/models"
	dErrors "hss-gateway/pkg/domain-errors"
)

// Identifier shapes accepted on public identities.
const (
	huntGroupPrefix    = "mlhg_"
	huntGroupDelimiter = "_"
	controllerSuffix   = "0000"
	pickupGroupPrefix  = "pickup_group_"

	privateIdentityLength = 16
)

var (
	telephoneNumberPattern = regexp.MustCompile(`^\d{10}$`)
	digitsPattern          = regexp.MustCompile(`^\d+$`)
)

func isTelephoneNumber(s string) bool {
	return telephoneNumberPattern.MatchString(s)
}

// isHuntGroupID accepts mlhg_-prefixed ids whose remaining segments are
// all numeric, e.g. mlhg_201864_0003.
func isHuntGroupID(s string) bool {
	if !strings.HasPrefix(s, huntGroupPrefix) {
		return false
	}
	rest := strings.TrimPrefix(s, huntGroupPrefix)
	if rest == "" {
		return false
	}
	for _, seg := range strings.Split(rest, huntGroupDelimiter) {
		if !digitsPattern.MatchString(seg) {
			return false
		}
	}
	return true
}

// isHuntGroupMemberID additionally requires a four-digit final segment.
func isHuntGroupMemberID(s string) bool {
	if !isHuntGroupID(s) {
		return false
	}
	segs := strings.Split(s, huntGroupDelimiter)
	return len(segs[len(segs)-1]) == 4
}

func isPickupGroupID(s string) bool {
	if !strings.HasPrefix(s, pickupGroupPrefix) {
		return false
	}
	return digitsPattern.MatchString(strings.TrimPrefix(s, pickupGroupPrefix))
}

func isControllerID(s string) bool {
	return strings.HasSuffix(s, controllerSuffix)
}

// validatePhone applies the request-shape rules shared by all workflows.
func validatePhone(phone *models.DigitalPhone, operation string) error {
	if phone == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if phone.Operation != "" && phone.Operation != operation {
		return dErrors.New(dErrors.CodeBadRequest, "operation must be "+operation)
	}
	if len(phone.PublicIdentity) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "at least one public identity is required")
	}
	for _, pub := range phone.PublicIdentity {
		if strings.TrimSpace(pub.UserID) == "" {
			return dErrors.New(dErrors.CodeBadRequest, "public identity userId is required")
		}
	}
	if operation == models.OperationCreate && phone.Name == "" {
		return dErrors.New(dErrors.CodeBadRequest, "subscriber name is required for create")
	}
	return nil
}

// validateIndividualCreate enforces the package/feature consistency
// rules for individual lines: the feature list must carry exactly one
// package marker whose value names the feature package, and exactly one
// feature named after the package.
func validateIndividualCreate(phone *models.DigitalPhone) error {
	if phone.FeaturePackage == "" {
		return dErrors.New(dErrors.CodeBadRequest, "featurePackage is required")
	}
	if phone.Profile == nil || len(phone.Profile.Features) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "profile features are required")
	}

	var markers, packageFeatures int
	for _, f := range phone.Profile.Features {
		if f.Name == models.FeaturePackage {
			markers++
			if f.Value != phone.FeaturePackage {
				return dErrors.New(dErrors.CodeBadRequest, "package feature value must match featurePackage")
			}
		}
		if f.Name == phone.FeaturePackage {
			packageFeatures++
		}
	}
	if markers != 1 {
		return dErrors.New(dErrors.CodeBadRequest, "exactly one package feature is required")
	}
	if packageFeatures != 1 {
		return dErrors.New(dErrors.CodeBadRequest, "exactly one feature must name the feature package")
	}
	return nil
}
