package service

import (
	"context"
	"strings"

	"hss-gateway/internal/spml"
	"hss-gateway/internal/subscriber/models"
	dErrors "hss-gateway/pkg/domain-errors"
)

// deleteIndividual removes a telephone number from its subscriber. When
// the number is the subscriber's last one the whole subscriber is
// deleted; otherwise only the matching identities and their profile
// objects are removed.
func (s *Service) deleteIndividual(ctx context.Context, phone *models.DigitalPhone) error {
	if len(phone.PublicIdentity) > 1 {
		return dErrors.New(dErrors.CodeBadRequest, "only one telephone number may be deleted per request")
	}
	pub := phone.PublicIdentity[0]
	if !isTelephoneNumber(pub.UserID) {
		return dErrors.New(dErrors.CodeBadRequest, "public identity userId must be a 10-digit telephone number")
	}

	sub, err := s.searchPublic(ctx, pub.UserID, phone.Site, true)
	if err != nil {
		return err
	}
	if sub == nil || sub.Hss == nil || len(sub.Hss.PublicUserIDs) == 0 {
		return dErrors.New(dErrors.CodeNotFound, "subscriber not found for telephone number "+pub.UserID)
	}

	requested := requestedTelephoneNumbers(phone)
	if len(requested) == 0 {
		return dErrors.New(dErrors.CodeNotFound, "no telephone number passed for deletion")
	}

	if s.isLastTelephoneNumber(sub, requested) {
		return s.deleteByIdentifier(ctx, sub.Identifier)
	}
	return s.removeSecondaryNumbers(ctx, phone, sub, requested)
}

// requestedTelephoneNumbers collects the valid numbers flagged for
// deletion in the request.
func requestedTelephoneNumbers(phone *models.DigitalPhone) []string {
	var out []string
	for _, pub := range phone.PublicIdentity {
		if pub.Operation == models.OperationDelete && isTelephoneNumber(pub.UserID) {
			out = append(out, pub.UserID)
		}
	}
	return out
}

// isLastTelephoneNumber reports whether removing the requested numbers
// would leave the subscriber without any default-indicated number.
func (s *Service) isLastTelephoneNumber(sub *spml.Subscriber, requested []string) bool {
	owned := make(map[string]bool)
	for _, pub := range sub.Hss.PublicUserIDs {
		if pub.DefaultIndication != "true" {
			continue
		}
		if tn, ok := telephoneNumberFromAddress(pub.OriginalPublicUserID); ok {
			owned[tn] = true
		}
	}
	for _, tn := range requested {
		delete(owned, tn)
	}
	return len(owned) == 0
}

// telephoneNumberFromAddress extracts the 10-digit number from a SIP
// address in either E.164 or national form.
func telephoneNumberFromAddress(addr string) (string, bool) {
	var tn string
	switch {
	case strings.HasPrefix(addr, "sip:+1") && len(addr) >= 16:
		tn = addr[6:16]
	case strings.HasPrefix(addr, "sip:") && len(addr) >= 14:
		tn = addr[4:14]
	default:
		return "", false
	}
	if !isTelephoneNumber(tn) {
		return "", false
	}
	return tn, true
}

// removeSecondaryNumbers strips the requested numbers from a subscriber
// that keeps other lines, along with their service profiles, registered
// sets, and every private identity supplied on the request.
func (s *Service) removeSecondaryNumbers(ctx context.Context, phone *models.DigitalPhone, sub *spml.Subscriber, requested []string) error {
	req := s.builder.ModifyRequest(sub.Identifier)

	removedProfiles := make(map[string]bool)
	removedSets := make(map[string]bool)
	for _, pub := range sub.Hss.PublicUserIDs {
		if !addressMatchesAny(pub.OriginalPublicUserID, requested) {
			continue
		}
		req.AddModification(s.builder.PublicUserDeleteModification(pub))
		if pub.ServiceProfileName != "" && !removedProfiles[pub.ServiceProfileName] {
			removedProfiles[pub.ServiceProfileName] = true
			req.AddModification(s.builder.ServiceProfileModification(pub.ServiceProfileName))
		}
		if pub.IRSID != "" && !removedSets[pub.IRSID] {
			removedSets[pub.IRSID] = true
			req.AddModification(s.builder.IRSModification(pub.IRSID))
		}
	}
	if len(req.Modifications) == 0 {
		return dErrors.New(dErrors.CodeNotFound, "subscriber does not carry the requested telephone number")
	}

	for _, priv := range phone.PrivateIdentity {
		req.AddModification(s.builder.PrivateIdentityModification(priv))
	}

	resp, err := s.exchange(ctx, req)
	if err != nil {
		return err
	}
	if !resp.Success() {
		s.metrics.IncrementFailure(models.OperationDelete)
		return dErrors.New(dErrors.CodeInternal, "registry rejected modify: "+resp.ErrorMessage)
	}
	s.metrics.IncrementDeleted()
	return nil
}

func addressMatchesAny(addr string, numbers []string) bool {
	for _, tn := range numbers {
		if strings.Contains(addr, tn) {
			return true
		}
	}
	return false
}
