package service

import (
	"context"

	"hss-gateway/internal/spml"
	dErrors "hss-gateway/pkg/domain-errors"
)

// LookupQuery carries exactly one subscriber lookup key. Keys are tried
// in order: telephone number, controller id, private identity.
type LookupQuery struct {
	TelephoneNumber string
	ControllerID    string
	PrivateIdentity string
	Site            string
}

// Lookup fetches a subscriber by one of the supported keys.
func (s *Service) Lookup(ctx context.Context, q LookupQuery) (*spml.Subscriber, error) {
	switch {
	case q.TelephoneNumber != "":
		if !isTelephoneNumber(q.TelephoneNumber) {
			return nil, dErrors.New(dErrors.CodeBadRequest, "telephone number must be 10 digits")
		}
		return lookupFound(s.searchPublic(ctx, q.TelephoneNumber, q.Site, true))
	case q.ControllerID != "":
		if !isHuntGroupID(q.ControllerID) && !isPickupGroupID(q.ControllerID) {
			return nil, dErrors.New(dErrors.CodeBadRequest, "invalid controller id "+q.ControllerID)
		}
		return lookupFound(s.searchPublic(ctx, q.ControllerID, q.Site, false))
	case q.PrivateIdentity != "":
		if len(q.PrivateIdentity) != privateIdentityLength {
			return nil, dErrors.New(dErrors.CodeBadRequest, "invalid private identity")
		}
		return lookupFound(s.searchPrivate(ctx, q.PrivateIdentity, q.Site))
	default:
		return nil, dErrors.New(dErrors.CodeBadRequest, "a lookup key is required")
	}
}

func lookupFound(sub *spml.Subscriber, err error) (*spml.Subscriber, error) {
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "subscriber not found")
	}
	return sub, nil
}
