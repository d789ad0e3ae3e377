package service

import (
	"context"

	"hss-gateway/internal/subscriber/models"
	dErrors "hss-gateway/pkg/domain-errors"
)

// deleteBusinessGroup removes a pickup group subscriber wholesale.
func (s *Service) deleteBusinessGroup(ctx context.Context, phone *models.DigitalPhone) error {
	if len(phone.PublicIdentity) != 1 {
		return dErrors.New(dErrors.CodeBadRequest, "exactly one pickup group identity is required")
	}
	id := phone.PublicIdentity[0]
	if !isPickupGroupID(id.UserID) {
		return dErrors.New(dErrors.CodeBadRequest, "invalid pickup group identity "+id.UserID)
	}

	sub, err := s.searchPublic(ctx, id.UserID, phone.Site, false)
	if err != nil {
		return err
	}
	if sub == nil {
		return dErrors.New(dErrors.CodeNotFound, "pickup group "+id.UserID+" not found")
	}
	return s.deleteByIdentifier(ctx, sub.Identifier)
}
