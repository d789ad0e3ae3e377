package service

import (
	"context"
	"strings"

	"hss-gateway/internal/subscriber/models"
	dErrors "hss-gateway/pkg/domain-errors"
)

// deleteHuntGroup removes either a whole hunt group (controller id) or a
// single member identity from its host subscriber.
func (s *Service) deleteHuntGroup(ctx context.Context, phone *models.DigitalPhone) error {
	if len(phone.PublicIdentity) != 1 {
		return dErrors.New(dErrors.CodeBadRequest, "exactly one hunt group identity is required")
	}
	id := phone.PublicIdentity[0]
	if !isHuntGroupMemberID(id.UserID) {
		return dErrors.New(dErrors.CodeBadRequest, "invalid hunt group identity "+id.UserID)
	}

	if id.Operation == models.OperationDelete && isControllerID(id.UserID) {
		sub, err := s.searchPublic(ctx, id.UserID, phone.Site, false)
		if err != nil {
			return err
		}
		if sub == nil {
			return dErrors.New(dErrors.CodeNotFound, "hunt group "+id.UserID+" not found")
		}
		return s.deleteByIdentifier(ctx, sub.Identifier)
	}

	return s.detachMember(ctx, phone, id.UserID)
}

// detachMember removes a member identity from whichever subscriber
// carries it.
func (s *Service) detachMember(ctx context.Context, phone *models.DigitalPhone, memberID string) error {
	sub, err := s.searchPublic(ctx, memberID, phone.Site, false)
	if err != nil {
		return err
	}
	if sub == nil || sub.Hss == nil {
		return dErrors.New(dErrors.CodeNotFound, "hunt group member "+memberID+" not found")
	}

	req := s.builder.ModifyRequest(sub.Identifier)
	for _, pub := range sub.Hss.PublicUserIDs {
		if strings.Contains(pub.OriginalPublicUserID, memberID) {
			req.AddModification(s.builder.PublicUserDeleteModification(pub))
		}
	}
	if len(req.Modifications) == 0 {
		return dErrors.New(dErrors.CodeNotFound, "hunt group member "+memberID+" not found")
	}

	resp, err := s.exchange(ctx, req)
	if err != nil {
		return err
	}
	if !resp.Success() {
		s.metrics.IncrementFailure(models.OperationDelete)
		return dErrors.New(dErrors.CodeInternal, "registry rejected member removal: "+resp.ErrorMessage)
	}
	s.metrics.IncrementDeleted()
	return nil
}
