package service

import (
	"context"

	"hss-gateway/internal/subscriber/models"
	dErrors "hss-gateway/pkg/domain-errors"
)

// createBusinessGroup provisions a pickup group as its own subscriber.
func (s *Service) createBusinessGroup(ctx context.Context, phone *models.DigitalPhone) (*models.DigitalPhoneResponse, error) {
	group, ok := firstPickupGroupIdentity(phone)
	if !ok {
		return nil, dErrors.New(dErrors.CodeBadRequest, "a valid pickup group identity is required")
	}

	existing, err := s.searchPublic(ctx, group.UserID, phone.Site, false)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "pickup group "+group.UserID+" already exists")
	}

	groupPhone := &models.DigitalPhone{
		Name:           phone.Name,
		Site:           phone.Site,
		FeaturePackage: phone.FeaturePackage,
		PublicIdentity: phone.PublicIdentity,
		Profile:        groupProfile(phone.Profile, models.NameBusinessGroup),
		PrivateIdentity: []models.PrivateIdentity{{
			Operation: models.OperationCreate,
			UserID:    s.keys.RandomKey(privateIdentityLength),
			Password:  s.keys.TimestampKey(),
		}},
	}

	req, err := s.builder.AddRequest(groupPhone)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid pickup group request")
	}
	resp, err := s.exchange(ctx, req)
	if err != nil {
		return nil, err
	}
	if !resp.Success() {
		s.metrics.IncrementFailure(models.OperationCreate)
		return &models.DigitalPhoneResponse{
			Status:      models.StatusFailure,
			Description: resp.ErrorMessage,
		}, nil
	}

	s.metrics.IncrementCreated()
	return &models.DigitalPhoneResponse{Status: models.StatusCreated}, nil
}

// firstPickupGroupIdentity returns the first well-formed pickup group id.
func firstPickupGroupIdentity(phone *models.DigitalPhone) (models.PublicIdentity, bool) {
	for _, pub := range phone.PublicIdentity {
		if isPickupGroupID(pub.UserID) {
			return pub, true
		}
	}
	return models.PublicIdentity{}, false
}
