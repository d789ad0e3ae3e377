package service

import (
	"context"

	"hss-gateway/internal/subscriber/models"
	dErrors "hss-gateway/pkg/domain-errors"
)

// createIndividual provisions a single digital phone line. An already
// provisioned line is reported as success without touching the registry.
func (s *Service) createIndividual(ctx context.Context, phone *models.DigitalPhone) (*models.DigitalPhoneResponse, error) {
	if err := validateIndividualCreate(phone); err != nil {
		return nil, err
	}
	pub, ok := firstIdentityWithOperation(phone, models.OperationCreate)
	if !ok {
		return nil, dErrors.New(dErrors.CodeBadRequest, "a public identity with create operation is required")
	}
	if !isTelephoneNumber(pub.UserID) {
		return nil, dErrors.New(dErrors.CodeBadRequest, "public identity userId must be a 10-digit telephone number")
	}

	existing, err := s.searchPublic(ctx, pub.UserID, phone.Site, true)
	if err != nil {
		return nil, err
	}
	if existing == nil && len(phone.PrivateIdentity) > 0 && phone.PrivateIdentity[0].UserID != "" {
		existing, err = s.searchPrivate(ctx, phone.PrivateIdentity[0].UserID, phone.Site)
		if err != nil {
			return nil, err
		}
	}
	if existing != nil {
		s.logger.InfoContext(ctx, "subscriber already provisioned, skipping add",
			"telephone_number", pub.UserID,
		)
		return &models.DigitalPhoneResponse{Status: models.StatusSuccess}, nil
	}

	req, err := s.builder.AddRequest(phone)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid subscriber request")
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

// firstIdentityWithOperation returns the first public identity carrying
// the given operation.
func firstIdentityWithOperation(phone *models.DigitalPhone, operation string) (models.PublicIdentity, bool) {
	for _, pub := range phone.PublicIdentity {
		if pub.Operation == operation {
			return pub, true
		}
	}
	return models.PublicIdentity{}, false
}
