package service

import (
	"context"

	"hss-gateway/internal/spml"
	"hss-gateway/internal/subscriber/models"
	dErrors "hss-gateway/pkg/domain-errors"
)

// createHuntGroup provisions a hunt group: a new controller subscriber
// plus member identities grafted onto the existing directory number's
// subscriber.
func (s *Service) createHuntGroup(ctx context.Context, phone *models.DigitalPhone) (*models.DigitalPhoneResponse, error) {
	tn, ok := firstTelephoneIdentity(phone)
	if !ok {
		return nil, dErrors.New(dErrors.CodeBadRequest, "a telephone number identity is required")
	}
	dn, err := s.searchPublic(ctx, tn.UserID, phone.Site, true)
	if err != nil {
		return nil, err
	}
	if dn == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "telephone number "+tn.UserID+" is not provisioned")
	}

	group, ok := firstHuntGroupIdentity(phone)
	if !ok {
		return nil, dErrors.New(dErrors.CodeBadRequest, "a valid hunt group identity is required")
	}
	existing, err := s.searchPublic(ctx, group.UserID, phone.Site, false)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "hunt group "+group.UserID+" already exists")
	}

	controller, ok := controllerIdentity(phone)
	if !ok {
		return nil, dErrors.New(dErrors.CodeBadRequest, "a hunt group controller identity is required")
	}

	if err := s.addGroupController(ctx, phone, controller, models.NameHuntGroup); err != nil {
		return nil, err
	}
	if err := s.attachMembers(ctx, phone, dn, controller); err != nil {
		return nil, err
	}

	s.metrics.IncrementCreated()
	return &models.DigitalPhoneResponse{Status: models.StatusCreated}, nil
}

// firstTelephoneIdentity returns the first 10-digit identity.
func firstTelephoneIdentity(phone *models.DigitalPhone) (models.PublicIdentity, bool) {
	for _, pub := range phone.PublicIdentity {
		if isTelephoneNumber(pub.UserID) {
			return pub, true
		}
	}
	return models.PublicIdentity{}, false
}

// firstHuntGroupIdentity returns the first well-formed hunt group id.
func firstHuntGroupIdentity(phone *models.DigitalPhone) (models.PublicIdentity, bool) {
	for _, pub := range phone.PublicIdentity {
		if isHuntGroupID(pub.UserID) {
			return pub, true
		}
	}
	return models.PublicIdentity{}, false
}

// controllerIdentity returns the create or update identity carrying the
// controller suffix.
func controllerIdentity(phone *models.DigitalPhone) (models.PublicIdentity, bool) {
	for _, pub := range phone.PublicIdentity {
		if pub.Operation != models.OperationCreate && pub.Operation != models.OperationUpdate {
			continue
		}
		if isHuntGroupID(pub.UserID) && isControllerID(pub.UserID) {
			return pub, true
		}
	}
	return models.PublicIdentity{}, false
}

// addGroupController creates the group's own subscriber, generating its
// private credentials.
func (s *Service) addGroupController(ctx context.Context, phone *models.DigitalPhone, controller models.PublicIdentity, groupName string) error {
	controller.Operation = models.OperationCreate
	controllerPhone := &models.DigitalPhone{
		Name:           phone.Name,
		Site:           phone.Site,
		FeaturePackage: phone.FeaturePackage,
		PublicIdentity: []models.PublicIdentity{controller},
		Profile:        groupProfile(phone.Profile, groupName),
		PrivateIdentity: []models.PrivateIdentity{{
			Operation: models.OperationCreate,
			UserID:    s.keys.RandomKey(privateIdentityLength),
			Password:  s.keys.TimestampKey(),
		}},
	}

	req, err := s.builder.AddRequest(controllerPhone)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid controller request")
	}
	resp, err := s.exchange(ctx, req)
	if err != nil {
		return err
	}
	if !resp.Success() {
		s.metrics.IncrementFailure(models.OperationCreate)
		return dErrors.New(dErrors.CodeInternal, "registry rejected controller add: "+resp.ErrorMessage)
	}
	return nil
}

// groupProfile falls back to the group's default feature set when the
// request carries no features.
func groupProfile(profile *models.Profile, groupName string) *models.Profile {
	if profile != nil && len(profile.Features) > 0 {
		return profile
	}
	return &models.Profile{
		Operation: models.OperationCreate,
		Features: []models.Feature{
			{Name: groupName, Operation: models.OperationCreate},
		},
	}
}

// attachMembers grafts each member identity onto the directory number
// subscriber's registered set, keyed by the member's serviceId. Members
// whose service id is unknown to the subscriber are skipped.
func (s *Service) attachMembers(ctx context.Context, phone *models.DigitalPhone, dn *spml.Subscriber, controller models.PublicIdentity) error {
	req := s.builder.ModifyRequest(dn.Identifier)
	for _, pub := range phone.PublicIdentity {
		if pub.Operation != models.OperationCreate {
			continue
		}
		if !isHuntGroupID(pub.UserID) || pub.UserID == controller.UserID {
			continue
		}
		target, ok := publicUserIDContaining(dn, pub.ServiceID)
		if !ok {
			s.logger.WarnContext(ctx, "no subscriber identity matches member service id, skipping member",
				"member", pub.UserID,
				"service_id", pub.ServiceID,
			)
			continue
		}
		req.AddModification(s.builder.PublicIdentityModification(pub, target.ServiceProfileName, target.IRSID, "false"))
	}
	if len(req.Modifications) == 0 {
		return nil
	}

	resp, err := s.exchange(ctx, req)
	if err != nil {
		return err
	}
	if !resp.Success() {
		s.metrics.IncrementFailure(models.OperationCreate)
		return dErrors.New(dErrors.CodeInternal, "registry rejected member attach: "+resp.ErrorMessage)
	}
	return nil
}

// publicUserIDContaining finds the subscriber identity whose address
// contains the given fragment.
func publicUserIDContaining(sub *spml.Subscriber, fragment string) (spml.PublicUserID, bool) {
	if sub.Hss == nil || fragment == "" {
		return spml.PublicUserID{}, false
	}
	for _, pub := range sub.Hss.PublicUserIDs {
		if addressMatchesAny(pub.OriginalPublicUserID, []string{fragment}) {
			return pub, true
		}
	}
	return spml.PublicUserID{}, false
}
