// Package service implements the provisioning workflows: individual
// digital phone lines, hunt groups, and business group pickup groups,
// each with create and delete flows plus registry lookup.
package service

import (
	"context"
	"log/slog"
	"time"

	"hss-gateway/internal/catalog"
	"hss-gateway/internal/keygen"
	"hss-gateway/internal/platform/middleware"
	"hss-gateway/internal/registry"
	"hss-gateway/internal/spml"
	"hss-gateway/internal/subscriber/builder"
	"hss-gateway/internal/subscriber/metrics"
	"hss-gateway/internal/subscriber/models"
	dErrors "hss-gateway/pkg/domain-errors"
)

// Exchanger sends one SPML request and returns the decoded reply.
type Exchanger interface {
	Exchange(ctx context.Context, req any, transactionID string) (*spml.Response, error)
}

var _ Exchanger = (*registry.Gateway)(nil)

// Service orchestrates provisioning against the subscriber registry.
type Service struct {
	gateway Exchanger
	builder *builder.Builder
	keys    *keygen.Generator
	catalog *catalog.Catalog
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New wires a Service from its collaborators.
func New(gateway Exchanger, b *builder.Builder, keys *keygen.Generator, cat *catalog.Catalog, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		gateway: gateway,
		builder: b,
		keys:    keys,
		catalog: cat,
		logger:  logger,
		metrics: m,
	}
}

// Create provisions a subscriber according to the request's workflow.
func (s *Service) Create(ctx context.Context, phone *models.DigitalPhone) (*models.DigitalPhoneResponse, error) {
	if err := validatePhone(phone, models.OperationCreate); err != nil {
		return nil, err
	}
	variant, err := ResolveVariant(phone.Name)
	if err != nil {
		return nil, err
	}

	switch variant {
	case VariantHuntGroup:
		return s.createHuntGroup(ctx, phone)
	case VariantBusinessGroup:
		return s.createBusinessGroup(ctx, phone)
	default:
		return s.createIndividual(ctx, phone)
	}
}

// Delete deprovisions a subscriber according to the request's workflow.
func (s *Service) Delete(ctx context.Context, phone *models.DigitalPhone) error {
	if err := validatePhone(phone, models.OperationDelete); err != nil {
		return err
	}
	variant, err := ResolveVariant(phone.Name)
	if err != nil {
		return err
	}

	switch variant {
	case VariantHuntGroup:
		return s.deleteHuntGroup(ctx, phone)
	case VariantBusinessGroup:
		return s.deleteBusinessGroup(ctx, phone)
	default:
		return s.deleteIndividual(ctx, phone)
	}
}

// exchange sends one request, timing the round trip.
func (s *Service) exchange(ctx context.Context, req any) (*spml.Response, error) {
	start := time.Now()
	defer s.metrics.ObserveExchange(start)

	resp, err := s.gateway.Exchange(ctx, req, middleware.GetTransactionID(ctx))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "registry exchange failed")
	}
	return resp, nil
}

// searchSubscriber looks a subscriber up by alias. A failed or empty
// search result means not found, not an error.
func (s *Service) searchSubscriber(ctx context.Context, alias, userID, site string, e164 bool) (*spml.Subscriber, error) {
	resp, err := s.exchange(ctx, s.builder.SearchRequest(alias, userID, site, e164))
	if err != nil {
		return nil, err
	}
	if !resp.Success() || resp.Subscriber == nil {
		return nil, nil
	}
	return resp.Subscriber, nil
}

func (s *Service) searchPublic(ctx context.Context, userID, site string, e164 bool) (*spml.Subscriber, error) {
	return s.searchSubscriber(ctx, spml.SearchAliasPublic, userID, site, e164)
}

func (s *Service) searchPrivate(ctx context.Context, userID, site string) (*spml.Subscriber, error) {
	return s.searchSubscriber(ctx, spml.SearchAliasPrivate, userID, site, false)
}

// deleteByIdentifier removes a whole subscriber and counts the outcome.
func (s *Service) deleteByIdentifier(ctx context.Context, identifier string) error {
	resp, err := s.exchange(ctx, s.builder.DeleteRequest(identifier))
	if err != nil {
		return err
	}
	if !resp.Success() {
		s.metrics.IncrementFailure(models.OperationDelete)
		return dErrors.New(dErrors.CodeInternal, "registry rejected delete: "+resp.ErrorMessage)
	}
	s.metrics.IncrementDeleted()
	return nil
}
