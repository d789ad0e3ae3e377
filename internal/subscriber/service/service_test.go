package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hss-gateway/internal/catalog"
	"hss-gateway/internal/keygen"
	"hss-gateway/internal/spml"
	"hss-gateway/internal/subscriber/builder"
	"hss-gateway/internal/subscriber/metrics"
	"hss-gateway/internal/subscriber/models"
	dErrors "hss-gateway/pkg/domain-errors"
)

// stubExchanger replays scripted responses and records every request it
// was handed, in order.
type stubExchanger struct {
	responses []*spml.Response
	requests  []any
	err       error
}

func (s *stubExchanger) Exchange(_ context.Context, req any, _ string) (*spml.Response, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	if len(s.responses) == 0 {
		return spml.FailureResponse(), nil
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

func newTestService(stub *stubExchanger) *Service {
	keys := keygen.NewSeeded(11)
	cat := catalog.Default()
	return New(
		stub,
		builder.New(keys, cat),
		keys,
		cat,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics.New(prometheus.NewRegistry()),
	)
}

func notFound() *spml.Response {
	return &spml.Response{Result: spml.ResultFailure}
}

func success() *spml.Response {
	return &spml.Response{Result: spml.ResultSuccess}
}

func found(sub *spml.Subscriber) *spml.Response {
	return &spml.Response{Result: spml.ResultSuccess, Subscriber: sub}
}

func provisionedLine(identifier string, numbers ...string) *spml.Subscriber {
	hss := &spml.Hss{}
	for i, tn := range numbers {
		suffix := string(rune('a' + i))
		hss.PublicUserIDs = append(hss.PublicUserIDs,
			spml.PublicUserID{
				OriginalPublicUserID: "sip:" + tn + "@ims.eng.rr.com",
				DefaultIndication:    "false",
				ServiceProfileName:   "sp-" + suffix,
				IRSID:                "irs-" + suffix,
			},
			spml.PublicUserID{
				OriginalPublicUserID: "sip:+1" + tn + "@ims.eng.rr.com",
				DefaultIndication:    "true",
				ServiceProfileName:   "sp-" + suffix,
				IRSID:                "irs-" + suffix,
			},
		)
	}
	return &spml.Subscriber{Identifier: identifier, Hss: hss}
}

func createRequest() *models.DigitalPhone {
	return &models.DigitalPhone{
		Operation:      models.OperationCreate,
		Name:           models.NameIndividual,
		Site:           "DV2",
		FeaturePackage: "DP01",
		PublicIdentity: []models.PublicIdentity{
			{Operation: models.OperationCreate, UserID: "8216328886"},
		},
		Profile: &models.Profile{
			TAS: "DCA01q",
			Features: []models.Feature{
				{Name: models.FeaturePackage, Value: "DP01", Operation: models.OperationCreate},
				{Name: "DP01", Operation: models.OperationCreate},
				{Name: "900", Operation: models.OperationCreate},
			},
		},
		PrivateIdentity: []models.PrivateIdentity{{
			Operation: models.OperationCreate,
			UserID:    "219BF751A12481C6",
			Password:  "digest-key",
		}},
	}
}

func TestCreateIndividualProvisionsNewLine(t *testing.T) {
	stub := &stubExchanger{responses: []*spml.Response{
		notFound(), // public search
		notFound(), // private search
		success(),  // add
	}}
	svc := newTestService(stub)

	resp, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)
	assert.Equal(t, models.StatusCreated, resp.Status)

	require.Len(t, stub.requests, 3)
	_, ok := stub.requests[0].(*spml.SearchRequest)
	assert.True(t, ok)
	add, ok := stub.requests[2].(*spml.AddRequest)
	require.True(t, ok)
	assert.Equal(t, spml.TypeSubscriber, add.Object.Type)
}

func TestCreateIndividualExistingLineIsIdempotent(t *testing.T) {
	stub := &stubExchanger{responses: []*spml.Response{
		found(provisionedLine("id-1", "8216328886")),
	}}
	svc := newTestService(stub)

	resp, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)
	assert.Equal(t, models.StatusSuccess, resp.Status)
	assert.Len(t, stub.requests, 1, "no mutation for an existing subscriber")
}

func TestCreateIndividualRegistryFailure(t *testing.T) {
	stub := &stubExchanger{responses: []*spml.Response{
		notFound(),
		notFound(),
		{Result: spml.ResultFailure, ErrorMessage: "quota exceeded"},
	}}
	svc := newTestService(stub)

	resp, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailure, resp.Status)
	assert.Equal(t, "quota exceeded", resp.Description)
}

func TestCreateIndividualRejectsBadNumber(t *testing.T) {
	svc := newTestService(&stubExchanger{})

	phone := createRequest()
	phone.PublicIdentity[0].UserID = "12345"

	_, err := svc.Create(context.Background(), phone)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))
}

func TestCreateValidatesFeatureConsistency(t *testing.T) {
	svc := newTestService(&stubExchanger{})

	cases := map[string]func(*models.DigitalPhone){
		"missing package":         func(p *models.DigitalPhone) { p.FeaturePackage = "" },
		"no features":             func(p *models.DigitalPhone) { p.Profile.Features = nil },
		"mismatched marker":       func(p *models.DigitalPhone) { p.Profile.Features[0].Value = "BC01" },
		"missing marker":          func(p *models.DigitalPhone) { p.Profile.Features[0].Name = "CID" },
		"missing named feature":   func(p *models.DigitalPhone) { p.Profile.Features[1].Name = "BC01" },
		"missing subscriber name": func(p *models.DigitalPhone) { p.Name = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			phone := createRequest()
			mutate(phone)

			_, err := svc.Create(context.Background(), phone)
			require.Error(t, err)
			assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))
		})
	}
}

func TestCreateAcceptsLowercaseName(t *testing.T) {
	stub := &stubExchanger{responses: []*spml.Response{notFound(), notFound(), success()}}
	svc := newTestService(stub)

	phone := createRequest()
	phone.Name = "dphone"

	resp, err := svc.Create(context.Background(), phone)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCreated, resp.Status)
}

func TestCreateRejectsUnknownVariant(t *testing.T) {
	svc := newTestService(&stubExchanger{})

	phone := createRequest()
	phone.Name = "PBX"

	_, err := svc.Create(context.Background(), phone)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))
}

func deleteRequest(tn string) *models.DigitalPhone {
	return &models.DigitalPhone{
		Operation: models.OperationDelete,
		Site:      "DV2",
		PublicIdentity: []models.PublicIdentity{
			{Operation: models.OperationDelete, UserID: tn},
		},
	}
}

func TestDeleteIndividualLastLineRemovesSubscriber(t *testing.T) {
	stub := &stubExchanger{responses: []*spml.Response{
		found(provisionedLine("id-9", "8216328886")),
		success(),
	}}
	svc := newTestService(stub)

	err := svc.Delete(context.Background(), deleteRequest("8216328886"))
	require.NoError(t, err)

	require.Len(t, stub.requests, 2)
	del, ok := stub.requests[1].(*spml.DeleteRequest)
	require.True(t, ok)
	assert.Equal(t, "id-9", del.Identifier)
}

func TestDeleteIndividualSecondaryLineModifies(t *testing.T) {
	stub := &stubExchanger{responses: []*spml.Response{
		found(provisionedLine("id-9", "8216328886", "8216328887")),
		success(),
	}}
	svc := newTestService(stub)

	err := svc.Delete(context.Background(), deleteRequest("8216328887"))
	require.NoError(t, err)

	require.Len(t, stub.requests, 2)
	mod, ok := stub.requests[1].(*spml.ModifyRequest)
	require.True(t, ok)
	assert.Equal(t, "id-9", mod.Identifier)

	var removals, profileRemovals, irsRemovals int
	for _, m := range mod.Modifications {
		require.NotNil(t, m.Match)
		switch m.Match.Type {
		case spml.TypePublicUserID:
			removals++
			assert.Contains(t, m.Match.OriginalPublicUserID, "8216328887")
		case spml.TypeServiceProfile:
			profileRemovals++
		case spml.TypeImplicitRegisteredSet:
			irsRemovals++
		}
	}
	assert.Equal(t, 2, removals, "bare and E.164 forms both removed")
	assert.Equal(t, 1, profileRemovals)
	assert.Equal(t, 1, irsRemovals)
}

func TestDeleteIndividualRemovesSuppliedPrivateIdentities(t *testing.T) {
	stub := &stubExchanger{responses: []*spml.Response{
		found(provisionedLine("id-9", "8216328886", "8216328887")),
		success(),
	}}
	svc := newTestService(stub)

	phone := deleteRequest("8216328887")
	phone.PrivateIdentity = []models.PrivateIdentity{
		{UserID: "219BF751A12481C6"},
		{Operation: models.OperationDelete, UserID: "00000000DEADBEEF"},
	}

	err := svc.Delete(context.Background(), phone)
	require.NoError(t, err)

	require.Len(t, stub.requests, 2)
	mod, ok := stub.requests[1].(*spml.ModifyRequest)
	require.True(t, ok)

	var privates []string
	for _, m := range mod.Modifications {
		require.NotNil(t, m.Match)
		if m.Match.Type == spml.TypePrivateUserID {
			privates = append(privates, m.Match.PrivateUserID)
		}
	}
	assert.Equal(t, []string{
		"219BF751A12481C6@ims.eng.rr.com",
		"00000000DEADBEEF@ims.eng.rr.com",
	}, privates, "every supplied private identity is removed regardless of its operation")
}

func TestDeleteIndividualUnknownNumber(t *testing.T) {
	stub := &stubExchanger{responses: []*spml.Response{notFound()}}
	svc := newTestService(stub)

	err := svc.Delete(context.Background(), deleteRequest("8216328886"))
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
}

func TestDeleteIndividualRejectsMultipleNumbers(t *testing.T) {
	svc := newTestService(&stubExchanger{})

	phone := deleteRequest("8216328886")
	phone.PublicIdentity = append(phone.PublicIdentity, models.PublicIdentity{
		Operation: models.OperationDelete, UserID: "8216328887",
	})

	err := svc.Delete(context.Background(), phone)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))
}
