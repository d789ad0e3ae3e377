package registry

import (
	"context"
	"log/slog"

	"hss-gateway/internal/spml"
)

// Transport posts a serialized SOAP envelope and returns the raw reply.
type Transport interface {
	Do(ctx context.Context, envelope string) (string, error)
}

// Gateway runs the full request pipeline: marshal the SPML graph, wrap
// it in a SOAP envelope, exchange it, and decode the reply payload.
type Gateway struct {
	transport Transport
	logger    *slog.Logger
}

// NewGateway returns a Gateway over the given transport.
func NewGateway(transport Transport, logger *slog.Logger) *Gateway {
	return &Gateway{transport: transport, logger: logger}
}

// Exchange sends one SPML request and returns the decoded response. A
// reply with an empty SOAP body yields a synthetic failure response, so
// callers always see a result for a delivered request.
func (g *Gateway) Exchange(ctx context.Context, req any, transactionID string) (*spml.Response, error) {
	payload, err := spml.MarshalRequest(req)
	if err != nil {
		return nil, err
	}

	envelope, err := spml.WrapSOAP(payload)
	if err != nil {
		return nil, err
	}

	reply, err := g.transport.Do(ctx, envelope)
	if err != nil {
		g.logger.ErrorContext(ctx, "registry exchange failed",
			"error", err,
			"transaction_id", transactionID,
		)
		return nil, err
	}

	replyPayload, err := spml.ExtractPayload(reply)
	if err != nil {
		return nil, err
	}
	if replyPayload == "" {
		g.logger.WarnContext(ctx, "registry reply had empty body",
			"transaction_id", transactionID,
		)
		return spml.FailureResponse(), nil
	}

	return spml.UnmarshalResponse(replyPayload)
}
