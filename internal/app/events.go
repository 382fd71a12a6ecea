package app

import (
	"context"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
)

// eventPayload attaches the request id to event payloads so the
// notification dispatcher can correlate signals with requests.
func eventPayload(ctx context.Context, fields map[string]string) map[string]string {
	if fields == nil {
		fields = map[string]string{}
	}
	if requestID, ok := common.RequestIDFromContext(ctx); ok && requestID != "" {
		fields["request_id"] = requestID
	}
	return fields
}
