// File: services/pipeline/interface.go
package pipeline

import (
	"context"

	"schedbot/models"
)

// PipelineService drives one inbound webhook event through the full
// orchestration: filter, fetch, extract, parse, provision, publish. It never
// returns an error; every failure is contained and logged, and the webhook
// handler acks regardless.
type PipelineService interface {
	HandleEvent(ctx context.Context, event models.WebhookEvent)
}
