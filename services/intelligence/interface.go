// File: services/intelligence/interface.go
package intelligence

import (
	"context"

	"schedbot/models"
)

// IntentExtractor turns free text into the model's raw output. The result is
// a tagged value: upstream failures arrive as ExtractionResult.Err, never as
// a returned error or a panic.
type IntentExtractor interface {
	Extract(ctx context.Context, text string) models.ExtractionResult
}
