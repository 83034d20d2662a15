// Package classifier provides sentiment classification backends.
package classifier

import (
	"context"

	"github.com/feedworks/sentiserver/pkg/types"
)

// Classifier maps text to a categorical sentiment label plus a per-class
// confidence breakdown.
type Classifier interface {
	Detect(ctx context.Context, text string) (types.Result, error)
}
