// Package render produces the downloadable artifact for a template, document
// or contract. Rendering is deterministic: identical input yields identical
// bytes, which keeps artifact content reproducible and testable.
package render

import (
	"context"

	"github.com/propside/portal-go/internal/domain/template"
)

type Input struct {
	Title                string
	Description          string
	RecipientName        string
	RecipientEmail       string
	Fields               []template.Field
	Terms                string
	CommissionPercentage *float64
	Signed               bool
}

type Renderer interface {
	Render(ctx context.Context, in Input) ([]byte, error)
}
