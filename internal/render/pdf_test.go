package render_test

import (
	"context"
	"testing"

	"github.com/propside/portal-go/internal/domain/template"
	"github.com/propside/portal-go/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInput() render.Input {
	commission := 12.5
	deposit := "2 months"
	return render.Input{
		Title:                "Management Agreement",
		Description:          "Annual property management agreement.",
		RecipientName:        "Alex Chen",
		RecipientEmail:       "alex@example.com",
		Terms:                "The manager collects rent on behalf of the owner.",
		CommissionPercentage: &commission,
		Fields: []template.Field{
			{ID: "f1", Label: "Unit", Type: template.FieldText, Required: true},
			{ID: "f2", Label: "Deposit", Type: template.FieldText, DefaultValue: &deposit},
		},
	}
}

func TestPDFRendererDeterministic(t *testing.T) {
	r := render.NewPDFRenderer()
	ctx := context.Background()

	first, err := r.Render(ctx, sampleInput())
	require.NoError(t, err)
	second, err := r.Render(ctx, sampleInput())
	require.NoError(t, err)

	assert.Equal(t, first, second, "same input must produce identical bytes")
}

func TestPDFRendererOutput(t *testing.T) {
	r := render.NewPDFRenderer()
	ctx := context.Background()

	out, err := r.Render(ctx, sampleInput())
	require.NoError(t, err)
	assert.True(t, len(out) > 4)
	assert.Equal(t, "%PDF", string(out[:4]))

	unsigned, err := r.Render(ctx, render.Input{Title: "Notice", RecipientName: "Alex Chen"})
	require.NoError(t, err)
	signed, err := r.Render(ctx, render.Input{Title: "Notice", RecipientName: "Alex Chen", Signed: true})
	require.NoError(t, err)
	assert.NotEqual(t, unsigned, signed, "signed artifact must differ from the unsigned one")
}
