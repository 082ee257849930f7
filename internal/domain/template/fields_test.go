package template_test

import (
	"testing"

	"github.com/propside/portal-go/internal/domain/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func field(id, label string) template.Field {
	return template.Field{ID: id, Label: label, Type: template.FieldText}
}

func TestAddField(t *testing.T) {
	orig := []template.Field{field("a", "Name")}
	out := template.AddField(orig, field("b", "Email"))

	assert.Len(t, out, 2)
	assert.Len(t, orig, 1, "input slice must not be modified")
	assert.Equal(t, "b", out[1].ID)
}

func TestUpdateField(t *testing.T) {
	orig := []template.Field{field("a", "Name"), field("b", "Email")}

	out := template.UpdateField(orig, field("b", "Contact Email"))
	assert.Equal(t, "Contact Email", out[1].Label)
	assert.Equal(t, "Email", orig[1].Label, "input slice must not be modified")

	unchanged := template.UpdateField(orig, field("zzz", "Nope"))
	assert.Equal(t, orig, unchanged)
}

func TestRemoveField(t *testing.T) {
	t.Run("removes by id", func(t *testing.T) {
		orig := []template.Field{field("a", "Name"), field("b", "Email")}
		out, err := template.RemoveField(orig, "a")
		require.NoError(t, err)
		assert.Len(t, out, 1)
		assert.Equal(t, "b", out[0].ID)
	})

	t.Run("refuses to drop the last field", func(t *testing.T) {
		orig := []template.Field{field("a", "Name")}
		out, err := template.RemoveField(orig, "a")
		assert.ErrorIs(t, err, template.ErrLastField)
		assert.Len(t, out, 1)
	})
}
