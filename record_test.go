package schemakit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemakit"
)

type profileRecord struct {
	name  string
	email string
}

func (p profileRecord) Fields() map[string]any {
	return map[string]any{"name": p.name, "email": p.email}
}

func TestRecordFieldsMaps(t *testing.T) {
	t.Run("string-keyed any maps pass through unchanged", func(t *testing.T) {
		in := map[string]any{"a": 1, "b": "two"}

		fields, err := schemakit.RecordFields(in)

		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": 1, "b": "two"}, fields)
	})

	t.Run("other string-keyed maps convert element by element", func(t *testing.T) {
		fields, err := schemakit.RecordFields(map[string]string{"a": "x", "b": "y"})

		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": "x", "b": "y"}, fields)
	})

	t.Run("non-string keys are rejected", func(t *testing.T) {
		_, err := schemakit.RecordFields(map[int]any{1: "x"})

		require.Error(t, err)
		assert.ErrorIs(t, err, schemakit.ErrNotRecord)
	})
}

func TestRecordFieldsStructs(t *testing.T) {
	t.Run("json tags rename and skip fields", func(t *testing.T) {
		type payload struct {
			Username string `json:"username"`
			Secret   string `json:"-"`
			Plain    string
		}

		fields, err := schemakit.RecordFields(payload{Username: "alice", Secret: "hush", Plain: "p"})

		require.NoError(t, err)
		assert.Equal(t, "alice", fields["username"])
		assert.Equal(t, "p", fields["Plain"])
		assert.NotContains(t, fields, "Secret")
		assert.NotContains(t, fields, "-")
	})

	t.Run("tag options after the name are ignored", func(t *testing.T) {
		type payload struct {
			Name string `json:"name,omitempty"`
		}

		fields, err := schemakit.RecordFields(payload{Name: "x"})

		require.NoError(t, err)
		assert.Equal(t, "x", fields["name"])
	})

	t.Run("unexported fields are skipped", func(t *testing.T) {
		type payload struct {
			Public string
			hidden string
		}

		fields, err := schemakit.RecordFields(payload{Public: "a", hidden: "b"})

		require.NoError(t, err)
		assert.Equal(t, map[string]any{"Public": "a"}, fields)
	})

	t.Run("introspection is shallow", func(t *testing.T) {
		type address struct {
			City string `json:"city"`
		}
		type payload struct {
			Address address   `json:"address"`
			Created time.Time `json:"created"`
		}

		created := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
		fields, err := schemakit.RecordFields(payload{Address: address{City: "Kyiv"}, Created: created})

		require.NoError(t, err)
		assert.Equal(t, address{City: "Kyiv"}, fields["address"])
		assert.Equal(t, created, fields["created"])
	})

	t.Run("pointers to structs are dereferenced", func(t *testing.T) {
		type payload struct {
			Name string `json:"name"`
		}

		fields, err := schemakit.RecordFields(&payload{Name: "x"})

		require.NoError(t, err)
		assert.Equal(t, "x", fields["name"])
	})
}

func TestRecordFieldsEmbedding(t *testing.T) {
	type base struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	t.Run("embedded struct fields are inlined", func(t *testing.T) {
		type payload struct {
			base
			Email string `json:"email"`
		}

		fields, err := schemakit.RecordFields(payload{base: base{ID: "1", Name: "inner"}, Email: "a@b.co"})

		require.NoError(t, err)
		assert.Equal(t, "1", fields["id"])
		assert.Equal(t, "inner", fields["name"])
		assert.Equal(t, "a@b.co", fields["email"])
	})

	t.Run("outer fields shadow embedded ones", func(t *testing.T) {
		type payload struct {
			base
			Name string `json:"name"`
		}

		fields, err := schemakit.RecordFields(payload{base: base{Name: "inner"}, Name: "outer"})

		require.NoError(t, err)
		assert.Equal(t, "outer", fields["name"])
	})

	t.Run("embedded struct pointers are followed when set", func(t *testing.T) {
		type payload struct {
			*base
			Email string `json:"email"`
		}

		fields, err := schemakit.RecordFields(payload{base: &base{ID: "1"}, Email: "a@b.co"})
		require.NoError(t, err)
		assert.Equal(t, "1", fields["id"])

		fields, err = schemakit.RecordFields(payload{Email: "a@b.co"})
		require.NoError(t, err)
		assert.NotContains(t, fields, "id")
		assert.Equal(t, "a@b.co", fields["email"])
	})

	t.Run("tagged embedded structs stay whole", func(t *testing.T) {
		type payload struct {
			Base base `json:"base"`
		}

		fields, err := schemakit.RecordFields(payload{Base: base{ID: "1"}})

		require.NoError(t, err)
		assert.Equal(t, base{ID: "1"}, fields["base"])
		assert.NotContains(t, fields, "id")
	})
}

func TestRecordFieldsInterface(t *testing.T) {
	t.Run("Record implementations take precedence over reflection", func(t *testing.T) {
		fields, err := schemakit.RecordFields(profileRecord{name: "alice", email: "a@b.co"})

		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "alice", "email": "a@b.co"}, fields)
	})
}

func TestRecordFieldsRejections(t *testing.T) {
	t.Run("nil is not a record", func(t *testing.T) {
		_, err := schemakit.RecordFields(nil)
		assert.ErrorIs(t, err, schemakit.ErrNotRecord)
	})

	t.Run("nil struct pointers are not records", func(t *testing.T) {
		type payload struct{ Name string }

		_, err := schemakit.RecordFields((*payload)(nil))
		assert.ErrorIs(t, err, schemakit.ErrNotRecord)
	})

	t.Run("scalars and slices are not records", func(t *testing.T) {
		_, err := schemakit.RecordFields(42)
		require.Error(t, err)
		assert.ErrorIs(t, err, schemakit.ErrNotRecord)
		assert.Contains(t, err.Error(), "int")

		_, err = schemakit.RecordFields([]string{"a"})
		assert.ErrorIs(t, err, schemakit.ErrNotRecord)
	})
}
