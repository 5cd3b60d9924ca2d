package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BlueprintCost_Go/internal/domain"
	"github.com/osse101/BlueprintCost_Go/internal/validation"
)

const sampleCatalog = `{
	"1136": {
		"blueprintTypeID": 1136,
		"activities": {
			"manufacturing": {
				"time": 600,
				"materials": [{"typeID": 34, "quantity": 300}, {"typeID": 35, "quantity": 120}],
				"products": [{"typeID": 1135, "quantity": 1}]
			},
			"invention": {
				"time": 1800,
				"materials": [{"typeID": 20411, "quantity": 2}],
				"products": [{"typeID": 12055, "quantity": 1}]
			},
			"copying": {"time": 480}
		}
	},
	"12055": {
		"activities": {
			"manufacturing": {
				"time": 3000,
				"materials": [{"typeID": 1135, "quantity": 1}, {"typeID": 34, "quantity": 900}],
				"products": [{"typeID": 12054, "quantity": 1}]
			}
		}
	},
	"46166": {
		"blueprintTypeID": 46166,
		"activities": {
			"reaction": {
				"time": 10800,
				"materials": [{"typeID": 16634, "quantity": 100}],
				"products": [{"typeID": 16670, "quantity": 200}]
			}
		}
	}
}`

func newTestLoader(t *testing.T) Loader {
	t.Helper()
	l, err := NewLoader(validation.NewSchemaValidator())
	require.NoError(t, err)
	return l
}

func TestParse_SDELayout(t *testing.T) {
	l := newTestLoader(t)

	loaded, err := l.Parse([]byte(sampleCatalog))

	require.NoError(t, err)
	cat := loaded.Catalog
	require.Equal(t, 3, cat.Len())

	// document order is preserved
	assert.Equal(t, domain.TypeID(1136), cat.Blueprints[0].ID)
	assert.Equal(t, domain.TypeID(12055), cat.Blueprints[1].ID, "id falls back to the object key")
	assert.Equal(t, domain.TypeID(46166), cat.Blueprints[2].ID)

	t1 := cat.Blueprints[0]
	require.NotNil(t, t1.Manufacturing)
	assert.Equal(t, int64(600), t1.Manufacturing.Time)
	assert.Equal(t, []domain.Quantity{{TypeID: 34, Quantity: 300}, {TypeID: 35, Quantity: 120}}, t1.Manufacturing.Materials)
	assert.Equal(t, []domain.Quantity{{TypeID: 1135, Quantity: 1}}, t1.Manufacturing.Products)
	require.NotNil(t, t1.Invention)
	assert.Equal(t, []domain.Quantity{{TypeID: 12055, Quantity: 1}}, t1.Invention.Products)
	assert.Nil(t, t1.Reaction)

	r := cat.Blueprints[2]
	assert.Nil(t, r.Manufacturing)
	require.NotNil(t, r.Reaction)
	assert.Equal(t, int64(200), r.OutputQuantity())

	assert.Len(t, loaded.Version, 64)
	assert.Equal(t, Digest([]byte(sampleCatalog)), loaded.Version)
}

func TestParse_Invalid(t *testing.T) {
	l := newTestLoader(t)

	tests := []struct {
		name string
		data string
	}{
		{"malformed JSON", `{"1136": {`},
		{"not an object", `[1, 2, 3]`},
		{"non numeric key", `{"rifter": {"activities": {}}}`},
		{"material without quantity", `{"1": {"activities": {"manufacturing": {"materials": [{"typeID": 34}]}}}}`},
		{"string time", `{"1": {"activities": {"manufacturing": {"time": "fast"}}}}`},
		{"zero key without id", `{"0": {"activities": {}}}`},
		{"key beyond type id range", `{"4294967987": {"activities": {}}}`},
		{"blueprint id beyond type id range", `{"1": {"blueprintTypeID": 4294967987, "activities": {}}}`},
		{"material id beyond type id range", `{"1": {"activities": {"manufacturing": {"materials": [{"typeID": 4294967330, "quantity": 1}]}}}}`},
		{"product id beyond type id range", `{"1": {"activities": {"reaction": {"products": [{"typeID": 4294967883, "quantity": 1}]}}}}`},
		{"duplicate blueprint id", `{"691": {"blueprintTypeID": 691, "activities": {}}, "692": {"blueprintTypeID": 691, "activities": {}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loaded, err := l.Parse([]byte(tt.data))

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
			assert.Nil(t, loaded)
		})
	}
}

func TestParse_WrappingIDsDoNotShadowRealBlueprint(t *testing.T) {
	// 4294967987 wraps to 691 as an int32
	const data = `{
		"691": {"blueprintTypeID": 691, "activities": {"manufacturing": {"time": 6000,
			"materials": [{"typeID": 34, "quantity": 100}],
			"products": [{"typeID": 587, "quantity": 1}]}}},
		"4294967987": {"blueprintTypeID": 4294967987, "activities": {"manufacturing": {"time": 1,
			"materials": [{"typeID": 4294967330, "quantity": 1}],
			"products": [{"typeID": 4294967883, "quantity": 1}]}}}
	}`

	loaded, err := newTestLoader(t).Parse([]byte(data))

	require.ErrorIs(t, err, domain.ErrInvalidCatalog)
	assert.Nil(t, loaded)
}

func TestParse_DuplicateIDNamesBothEntries(t *testing.T) {
	_, err := newTestLoader(t).Parse([]byte(`{"691": {"blueprintTypeID": 691}, "692": {"blueprintTypeID": 691}}`))

	require.ErrorIs(t, err, domain.ErrInvalidCatalog)
	assert.Contains(t, err.Error(), `"691"`)
	assert.Contains(t, err.Error(), `"692"`)
}

func TestParse_EmptyDocument(t *testing.T) {
	loaded, err := newTestLoader(t).Parse([]byte(`{}`))

	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Catalog.Len())
}

func TestLoad(t *testing.T) {
	l := newTestLoader(t)
	path := filepath.Join(t.TempDir(), "blueprints.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0644))

	loaded, err := l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Catalog.Len())

	_, err = l.Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read catalog file")
}

func TestLoad_SampleConfig(t *testing.T) {
	loaded, err := newTestLoader(t).Load(filepath.Join("..", "..", "configs", "blueprints.json"))

	require.NoError(t, err)
	assert.Greater(t, loaded.Catalog.Len(), 0)
}

func TestDigest_ChangesWithContent(t *testing.T) {
	assert.NotEqual(t, Digest([]byte(`{}`)), Digest([]byte(`{"1": {}}`)))
	assert.Equal(t, Digest([]byte(`{}`)), Digest([]byte(`{}`)))
}
