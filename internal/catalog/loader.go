// Package catalog reads blueprint catalogs in the SDE blueprints layout.
package catalog

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/osse101/BlueprintCost_Go/internal/domain"
	"github.com/osse101/BlueprintCost_Go/internal/validation"
)

// SchemaName is the name the catalog schema is registered under
const SchemaName = "blueprints"

//go:embed blueprints.schema.json
var blueprintSchema []byte

// Activity keys inside a blueprint's "activities" object
const (
	keyManufacturing = "manufacturing"
	keyReaction      = "reaction"
	keyInvention     = "invention"
)

// Loaded is a parsed catalog with the digest of the document it came from
type Loaded struct {
	Catalog *domain.Catalog
	Version string
}

// Loader reads and validates blueprint catalogs
type Loader interface {
	Load(path string) (*Loaded, error)
	Parse(data []byte) (*Loaded, error)
}

type loader struct {
	schemas validation.SchemaValidator
}

// NewLoader creates a Loader, registering the catalog schema with schemas
func NewLoader(schemas validation.SchemaValidator) (Loader, error) {
	if err := schemas.Register(SchemaName, blueprintSchema); err != nil {
		return nil, fmt.Errorf("failed to register catalog schema: %w", err)
	}
	return &loader{schemas: schemas}, nil
}

// Load reads the catalog file at path
func (l *loader) Load(path string) (*Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return l.Parse(data)
}

// Parse validates the document against the catalog schema and walks it in
// document order, which becomes the catalog order.
func (l *loader) Parse(data []byte) (*Loaded, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", domain.ErrInvalidCatalog)
	}
	if err := l.schemas.ValidateBytes(data, SchemaName); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}

	catalog := &domain.Catalog{}
	seen := make(map[domain.TypeID]string)
	var parseErr error
	gjson.ParseBytes(data).ForEach(func(key, v gjson.Result) bool {
		raw := v.Get("blueprintTypeID").Int()
		if raw == 0 {
			raw = key.Int()
		}
		id, ok := domain.TypeIDFromInt(raw)
		if !ok {
			parseErr = fmt.Errorf("%w: entry %q has no valid blueprint id", domain.ErrInvalidCatalog, key.String())
			return false
		}
		if prev, dup := seen[id]; dup {
			parseErr = fmt.Errorf("%w: entries %q and %q share blueprint id %d", domain.ErrInvalidCatalog, prev, key.String(), id)
			return false
		}
		seen[id] = key.String()

		bp := domain.Blueprint{ID: id}
		activities := v.Get("activities")
		for _, slot := range []struct {
			name string
			dst  **domain.Activity
		}{
			{keyManufacturing, &bp.Manufacturing},
			{keyReaction, &bp.Reaction},
			{keyInvention, &bp.Invention},
		} {
			act, err := parseActivity(activities.Get(slot.name))
			if err != nil {
				parseErr = fmt.Errorf("%w: blueprint %d %s: %v", domain.ErrInvalidCatalog, id, slot.name, err)
				return false
			}
			*slot.dst = act
		}
		catalog.Blueprints = append(catalog.Blueprints, bp)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return &Loaded{Catalog: catalog, Version: Digest(data)}, nil
}

func parseActivity(r gjson.Result) (*domain.Activity, error) {
	if !r.Exists() || !r.IsObject() {
		return nil, nil
	}
	materials, err := parseQuantities(r.Get("materials"))
	if err != nil {
		return nil, err
	}
	products, err := parseQuantities(r.Get("products"))
	if err != nil {
		return nil, err
	}
	return &domain.Activity{
		Time:      r.Get("time").Int(),
		Materials: materials,
		Products:  products,
	}, nil
}

// parseQuantities reads (typeID, quantity) pairs. Type id 0 passes through
// and is ignored by the evaluator; ids above MaxTypeID are rejected.
func parseQuantities(r gjson.Result) ([]domain.Quantity, error) {
	if !r.IsArray() {
		return nil, nil
	}
	out := make([]domain.Quantity, 0, len(r.Array()))
	var err error
	r.ForEach(func(_, q gjson.Result) bool {
		raw := q.Get("typeID").Int()
		if raw < 0 || raw > domain.MaxTypeID {
			err = fmt.Errorf("type id %d out of range", raw)
			return false
		}
		out = append(out, domain.Quantity{
			TypeID:   domain.TypeID(raw),
			Quantity: q.Get("quantity").Int(),
		})
		return true
	})
	return out, err
}

// Digest is the hex sha256 of a document, used as its version
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
