package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlueprint_PrimaryProduct(t *testing.T) {
	tests := []struct {
		name       string
		bp         Blueprint
		want       Quantity
		wantOK     bool
		wantOutput int64
	}{
		{
			name: "manufacturing wins over reaction",
			bp: Blueprint{
				ID:            1,
				Manufacturing: &Activity{Products: []Quantity{{TypeID: 11, Quantity: 10}}},
				Reaction:      &Activity{Products: []Quantity{{TypeID: 12, Quantity: 200}}},
			},
			want:       Quantity{TypeID: 11, Quantity: 10},
			wantOK:     true,
			wantOutput: 10,
		},
		{
			name:       "reaction only",
			bp:         Blueprint{ID: 2, Reaction: &Activity{Products: []Quantity{{TypeID: 21, Quantity: 200}}}},
			want:       Quantity{TypeID: 21, Quantity: 200},
			wantOK:     true,
			wantOutput: 200,
		},
		{
			name:       "manufacturing without products falls back to reaction",
			bp:         Blueprint{ID: 3, Manufacturing: &Activity{}, Reaction: &Activity{Products: []Quantity{{TypeID: 31, Quantity: 5}}}},
			want:       Quantity{TypeID: 31, Quantity: 5},
			wantOK:     true,
			wantOutput: 5,
		},
		{
			name:       "no products",
			bp:         Blueprint{ID: 4},
			wantOutput: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.bp.PrimaryProduct()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOutput, tt.bp.OutputQuantity())
		})
	}
}

func TestBlueprint_BuildMaterialsSkipsInvention(t *testing.T) {
	bp := Blueprint{
		Manufacturing: &Activity{Materials: []Quantity{{TypeID: 34, Quantity: 10}}},
		Reaction:      &Activity{Materials: []Quantity{{TypeID: 16634, Quantity: 100}}},
		Invention:     &Activity{Materials: []Quantity{{TypeID: 20410, Quantity: 2}}},
	}

	assert.Equal(t, []Quantity{{TypeID: 34, Quantity: 10}, {TypeID: 16634, Quantity: 100}}, bp.BuildMaterials())
	assert.Nil(t, (&Blueprint{}).BuildMaterials())
}

func TestApproximation_Strings(t *testing.T) {
	tests := []struct {
		approx Approximation
		want   []string
		str    string
	}{
		{0, []string{}, FlagExact},
		{ApproxCycle, []string{FlagCycleTruncated}, FlagCycleTruncated},
		{ApproxMissingPrice, []string{FlagMissingPrice}, FlagMissingPrice},
		{ApproxCycle | ApproxMissingPrice, []string{FlagCycleTruncated, FlagMissingPrice}, "cycle_truncated,missing_price"},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.approx.Strings())
			assert.Equal(t, tt.str, tt.approx.String())
			assert.Equal(t, tt.approx == 0, tt.approx.Exact())
		})
	}
}

func TestRunParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  RunParams
		wantErr bool
	}{
		{"zero value", RunParams{}, false},
		{"upper bounds", RunParams{DefaultME: 100, DefaultTE: 100, StructureBonus: 100, IndustryLevel: 5, ReactionLevel: 5}, false},
		{"me above range", RunParams{DefaultME: 101}, true},
		{"negative te", RunParams{DefaultTE: -1}, true},
		{"rig bonus above range", RunParams{RigBonus: 100.5}, true},
		{"negative reaction bonus", RunParams{ReactionStructureBonus: -0.1}, true},
		{"industry level above range", RunParams{IndustryLevel: 6}, true},
		{"negative advanced industry", RunParams{AdvancedIndustryLevel: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidRunParams)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEfficiency_Validate(t *testing.T) {
	assert.NoError(t, Efficiency{ME: 10, TE: 20}.Validate())
	assert.ErrorIs(t, Efficiency{ME: -1}.Validate(), ErrInvalidEfficiency)
	assert.ErrorIs(t, Efficiency{TE: 101}.Validate(), ErrInvalidEfficiency)
}

func TestPriceTable_Price(t *testing.T) {
	prices := PriceTable{34: 4.5}

	p, ok := prices.Price(34)
	assert.True(t, ok)
	assert.Equal(t, 4.5, p)

	_, ok = prices.Price(35)
	assert.False(t, ok)
}

func TestTypeIDFromInt(t *testing.T) {
	tests := []struct {
		in     int64
		want   TypeID
		wantOK bool
	}{
		{691, 691, true},
		{MaxTypeID, MaxTypeID, true},
		{0, 0, false},
		{-5, 0, false},
		{MaxTypeID + 1, 0, false},
		{4294967987, 0, false},
	}
	for _, tt := range tests {
		got, ok := TypeIDFromInt(tt.in)
		assert.Equal(t, tt.wantOK, ok, "input %d", tt.in)
		assert.Equal(t, tt.want, got, "input %d", tt.in)
	}
}
