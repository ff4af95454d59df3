package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaikyD/velocity-express/internal/domain"
)

func TestEstimateCost(t *testing.T) {
	tests := []struct {
		name string
		in   domain.PackageDetail
		want Estimate
	}{
		{
			name: "weight dominates",
			in: domain.PackageDetail{
				Type: domain.PackageParcel, WeightKg: 2,
				LengthCm: 10, WidthCm: 10, HeightCm: 10,
			},
			want: Estimate{VolumeLiters: 1, BaseCost: 10000, Total: 10000},
		},
		{
			name: "volume dominates, fragile and insured",
			in: domain.PackageDetail{
				Type: domain.PackageElectronics, WeightKg: 1,
				LengthCm: 100, WidthCm: 100, HeightCm: 100,
				DeclaredValue: 1_000_000, Fragile: true,
			},
			want: Estimate{
				VolumeLiters:     1000,
				BaseCost:         5_000_000,
				FragileSurcharge: 1_000_000,
				InsuranceCost:    5_000,
				Total:            6_005_000,
			},
		},
		{
			name: "no dimensions",
			in:   domain.PackageDetail{Type: domain.PackageDocument, WeightKg: 0.5},
			want: Estimate{BaseCost: 2500, Total: 2500},
		},
		{
			name: "untyped package is accepted",
			in:   domain.PackageDetail{WeightKg: 1, DeclaredValue: 200_000},
			want: Estimate{BaseCost: 5000, InsuranceCost: 1000, Total: 6000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EstimateCost(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want.VolumeLiters, got.VolumeLiters, 1e-6)
			assert.InDelta(t, tt.want.BaseCost, got.BaseCost, 1e-6)
			assert.InDelta(t, tt.want.FragileSurcharge, got.FragileSurcharge, 1e-6)
			assert.InDelta(t, tt.want.InsuranceCost, got.InsuranceCost, 1e-6)
			assert.InDelta(t, tt.want.Total, got.Total, 1e-6)
		})
	}
}

func TestEstimateCost_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   domain.PackageDetail
	}{
		{"zero weight", domain.PackageDetail{WeightKg: 0}},
		{"negative weight", domain.PackageDetail{WeightKg: -1}},
		{"negative dimension", domain.PackageDetail{WeightKg: 1, HeightCm: -5}},
		{"negative declared value", domain.PackageDetail{WeightKg: 1, DeclaredValue: -1}},
		{"unknown type", domain.PackageDetail{Type: 99, WeightKg: 1}},
		{"NaN weight", domain.PackageDetail{WeightKg: math.NaN()}},
		{"NaN dimension", domain.PackageDetail{WeightKg: 1, LengthCm: math.NaN(), WidthCm: 1, HeightCm: 1}},
		{"infinite dimension", domain.PackageDetail{WeightKg: 1, WidthCm: math.Inf(1)}},
		{"NaN declared value", domain.PackageDetail{WeightKg: 1, DeclaredValue: math.NaN()}},
		{"infinite declared value", domain.PackageDetail{WeightKg: 1, DeclaredValue: math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EstimateCost(tt.in)
			assert.ErrorIs(t, err, ErrInvalidPackage)
		})
	}
}

func TestEstimator_CustomRates(t *testing.T) {
	e := NewEstimator(Rates{PerKg: 100, PerLiter: 10, FragileRate: 0.5, InsuranceRate: 0.01})

	got, err := e.Estimate(domain.PackageDetail{
		WeightKg: 3, LengthCm: 20, WidthCm: 10, HeightCm: 10, DeclaredValue: 500, Fragile: true,
	})
	require.NoError(t, err)
	assert.InDelta(t, 300, got.BaseCost, 1e-9)
	assert.InDelta(t, 150, got.FragileSurcharge, 1e-9)
	assert.InDelta(t, 5, got.InsuranceCost, 1e-9)
	assert.InDelta(t, 455, got.Total, 1e-9)
}
