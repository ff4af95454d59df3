package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/RaikyD/velocity-express/internal/domain"
)

var ErrInvalidPackage = errors.New("invalid package")

// Rates are in currency minor units.
type Rates struct {
	PerKg         float64 // charged per kg of actual weight
	PerLiter      float64 // charged per liter of volume
	FragileRate   float64 // share of base cost
	InsuranceRate float64 // share of declared value
}

var DefaultRates = Rates{
	PerKg:         5000,
	PerLiter:      5000,
	FragileRate:   0.20,
	InsuranceRate: 0.005,
}

type Estimate struct {
	VolumeLiters     float64 `json:"volume_liters"`
	BaseCost         float64 `json:"base_cost"`
	FragileSurcharge float64 `json:"fragile_surcharge"`
	InsuranceCost    float64 `json:"insurance_cost"`
	Total            float64 `json:"total"`
}

type Estimator struct {
	rates Rates
}

func NewEstimator(r Rates) *Estimator {
	return &Estimator{rates: r}
}

// EstimateCost prices a package with DefaultRates.
func EstimateCost(p domain.PackageDetail) (Estimate, error) {
	return NewEstimator(DefaultRates).Estimate(p)
}

// Estimate charges the greater of actual and volumetric weight, then adds
// the fragile surcharge and insurance. No rounding is applied.
func (e *Estimator) Estimate(p domain.PackageDetail) (Estimate, error) {
	if err := validate(p); err != nil {
		return Estimate{}, err
	}

	vol := p.VolumeLiters()
	base := math.Max(p.WeightKg*e.rates.PerKg, vol*e.rates.PerLiter)

	var fragile float64
	if p.Fragile {
		fragile = base * e.rates.FragileRate
	}
	insurance := p.DeclaredValue * e.rates.InsuranceRate

	return Estimate{
		VolumeLiters:     vol,
		BaseCost:         base,
		FragileSurcharge: fragile,
		InsuranceCost:    insurance,
		Total:            base + fragile + insurance,
	}, nil
}

func validate(p domain.PackageDetail) error {
	switch {
	case p.Type != 0 && !p.Type.Valid():
		return fmt.Errorf("%w: package type %d", ErrInvalidPackage, uint8(p.Type))
	case p.WeightKg <= 0 || !finite(p.WeightKg):
		return fmt.Errorf("%w: weight must be positive", ErrInvalidPackage)
	case !finite(p.LengthCm) || !finite(p.WidthCm) || !finite(p.HeightCm):
		return fmt.Errorf("%w: dimensions must be finite numbers", ErrInvalidPackage)
	case !finite(p.DeclaredValue):
		return fmt.Errorf("%w: declared value must be a finite number", ErrInvalidPackage)
	case p.LengthCm < 0 || p.WidthCm < 0 || p.HeightCm < 0:
		return fmt.Errorf("%w: dimensions must not be negative", ErrInvalidPackage)
	case p.DeclaredValue < 0:
		return fmt.Errorf("%w: declared value must not be negative", ErrInvalidPackage)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
