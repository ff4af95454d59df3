package domain

// PackageDetail is the input of the cost estimator.
type PackageDetail struct {
	Type          PackageType `json:"type"`
	WeightKg      float64     `json:"weight_kg"`
	LengthCm      float64     `json:"length_cm"`
	WidthCm       float64     `json:"width_cm"`
	HeightCm      float64     `json:"height_cm"`
	DeclaredValue float64     `json:"declared_value"`
	Fragile       bool        `json:"fragile"`
}

// VolumeLiters converts the cm dimensions to liters.
func (p PackageDetail) VolumeLiters() float64 {
	return p.LengthCm * p.WidthCm * p.HeightCm / 1000
}
