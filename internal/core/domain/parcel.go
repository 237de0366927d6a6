package domain

import "math"

// volumetricDivisor converts a volume in cubic centimeters into a volumetric
// weight in kilograms, per the carrier billing convention.
const volumetricDivisor = 2500

// Parcel holds the physical dimensions of a package together with the
// derived billing values. Dimensions are fixed at construction;
// ChargeableWeight and Price start at zero and are set once per pricing pass.
type Parcel struct {
	Weight           float64 `json:"weight" bson:"weight"`
	Length           float64 `json:"length" bson:"length"`
	Width            float64 `json:"width" bson:"width"`
	Height           float64 `json:"height" bson:"height"`
	ChargeableWeight float64 `json:"chargeable_weight" bson:"chargeable_weight"`
	Price            float64 `json:"price" bson:"price"`
}

// NewParcel creates a Parcel with the given weight (kg) and dimensions (cm).
func NewParcel(weight, length, width, height float64) *Parcel {
	return &Parcel{
		Weight: weight,
		Length: length,
		Width:  width,
		Height: height,
	}
}

// CalculateChargeableWeight returns the billing weight: the greater of the
// actual weight and the volumetric weight ceil(l*w*h/2500). Pure computation;
// the caller decides whether to store the result in ChargeableWeight.
func (p *Parcel) CalculateChargeableWeight() float64 {
	volumetric := math.Ceil(p.Length * p.Width * p.Height / volumetricDivisor)
	return math.Max(p.Weight, volumetric)
}
