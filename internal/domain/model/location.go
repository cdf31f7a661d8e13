package model

import "math"

// Mean Earth radius in meters, as used by the Haversine formula.
const earthRadiusMeters = 6371e3

// Location is an immutable latitude/longitude pair in degrees.
// Latitude is expected in [-90, 90] and longitude in [-180, 180];
// range validation happens at the API boundary, not here.
type Location struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

// DistanceTo returns the great-circle distance to other in kilometers,
// computed with the Haversine formula.
func (l Location) DistanceTo(other Location) float64 {
	phi1 := radians(l.Latitude)
	phi2 := radians(other.Latitude)
	dPhi := radians(other.Latitude - l.Latitude)
	dLambda := radians(other.Longitude - l.Longitude)

	a := math.Pow(math.Sin(dPhi/2), 2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Pow(math.Sin(dLambda/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c / 1000.0
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
