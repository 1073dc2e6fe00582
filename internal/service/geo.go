package service

import "math"

const earthRadiusKM = 6371.0

// haversine returns the great-circle distance in kilometres.
func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := deg2rad(lat2 - lat1)
	dLon := deg2rad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(lat1))*math.Cos(deg2rad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKM * c
}

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// distanceFrom is +Inf when either side has no position, so unknown
// positions rank last.
func distanceFrom(lat, lng *float64, toLat, toLng *float64) float64 {
	if lat == nil || lng == nil || toLat == nil || toLng == nil {
		return math.Inf(1)
	}
	return haversine(*lat, *lng, *toLat, *toLng)
}
