package fleet

import "math"

const (
	// EarthRadius is the mean Earth radius in meters.
	EarthRadius = 6371e3

	// SignificantDistance is the distance in meters a vehicle has to move
	// before a new observation is worth persisting.
	SignificantDistance = 10.0
)

// Haversine returns the great-circle distance in meters between two points given in degrees.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	la1 := lat1 * math.Pi / 180
	la2 := lat2 * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(la1)*math.Cos(la2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadius * c
}

// Distance returns the distance in meters between the positions of two logs.
func (l Log) Distance(other Log) float64 {
	return Haversine(l.Lat, l.Lng, other.Lat, other.Lng)
}

// SameObservation reports whether two logs describe the same real-world observation:
// either they carry the same timestamp or the vehicle did not move further than
// SignificantDistance between them.
func SameObservation(a, b Log) bool {
	return a.Time.Equal(b.Time) || !movedFar(a.Distance(b))
}

func movedFar(meters float64) bool {
	return meters > SignificantDistance
}

// IsSignificant reports whether candidate carries new information compared to reference.
func IsSignificant(reference, candidate Log) bool {
	return !SameObservation(reference, candidate)
}
