package biosample

import (
	"fmt"
	"strconv"
)

// FormatLatLon renders decimal coordinates in the hemisphere notation
// NCBI expects, e.g. "25.574 N 84.843 W".
func FormatLatLon(lat, lon float64) string {
	latHemi, lonHemi := "N", "E"
	if lat < 0 {
		lat, latHemi = -lat, "S"
	}
	if lon < 0 {
		lon, lonHemi = -lon, "W"
	}
	return fmt.Sprintf("%.3f %s %.3f %s", lat, latHemi, lon, lonHemi)
}

// combineLatLon merges raw latitude and longitude cells into one
// *lat_lon value. Non-numeric identical cells pass through untouched
// so pre-formatted coordinates survive; anything else unparseable
// yields a blank.
func combineLatLon(lat, lon string) string {
	if lat == "" && lon == "" {
		return ""
	}
	latF, latErr := strconv.ParseFloat(lat, 64)
	lonF, lonErr := strconv.ParseFloat(lon, 64)
	if lat != "" && lat == lon {
		if latErr == nil && lonErr == nil {
			return lat + " " + lon
		}
		return lat
	}
	if latErr == nil && lonErr == nil {
		return FormatLatLon(latF, lonF)
	}
	return ""
}
