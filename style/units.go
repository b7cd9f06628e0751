package style

import "fmt"

// Unit override values for measure features. An empty unit selects
// automatically: kilometers at or above 1000 units, meters below.
const (
	UnitAuto  = ""
	UnitMeter = "m"
	UnitKilo  = "km"
)

const autoKiloThreshold = 1000.0

// FormatDistance renders a measured length as its label text.
func FormatDistance(d float64, unit string) string {
	switch unit {
	case UnitMeter:
		return fmt.Sprintf("%.3fm", d)
	case UnitKilo:
		return fmt.Sprintf("%.1fkm", d/1000)
	default:
		if d >= autoKiloThreshold {
			return fmt.Sprintf("%.1fkm", d/1000)
		}
		return fmt.Sprintf("%.3fm", d)
	}
}
