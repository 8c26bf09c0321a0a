package services

import "math"

// MET (metabolic equivalent) values per exercise and intensity. Unknown
// exercise names fall back to Run's table.
var metValues = map[string]map[string]float64{
	"Run":            {"Low": 6.0, "Medium": 8.3, "High": 11.0},
	"Weight Lifting": {"Low": 3.0, "Medium": 4.5, "High": 6.0},
}

// DefaultWeightKg is assumed when the user has no stored body weight.
const DefaultWeightKg = 70.0

// IntensityLabel maps the 1-3 intensity slider to its MET table key.
func IntensityLabel(value int) string {
	switch value {
	case 1:
		return "Low"
	case 2:
		return "Medium"
	case 3:
		return "High"
	default:
		return "Medium"
	}
}

// EstimateCaloriesBurned applies the standard MET formula:
//
//	calories = MET * weight(kg) * 3.5 / 200 * duration(min)
//
// rounded to the nearest whole calorie.
func EstimateCaloriesBurned(exercise, intensity string, durationMin int, weightKg float64) int {
	if durationMin <= 0 {
		return 0
	}
	if weightKg <= 0 {
		weightKg = DefaultWeightKg
	}

	table, ok := metValues[exercise]
	if !ok {
		table = metValues["Run"]
	}
	met, ok := table[intensity]
	if !ok {
		met = table["Medium"]
	}

	raw := met * weightKg * 3.5 / 200 * float64(durationMin)
	return int(math.Round(raw))
}
