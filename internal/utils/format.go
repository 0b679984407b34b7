package utils

import "strconv"

// FormatNumber prints a float without trailing zeros: 7.50 -> "7.5", 30 -> "30".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func GetGoalStatusEmoji(achieved bool) string {
	if achieved {
		return "✅"
	}
	return "⏳"
}

func GetGoalStatusText(achieved bool) string {
	if achieved {
		return "achieved"
	}
	return "not achieved"
}
