package engine

// Level is the five-bucket ordinal rating used for every score in the result
// payload. Buckets are closed at the top: a score of exactly 75 is Good.
type Level string

const (
	LevelExcellent Level = "Excellent"
	LevelGood      Level = "Good"
	LevelFair      Level = "Fair"
	LevelPoor      Level = "Poor"
	LevelVeryPoor  Level = "VeryPoor"
)

// Classification thresholds are fixed, not configuration: every consumer of
// the payload relies on the same five-tier convention.
const (
	thresholdExcellent = 90
	thresholdGood      = 75
	thresholdFair      = 60
	thresholdPoor      = 45
)

// Classify maps a 0-100 score to its level.
func Classify(score float64) Level {
	switch {
	case score >= thresholdExcellent:
		return LevelExcellent
	case score >= thresholdGood:
		return LevelGood
	case score >= thresholdFair:
		return LevelFair
	case score >= thresholdPoor:
		return LevelPoor
	default:
		return LevelVeryPoor
	}
}

// DecisionTier maps a composite-score level to its decision label. Labels are
// configurable but the level-to-tier mapping stays ordinal.
func (e *Engine) DecisionTier(level Level) string {
	if label, ok := e.tierLabels[level]; ok {
		return label
	}
	return string(level)
}

// RiskLevel uses the upstream wire values.
type RiskLevel string

const (
	RiskLow    RiskLevel = "低"
	RiskMedium RiskLevel = "中"
	RiskHigh   RiskLevel = "高"
)
