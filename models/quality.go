package models

// Quality is a human label mapped to a bit-depth, e.g. "medium" -> 2 LSBs
// per sample. The iteration order below (very_low, low, medium, high) is
// significant: header.ProbeQuality returns the first depth, in this
// order, whose magic string matches.
type Quality string

const (
	QualityVeryLow Quality = "very_low"
	QualityLow     Quality = "low"
	QualityMedium  Quality = "medium"
	QualityHigh    Quality = "high"
)

// QualityOrder fixes the iteration order used for depth
// auto-detection. Header construction validates a quality through
// DepthOf instead.
var QualityOrder = []Quality{QualityVeryLow, QualityLow, QualityMedium, QualityHigh}

var qualityDepths = map[Quality]int{
	QualityVeryLow: 8,
	QualityLow:     4,
	QualityMedium:  2,
	QualityHigh:    1,
}

// DepthOf returns the bit-depth for quality and whether quality is known.
func DepthOf(q Quality) (int, bool) {
	d, ok := qualityDepths[q]
	return d, ok
}
