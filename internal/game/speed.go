package game

// Speed names a start control. Each speed selects a cadence from the
// configuration.
type Speed string

const (
	SpeedNormal  Speed = "start"
	SpeedHalf    Speed = "half"
	SpeedQuarter Speed = "quarter"
)

// Speeds lists the start controls in the order their streams are merged.
var Speeds = []Speed{SpeedNormal, SpeedHalf, SpeedQuarter}
