package worldsim

// Exposure level thresholds.
const (
	thresholdScrutiny  = 25
	thresholdSuspicion = 50
	thresholdHunt      = 75
	thresholdCrusade   = 100

	maxExposure      = 100
	defaultDecayRate = 5
)

// ExposureLevel bands the raw exposure value.
type ExposureLevel int

const (
	ExposureHidden ExposureLevel = iota
	ExposureScrutiny
	ExposureSuspicion
	ExposureHunt
	ExposureCrusade
)

func (l ExposureLevel) String() string {
	switch l {
	case ExposureHidden:
		return "hidden"
	case ExposureScrutiny:
		return "scrutiny"
	case ExposureSuspicion:
		return "suspicion"
	case ExposureHunt:
		return "hunt"
	case ExposureCrusade:
		return "crusade"
	default:
		return "unknown"
	}
}

// ExposureMeter aggregates how visible the lich's network has become.
// Agents and holdings push it up each year; obscurity decays it back down.
type ExposureMeter struct {
	Value     uint `json:"value"`
	DecayRate uint `json:"decay_rate"`
}

// NewExposureMeter returns a meter at zero with the default yearly decay.
func NewExposureMeter() *ExposureMeter {
	return &ExposureMeter{DecayRate: defaultDecayRate}
}

// LevelForValue bands a raw exposure value.
func LevelForValue(v uint) ExposureLevel {
	switch {
	case v >= thresholdCrusade:
		return ExposureCrusade
	case v >= thresholdHunt:
		return ExposureHunt
	case v >= thresholdSuspicion:
		return ExposureSuspicion
	case v >= thresholdScrutiny:
		return ExposureScrutiny
	default:
		return ExposureHidden
	}
}

// Level returns the current exposure level.
func (m *ExposureMeter) Level() ExposureLevel {
	return LevelForValue(m.Value)
}

// Add raises exposure, clamped at the maximum. Reports whether a threshold
// was crossed.
func (m *ExposureMeter) Add(amount uint) bool {
	old := m.Level()
	m.Value += amount
	if m.Value > maxExposure {
		m.Value = maxExposure
	}
	return m.Level() != old
}

// Sub lowers exposure, clamped at zero.
func (m *ExposureMeter) Sub(amount uint) {
	if m.Value > amount {
		m.Value -= amount
	} else {
		m.Value = 0
	}
}

// Decay applies one year of passive decay.
func (m *ExposureMeter) Decay() {
	if m.Value > m.DecayRate {
		m.Value -= m.DecayRate
	} else {
		m.Value = 0
	}
}
