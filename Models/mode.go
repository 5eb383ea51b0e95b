package Models

// Mode identifies how the user intends to travel the generated route.
type Mode string

const (
	ModeWalking Mode = "walking"
	ModeRunning Mode = "running"
	ModeCycling Mode = "cycling"
)

// ModeConfig holds the tuning constants attached to a travel mode.
type ModeConfig struct {
	// Profile is the routing engine profile used for this mode
	Profile string `json:"profile"`
	// BaseRadiusFrac is the base search radius as a fraction of the target distance
	BaseRadiusFrac float64 `json:"baseRadiusFrac"`
	// MaxRadiusKm caps the search radius regardless of target distance
	MaxRadiusKm float64 `json:"maxRadiusKm"`
	// AvgSpeedKmh is the assumed average speed, used for duration estimates
	AvgSpeedKmh float64 `json:"avgSpeedKmh"`
	// MaxTargetKm is the largest target distance the frontend should offer
	MaxTargetKm float64 `json:"maxTargetKm"`
}

// ModeConfigs maps each travel mode to its tuning constants.
var ModeConfigs = map[Mode]ModeConfig{
	ModeWalking: {
		Profile:        "foot",
		BaseRadiusFrac: 0.16,
		MaxRadiusKm:    3.0,
		AvgSpeedKmh:    5.0,
		MaxTargetKm:    30.0,
	},
	ModeRunning: {
		Profile:        "foot",
		BaseRadiusFrac: 0.16,
		MaxRadiusKm:    6.0,
		AvgSpeedKmh:    10.0,
		MaxTargetKm:    50.0,
	},
	ModeCycling: {
		Profile:        "bike",
		BaseRadiusFrac: 0.15,
		MaxRadiusKm:    15.0,
		AvgSpeedKmh:    18.0,
		MaxTargetKm:    120.0,
	},
}

// Valid reports whether m is one of the supported travel modes.
func (m Mode) Valid() bool {
	_, ok := ModeConfigs[m]
	return ok
}

// Config returns the tuning constants for the mode, defaulting to walking
// for unknown values so callers never work with a zero config.
func (m Mode) Config() ModeConfig {
	if cfg, ok := ModeConfigs[m]; ok {
		return cfg
	}
	return ModeConfigs[ModeWalking]
}
