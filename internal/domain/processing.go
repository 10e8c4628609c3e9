package domain

// Audio processing settings embedded in tracks and cells, mirroring the Web
// Audio nodes the client builds (gain, biquad filter, delay, wave shaper).
// Every section is optional except gain.
type AudioProcessing struct {
	Gain       GainProcessing        `json:"gain"`
	Filter     *FilterProcessing     `json:"filter,omitempty"`
	Delay      *DelayProcessing      `json:"delay,omitempty"`
	Distorsion *DistorsionProcessing `json:"distorsion,omitempty"`
}

type GainProcessing struct {
	Gain float64 `json:"gain"`
}

type FilterProcessing struct {
	Enabled   bool    `json:"enabled"`
	Type      string  `json:"type"`
	Frequency float64 `json:"frequency"`
	Detune    int     `json:"detune"`
	Gain      float64 `json:"gain"`
	Q         float64 `json:"q"`
}

type DelayProcessing struct {
	Enabled   bool    `json:"enabled"`
	DelayTime float64 `json:"delayTime"`
}

type DistorsionProcessing struct {
	Enabled    bool      `json:"enabled"`
	Curve      []float64 `json:"curve"`
	Oversample string    `json:"oversample"`
}

// NewAudioProcessing returns the default chain: unity gain, no other
// sections.
func NewAudioProcessing() AudioProcessing {
	return AudioProcessing{Gain: GainProcessing{Gain: 1.0}}
}

// NewFilterProcessing returns a disabled notch filter with the client's
// default parameters.
func NewFilterProcessing() *FilterProcessing {
	return &FilterProcessing{
		Type:      "notch",
		Frequency: 1000,
		Detune:    0,
		Gain:      1.0,
		Q:         1.0,
	}
}

// NewDelayProcessing returns a disabled delay.
func NewDelayProcessing() *DelayProcessing {
	return &DelayProcessing{}
}

// NewDistorsionProcessing returns a disabled wave shaper with an empty curve.
func NewDistorsionProcessing() *DistorsionProcessing {
	return &DistorsionProcessing{Curve: []float64{}, Oversample: "none"}
}
