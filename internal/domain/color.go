package domain

// MaterialColors is the full palette the API schema exposes for track
// coloring. Note that the runtime validator (validate.TrackColor) accepts a
// narrower 16-value list: brown, grey and blueGrey pass the schema but fail
// validation on write.
var MaterialColors = []string{
	"red",
	"pink",
	"purple",
	"deepPurple",
	"indigo",
	"blue",
	"lightBlue",
	"cyan",
	"teal",
	"green",
	"lightGreen",
	"lime",
	"yellow",
	"amber",
	"orange",
	"deepOrange",
	"brown",
	"grey",
	"blueGrey",
}

// FilterTypes enumerates the biquad filter types of the Web Audio API.
var FilterTypes = []string{
	"lowpass",
	"highpass",
	"bandpass",
	"lowshelf",
	"highshelf",
	"peaking",
	"notch",
	"allpass",
}

// OversamplingTypes enumerates wave-shaper oversampling modes.
var OversamplingTypes = []string{"none", "twoTimes", "fourTimes"}

// DefaultTrackColor is assigned to tracks created by the attach-instrument
// mutation.
const DefaultTrackColor = "pink"
