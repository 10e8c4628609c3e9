package validate

import (
	"math"
	"regexp"
	"strings"
)

var uuidV4Pattern = regexp.MustCompile(
	`^[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`,
)

// UUID reports whether v is a canonical lowercase UUID textual form with a
// version nibble in 1-5 and an RFC 4122 variant nibble.
func UUID(v string) bool {
	return uuidV4Pattern.MatchString(v)
}

// AudioMIMEType reports whether v names an audio/* media type.
func AudioMIMEType(v string) bool {
	return strings.HasPrefix(v, "audio/")
}

// MIDINote reports whether v is a playable MIDI note number.
func MIDINote(v int) bool {
	return v >= 0 && v < 128
}

// Detune reports whether v is a detune amount within one octave, in cents.
func Detune(v int) bool {
	return v >= -1200 && v <= 1200
}

// Gain bounds gains to 32-bit float magnitudes. The client mixes with
// float32 Web Audio params, so wider values are rejected here even though
// the column is a double.
func Gain(v float64) bool {
	return v > -math.MaxFloat32 && v < math.MaxFloat32
}

func NumberPositive(v float64) bool {
	return v > 0
}

func IntegerPositive(v float64) bool {
	return v == math.Trunc(v) && NumberPositive(v)
}

// NullOr lifts a predicate over a nullable value; nil passes.
func NullOr[T any](fn func(T) bool) func(*T) bool {
	return func(v *T) bool {
		if v == nil {
			return true
		}
		return fn(*v)
	}
}

// EmptyArrayOr lifts a slice predicate; the empty slice passes.
func EmptyArrayOr[T any](fn func([]T) bool) func([]T) bool {
	return func(v []T) bool {
		return len(v) == 0 || fn(v)
	}
}

// EachArrayItem requires every element to satisfy fn (vacuously true when
// empty).
func EachArrayItem[T any](fn func(T) bool) func([]T) bool {
	return func(v []T) bool {
		for _, item := range v {
			if !fn(item) {
				return false
			}
		}
		return true
	}
}

// trackColors is narrower than the MaterialColor enum exposed by the API
// schema (brown, grey and blueGrey are absent): writes are validated against
// this list.
var trackColors = []string{
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
}

func TrackColor(v string) bool {
	for _, c := range trackColors {
		if c == v {
			return true
		}
	}
	return false
}

// NoteResolution accepts 1 (16th), 2 (8th) or 4 (quarter note).
func NoteResolution(v int) bool {
	return v == 1 || v == 2 || v == 4
}

// HasFileExtension reports whether v contains at least one dot separator.
func HasFileExtension(v string) bool {
	return len(strings.Split(v, ".")) > 1
}
