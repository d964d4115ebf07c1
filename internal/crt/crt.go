// Package crt models the power-on sequence shown before the terminal
// appears: a picture that opens horizontally, then vertically, overshoots a
// little and settles just inside the screen edge, with loading captions
// stepping along underneath.
package crt

import "math"

// PowerOnFrames is the length of the sequence at FrameRate.
const (
	PowerOnFrames = 240
	FrameRate     = 60
)

// PhaseTiming positions the three phases of the sequence on the 0..1
// progress axis.
type PhaseTiming struct {
	Horizontal       float64 // width opens over [0, Horizontal]
	VerticalStart    float64
	VerticalDuration float64
	SettleStart      float64
	SettleDuration   float64
}

var DefaultTiming = PhaseTiming{
	Horizontal:       0.25,
	VerticalStart:    0.15,
	VerticalDuration: 0.4,
	SettleStart:      0.55,
	SettleDuration:   0.45,
}

// settleTarget is the scale the picture relaxes towards.
const settleTarget = 0.98

// Progress converts a frame counter to progress, clamped to [0, 1].
func Progress(frame int) float64 {
	return clamp01(float64(frame) / PowerOnFrames)
}

// Scale returns the width and height of the picture as fractions of the
// screen at the given progress.
func (pt PhaseTiming) Scale(progress float64) (w, h float64) {
	hp := math.Min(progress/pt.Horizontal, 1)
	vp := clamp01((progress - pt.VerticalStart) / pt.VerticalDuration)
	sp := clamp01((progress - pt.SettleStart) / pt.SettleDuration)

	w = 1 - math.Pow(1-hp, 2)
	if hp < 1 {
		w *= 1 + math.Sin(hp*math.Pi)*0.05
	}

	h = 1 - math.Pow(1-vp, 3)
	if vp > 0.8 && vp < 1 {
		h *= 1 + math.Sin((vp-0.8)/0.2*math.Pi)*0.2
	}

	if sp > 0 {
		amt := sp * 0.3
		w = lerp(w, settleTarget, amt)
		h = lerp(h, settleTarget, amt)
	}
	return w, h
}

// Scale is DefaultTiming.Scale.
func Scale(progress float64) (w, h float64) {
	return DefaultTiming.Scale(progress)
}

// Box returns the picture size in cells for a screen of the given size.
// The height never drops below one row so the opening line stays visible.
func Box(width, height int, progress float64) (int, int) {
	w, h := Scale(progress)
	bw := int(math.Round(float64(width) * w))
	bh := int(math.Round(float64(height) * h))
	bw = min(max(bw, 0), width)
	bh = min(max(bh, 1), height)
	return bw, bh
}

// Warmup reports whether the "WARMING UP..." caption is still shown.
func Warmup(progress float64) bool {
	return progress < 0.4
}

// Stage is one loading caption together with how full the loading bar is
// while it is shown.
type Stage struct {
	Fill    float64
	Caption string
}

var Stages = []Stage{
	{0.2, "Loading system files..."},
	{0.4, "Initializing graphics..."},
	{0.6, "Starting terminal..."},
	{0.8, "Loading user data..."},
	{1.0, "Ready!"},
}

// StageAt returns the caption shown at progress. Stages advance at equal
// intervals; the last one is held once reached.
func StageAt(progress float64) Stage {
	i := int(clamp01(progress) * float64(len(Stages)))
	if i >= len(Stages) {
		i = len(Stages) - 1
	}
	return Stages[i]
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(v, 1))
}
