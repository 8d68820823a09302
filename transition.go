package ember

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// fadeTween animates a single scalar for phase handoffs. It wraps gween with
// millisecond timing to match the engine clock.
type fadeTween struct {
	tw    *gween.Tween
	value float64
	done  bool
}

// newFadeTween animates from → to over durationMS using quadratic ease-out.
func newFadeTween(from, to, durationMS float64) *fadeTween {
	return &fadeTween{
		tw:    gween.New(float32(from), float32(to), float32(durationMS), ease.OutQuad),
		value: from,
	}
}

// Update advances the tween by dt milliseconds and returns true once the
// target value is reached.
func (f *fadeTween) Update(dtMS float64) bool {
	if f.done {
		return true
	}
	v, finished := f.tw.Update(float32(dtMS))
	f.value = float64(v)
	f.done = finished
	return f.done
}
