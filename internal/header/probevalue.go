package header

// ProbeValue distinguishes "we did not attempt this probe" from "we
// attempted it and it failed" from "we have a measurement" (Design Notes:
// optional probe fields on HeaderInfo). Predictors must not conflate
// Unmeasured and a zero-valued Value.
type ProbeValue struct {
	state probeState
	value float64
}

type probeState uint8

const (
	stateUnmeasured probeState = iota
	stateFailed
	stateValue
)

// Unmeasured is the zero value: the probe was never attempted.
var Unmeasured = ProbeValue{state: stateUnmeasured}

// Failed marks a probe that was attempted but raised an error; callers must
// swallow the underlying error per spec.md §7's probe-failure policy and
// record Failed instead of propagating it.
func Failed() ProbeValue { return ProbeValue{state: stateFailed} }

// Value wraps a successful probe measurement.
func Value(f float64) ProbeValue { return ProbeValue{state: stateValue, value: f} }

// Ok reports whether a measurement is present.
func (p ProbeValue) Ok() bool { return p.state == stateValue }

// WasAttempted reports whether the probe ran at all (succeeded or failed),
// as opposed to never having been applicable.
func (p ProbeValue) WasAttempted() bool { return p.state != stateUnmeasured }

// Get returns the measurement and whether one is present.
func (p ProbeValue) Get() (float64, bool) { return p.value, p.state == stateValue }

// GetOr returns the measurement, or fallback if none is present.
func (p ProbeValue) GetOr(fallback float64) float64 {
	if p.state == stateValue {
		return p.value
	}
	return fallback
}
