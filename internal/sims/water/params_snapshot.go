package water

import (
	"strconv"
	"time"

	"ripple/internal/core"
)

// Keys of the live-tunable parameters.
const (
	ParamDamping        = "damping"
	ParamRadius         = "disturbance_radius"
	ParamDropIntervalMS = "drop_interval_ms"
)

func (s *Simulation) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Surface",
			Params: []core.Parameter{
				intParam("resolution", "Resolution", s.cfg.Resolution),
				floatParam("extent", "Extent", s.cfg.Extent),
				stringParam("solver", "Solver", s.solver.Name()),
			},
		},
		{
			Name: "Waves",
			Params: []core.Parameter{
				floatParam(ParamDamping, "Viscosity", s.cfg.Damping),
				floatParam(ParamRadius, "Drop size", s.cfg.DisturbanceRadius),
				floatParam("pulse_strength", "Pulse strength", s.cfg.PulseStrength),
			},
		},
		{
			Name: "Drops",
			Params: []core.Parameter{
				intParam(ParamDropIntervalMS, "Drop interval (ms)", int(s.cfg.DropInterval/time.Millisecond)),
				int64Param("seed", "Seed", s.cfg.Seed),
			},
			Summary: "random drop every interval",
		},
	}}
}

// ParameterControls lists the HUD-adjustable values with their GUI ranges.
func (s *Simulation) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: ParamDamping, Label: "Viscosity", Type: core.ParamTypeFloat, Step: 0.001, Min: 0.9, Max: 0.999, HasMin: true, HasMax: true},
		{Key: ParamRadius, Label: "Drop size", Type: core.ParamTypeFloat, Step: 1, Min: 1, Max: 100, HasMin: true, HasMax: true},
		{Key: ParamDropIntervalMS, Label: "Drop ms", Type: core.ParamTypeInt, Step: 5, Min: 5, Max: 100, HasMin: true, HasMax: true},
	}
}

func (s *Simulation) control(key string) (core.ParameterControl, bool) {
	for _, c := range s.ParameterControls() {
		if c.Key == key {
			return c, true
		}
	}
	return core.ParameterControl{}, false
}

// SetFloatParameter applies a HUD edit, clamped to the control range.
func (s *Simulation) SetFloatParameter(key string, value float64) bool {
	c, ok := s.control(key)
	if !ok {
		return false
	}
	value = c.Clamp(value)
	switch key {
	case ParamDamping:
		return s.SetDamping(value) == nil
	case ParamRadius:
		return s.SetDisturbanceRadius(value) == nil
	case ParamDropIntervalMS:
		return s.SetDropInterval(time.Duration(value) * time.Millisecond) == nil
	}
	return false
}

// SetIntParameter applies a HUD edit to an integer control.
func (s *Simulation) SetIntParameter(key string, value int) bool {
	if key != ParamDropIntervalMS {
		return false
	}
	return s.SetFloatParameter(key, float64(value))
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{Key: key, Label: label, Value: value}
}
