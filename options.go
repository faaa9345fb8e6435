package gwr

// engineOptions holds configuration resolved at Engine construction.
type engineOptions struct {
	tracker         Tracker
	defaultClockMHz float64
}

// EngineOption configures an Engine at construction time.
type EngineOption interface {
	applyEngine(*engineOptions) error
}

// engineOptionImpl implements EngineOption.
type engineOptionImpl struct {
	applyEngineFunc func(*engineOptions) error
}

func (o *engineOptionImpl) applyEngine(cfg *engineOptions) error {
	return o.applyEngineFunc(cfg)
}

// WithTracker configures the engine's Tracker. Defaults to NewNullTracker().
func WithTracker(tracker Tracker) EngineOption {
	return &engineOptionImpl{func(cfg *engineOptions) error {
		cfg.tracker = tracker
		return nil
	}}
}

// WithDefaultClockMHz sets the frequency of the engine's default clock.
// Defaults to 1000 MHz. mhz must be strictly positive.
func WithDefaultClockMHz(mhz float64) EngineOption {
	return &engineOptionImpl{func(cfg *engineOptions) error {
		if mhz <= 0 {
			return configErrorf("default clock frequency must be positive, got %v", mhz)
		}
		cfg.defaultClockMHz = mhz
		return nil
	}}
}

// resolveEngineOptions applies opts over the engine's defaults. A
// misconfigured option (e.g. a non-positive clock frequency) is a
// Configuration failure and panics, consistent with every other wiring-time
// mistake the engine detects.
func resolveEngineOptions(opts []EngineOption) *engineOptions {
	cfg := &engineOptions{
		tracker:         NewNullTracker(),
		defaultClockMHz: 1000,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyEngine(cfg); err != nil {
			panic(err)
		}
	}
	return cfg
}
