// Package config collects the startup knobs the system builder needs: ROM
// image paths, PAL/NTSC timing selection, and optional cartridge/tape
// attach paths.
//
// Grounded on original_source (binaryfields/zinc64)'s
// zinc64-system/src/config.rs shape, expressed with functional-option
// constructors — the same idiom zero-config NewManager()/NewCPU()
// constructors generalize to once more than one knob exists.
package config

// RomKind names one of the three ROM images a system needs.
type RomKind int

const (
	RomBasic RomKind = iota
	RomKernal
	RomCharset
)

// Timing selects the PAL or NTSC cycle/line geometry.
type Timing int

const (
	TimingPal Timing = iota
	TimingNtsc
)

// Config is the immutable startup configuration built by New and its
// Option functions.
type Config struct {
	Timing      Timing
	RomPaths    map[RomKind]string
	CartridgePath string
	TapePath      string
}

// Option mutates a Config under construction.
type Option func(*Config)

// New builds a Config with PAL timing and no ROM paths, applying opts in
// order.
func New(opts ...Option) *Config {
	c := &Config{
		Timing:   TimingPal,
		RomPaths: map[RomKind]string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTiming selects PAL or NTSC geometry.
func WithTiming(t Timing) Option {
	return func(c *Config) { c.Timing = t }
}

// WithRom registers the image path for one of the three mask ROMs.
func WithRom(kind RomKind, path string) Option {
	return func(c *Config) { c.RomPaths[kind] = path }
}

// WithCartridge attaches a CRT image path.
func WithCartridge(path string) Option {
	return func(c *Config) { c.CartridgePath = path }
}

// WithTape attaches a tape image path.
func WithTape(path string) Option {
	return func(c *Config) { c.TapePath = path }
}
