package tracksense

type Config struct {
	// MaxAnalysisSeconds caps how much audio Analyze decodes. Waveform and
	// trim operations always read the full stream.
	MaxAnalysisSeconds int
	// BitrateKbps is the encoder bitrate used when a caller passes 0.
	BitrateKbps int
	Logger      Logger
}

type Option func(*Config)

func WithMaxAnalysisSeconds(seconds int) Option {
	return func(c *Config) {
		c.MaxAnalysisSeconds = seconds
	}
}

func WithBitrate(kbps int) Option {
	return func(c *Config) {
		c.BitrateKbps = kbps
	}
}

func WithLogger(log Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

func defaultConfig() *Config {
	return &Config{
		MaxAnalysisSeconds: 60,
		BitrateKbps:        192,
	}
}
