package config

const (
	defaultRoot               = "HyperSpin"
	defaultTempDirName        = "tmp"
	defaultDisplayWidth       = 1024
	defaultDisplayHeight      = 768
	defaultGraceWindowSeconds = 5
	defaultChasePauseSeconds  = 2
	defaultFFProbe            = "ffprobe"
	defaultLogFormat          = "auto"
	defaultLogLevel           = "info"
)

// Default returns a configuration populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Root: defaultRoot,
		},
		Display: Display{
			Width:  defaultDisplayWidth,
			Height: defaultDisplayHeight,
		},
		Playback: Playback{
			GraceWindowSeconds: defaultGraceWindowSeconds,
			ChasePauseSeconds:  defaultChasePauseSeconds,
		},
		Probe: Probe{
			FFProbe: defaultFFProbe,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
