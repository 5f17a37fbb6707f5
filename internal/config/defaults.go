package config

const (
	defaultVideosDirectory = "."
	defaultToolBinary      = "ffmpeg"
	defaultLogLevel        = "info"
	defaultLogFormat       = "console"
	defaultUserConfig      = "~/.config/videofilter/config.toml"
	defaultProjectConfig   = "videofilter.toml"

	defaultStabilizePart1 = "%s -y -i %s -vf vidstabdetect=shakiness=10:accuracy=15 -f null -"
	defaultStabilizePart2 = "%s -y -i %s -vf vidstabtransform=smoothing=30:input=transforms.trf %s"
	defaultAntiflicker    = "%s -y -i %s -i %s -filter_complex deflicker=size=10 %s"
	defaultCropVertical   = "%s -y -i %s -vf crop=ih*9/16:ih %s"
	defaultCropHorizontal = "%s -y -i %s -vf crop=iw:iw*9/16 %s"
	defaultRotate         = "%s -y -i %s -vf transpose=2 %s"
)

// Environment variables that override file values.
const (
	EnvConfig    = "VIDEOFILTER_CONFIG"
	EnvDirectory = "VIDEOFILTER_DIR"
	EnvToolDir   = "VIDEOFILTER_TOOL_DIR"
	EnvSequence  = "VIDEOFILTER_SEQUENCE"
	EnvLogLevel  = "VIDEOFILTER_LOG_LEVEL"
	EnvLogFormat = "VIDEOFILTER_LOG_FORMAT"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Videos: Videos{
			Directory:  defaultVideosDirectory,
			Extensions: []string{"mp4", "avi", "vob", "ogg"},
		},
		Tool: Tool{
			Binary: defaultToolBinary,
		},
		Filter: Filter{
			Sequence: []string{"STABILIZE1", "STABILIZE2", "ANTIFLICKER"},
			Templates: Templates{
				StabilizePart1: defaultStabilizePart1,
				StabilizePart2: defaultStabilizePart2,
				Antiflicker:    defaultAntiflicker,
				CropVertical:   defaultCropVertical,
				CropHorizontal: defaultCropHorizontal,
				Rotate:         defaultRotate,
			},
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
