package docextract

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/docextract/legacy"
)

// Image sources.
const (
	ImageSourcePackage   = "package"
	ImageSourceDirectory = "directory"
)

// Heading detectors.
const (
	HeadingStyleText = "style-text"
	HeadingStyleID   = "style-id"
)

// DefaultMaxFileSize is the default upper bound on input size (100 MB).
const DefaultMaxFileSize = 100 * 1024 * 1024

// AntiwordConfig locates the legacy text extractor.
type AntiwordConfig struct {
	// Path is the executable (default: "antiword" from PATH).
	Path string `yaml:"path"`

	// Args precede the document path (default: ["-t"]).
	Args []string `yaml:"args"`
}

// Config configures document loading.
type Config struct {
	// MaxFileSize is the maximum input size in bytes (default: 100 MB).
	MaxFileSize int64 `yaml:"max_file_size"`

	Antiword AntiwordConfig `yaml:"antiword"`

	// LegacyEncoding is the character encoding of antiword output, as a
	// WHATWG label. Empty means UTF-8.
	LegacyEncoding string `yaml:"legacy_encoding"`

	// LegacyTimeout bounds one antiword run. Zero means no timeout.
	LegacyTimeout time.Duration `yaml:"legacy_timeout"`

	// SkipContainerCheck loads .doc files without verifying the OLE2
	// WordDocument stream and .docx files without checking the ZIP layout.
	SkipContainerCheck bool `yaml:"skip_container_check"`

	// ImageSource is "package" (media read from the zip) or "directory"
	// (media read from an extracted layout beside the file).
	ImageSource string `yaml:"image_source"`

	// HeadingDetection is "style-text" or "style-id".
	HeadingDetection string `yaml:"heading_detection"`

	// SniffImageFormat reads the image format from the media header when
	// the drawing does not name one.
	SniffImageFormat bool `yaml:"sniff_image_format"`

	// AllowPlainText loads .txt files with the line loader. Without it
	// they are unsupported.
	AllowPlainText bool `yaml:"allow_plain_text"`

	// Logger for diagnostics. Nil disables logging.
	Logger *zerolog.Logger `yaml:"-"`

	// Extractor replaces antiword for .doc files.
	Extractor legacy.Extractor `yaml:"-"`
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	var c Config
	c.defaults()
	return c
}

func (c *Config) defaults() {
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = DefaultMaxFileSize
	}
	if c.ImageSource == "" {
		c.ImageSource = ImageSourcePackage
	}
	if c.HeadingDetection == "" {
		c.HeadingDetection = HeadingStyleText
	}
}

// Validate checks enumerated values and limits.
func (c *Config) Validate() error {
	switch c.ImageSource {
	case "", ImageSourcePackage, ImageSourceDirectory:
	default:
		return fmt.Errorf("unsupported image_source %q (use %s or %s)", c.ImageSource, ImageSourcePackage, ImageSourceDirectory)
	}
	switch c.HeadingDetection {
	case "", HeadingStyleText, HeadingStyleID:
	default:
		return fmt.Errorf("unsupported heading_detection %q (use %s or %s)", c.HeadingDetection, HeadingStyleText, HeadingStyleID)
	}
	if c.LegacyTimeout < 0 {
		return fmt.Errorf("legacy_timeout must be >= 0")
	}
	return nil
}

// LoadConfig reads a YAML config file. Fields absent from the file keep
// their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML config data.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	cfg.defaults()
	return cfg, nil
}

// extractor returns the configured legacy extractor.
func (c *Config) extractor() legacy.Extractor {
	if c.Extractor != nil {
		return c.Extractor
	}
	return legacy.Antiword{
		Path:    c.Antiword.Path,
		Args:    c.Antiword.Args,
		Timeout: c.LegacyTimeout,
	}
}
