package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strconv"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"tplprint/component"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	// BaselineConfig is the style template root inherits from.
	BaselineConfig struct {
		Font       string  `yaml:"font" validate:"required"`
		FontStyle  string  `yaml:"font_style,omitempty" validate:"omitempty,oneof=regular bold italic underline strikeout"`
		FontSize   float64 `yaml:"font_size" validate:"gt=0"`
		LineHeight *int    `yaml:"line_height,omitempty" validate:"omitempty,gte=0"`
		Align      string  `yaml:"align,omitempty" validate:"omitempty,oneof=left center right"`
		Color      string  `yaml:"color,omitempty"`
	}

	DocumentConfig struct {
		// empty means directory of the template file
		ImagesDir string         `yaml:"images_dir"`
		Baseline  BaselineConfig `yaml:"baseline"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Document  DocumentConfig `yaml:"document"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// Effective converts configured baseline into resolved style. Values are
// interpreted exactly as template attributes with the same meaning would be.
func (b *BaselineConfig) Effective() component.EffectiveStyle {
	n := component.NewNode(component.KindTemplate)
	n.SetProperty("font", b.Font)
	n.SetProperty("fontstyle", b.FontStyle)
	n.SetProperty("fontsize", strconv.FormatFloat(b.FontSize, 'f', -1, 64))
	if b.LineHeight != nil {
		n.SetProperty("lineheight", strconv.Itoa(*b.LineHeight))
	}
	n.SetProperty("align", b.Align)
	n.SetProperty("color", b.Color)
	return component.Resolve(n, component.NewEffectiveStyle())
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// only fields we know about are allowed
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("configuration is not valid: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration expands embedded configuration template to get defaults
// and superimposes values from the file at path (if any) on top of them.
// Result is sanitized and validated.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare returns expanded default configuration.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
