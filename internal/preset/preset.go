package preset

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/rmitchellscott/inkwash/internal/dither"
	"github.com/rmitchellscott/inkwash/internal/imageprocessing"
)

// Profile is a named dithering configuration from a preset file. Zero
// values fall back to the pipeline defaults.
type Profile struct {
	Mode       string `yaml:"mode" validate:"required,dithermode"`
	Levels     int    `yaml:"levels" validate:"omitempty,gte=2,lte=256"`
	Serpentine bool   `yaml:"serpentine"`
	Grayscale  *bool  `yaml:"grayscale"`
	Width      int    `yaml:"width" validate:"gte=0"`
	Height     int    `yaml:"height" validate:"gte=0"`
	Fit        string `yaml:"fit" validate:"omitempty,oneof=contain cover stretch"`
	Seed       uint64 `yaml:"seed"`
}

// File is a parsed preset file: a map of profile names to profiles.
type File struct {
	Profiles map[string]Profile `yaml:"profiles" validate:"required,min=1,dive"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// The mode set is closed; reject unknown names at load time instead of
	// at dispatch time so a bad preset fails before any work starts.
	_ = v.RegisterValidation("dithermode", func(fl validator.FieldLevel) bool {
		_, err := dither.ParseMode(fl.Field().String())
		return err == nil
	})
	return v
}

// Load reads and validates a preset file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates preset file contents.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse preset file: %w", err)
	}
	if err := validate.Struct(&f); err != nil {
		return nil, fmt.Errorf("invalid preset file: %w", err)
	}
	return &f, nil
}

// Profile looks up a named profile.
func (f *File) Profile(name string) (Profile, error) {
	p, ok := f.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("preset %q not found", name)
	}
	return p, nil
}

// Options resolves the profile into pipeline options.
func (p Profile) Options() (imageprocessing.Options, error) {
	mode, err := dither.ParseMode(p.Mode)
	if err != nil {
		return imageprocessing.Options{}, err
	}

	opts := imageprocessing.DefaultOptions()
	opts.Mode = mode
	opts.Serpentine = p.Serpentine
	opts.Seed = p.Seed
	opts.Width = p.Width
	opts.Height = p.Height
	if p.Levels != 0 {
		opts.Levels = p.Levels
	}
	if p.Grayscale != nil {
		opts.Grayscale = *p.Grayscale
	}
	switch p.Fit {
	case "cover":
		opts.Fit = imageprocessing.FitCover
	case "stretch":
		opts.Fit = imageprocessing.FitStretch
	default:
		opts.Fit = imageprocessing.FitContain
	}
	return opts, nil
}
