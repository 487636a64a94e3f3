package appconf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// File is the YAML layout accepted by -config. Every field is optional;
// only the ones present are applied.
type File struct {
	Port      *int     `yaml:"port" validate:"omitempty,min=1,max=65535"`
	Env       string   `yaml:"env" validate:"omitempty,oneof=development test production prod"`
	ApiKeys   []string `yaml:"api_keys" validate:"omitempty,dive,required"`
	RateLimit *int     `yaml:"rate_limit" validate:"omitempty,min=0"`
	LogLevel  string   `yaml:"log_level" validate:"omitempty,oneof=debug info warn error DEBUG INFO WARN ERROR"`
	LogFormat string   `yaml:"log_format" validate:"omitempty,oneof=json text"`

	Gtfs GtfsFile `yaml:"gtfs"`
}

// GtfsFile names the sources to load. Paths are used as written.
type GtfsFile struct {
	Trips     string `yaml:"trips"`
	StopTimes string `yaml:"stop_times"`
	Feed      string `yaml:"feed"`
	Dialect   string `yaml:"dialect" validate:"omitempty,oneof=split quoted"`
	RowPolicy string `yaml:"row_policy" validate:"omitempty,oneof=abort skip"`
}

var validate = validator.New()

// ReadFile loads and validates a YAML config file.
func ReadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses YAML from r and validates it. Unknown keys are rejected.
func Decode(r io.Reader) (*File, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := validate.Struct(&file); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &file, nil
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(b []byte) (*File, error) {
	return Decode(bytes.NewReader(b))
}

// Apply copies every value present in the file onto cfg.
func (f *File) Apply(cfg *Config) {
	if f.Port != nil {
		cfg.Port = *f.Port
	}
	if f.Env != "" {
		cfg.Env = EnvFlagToEnvironment(f.Env)
	}
	if len(f.ApiKeys) > 0 {
		cfg.ApiKeys = append([]string(nil), f.ApiKeys...)
	}
	if f.RateLimit != nil {
		cfg.RateLimit = *f.RateLimit
	}
	if f.LogLevel != "" {
		cfg.LogLevel = f.LogLevel
	}
	if f.LogFormat != "" {
		cfg.LogFormat = f.LogFormat
	}
}
