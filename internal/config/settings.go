package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/handiism/sjt-catalog/internal/carousel"
)

// SlideSettings describes one carousel slide.
type SlideSettings struct {
	Title      string `json:"title" mapstructure:"title"`
	Caption    string `json:"caption" mapstructure:"caption"`
	Background string `json:"background" mapstructure:"background"`
	Active     bool   `json:"active" mapstructure:"active"`
}

// Settings holds all configuration options.
type Settings struct {
	// Catalog
	DataSource string `json:"data_source" mapstructure:"data_source"`

	// Carousel
	CarouselIntervalMS int             `json:"carousel_interval_ms" mapstructure:"carousel_interval_ms"`
	ReducedMotion      bool            `json:"reduced_motion" mapstructure:"reduced_motion"`
	Slides             []SlideSettings `json:"slides" mapstructure:"slides"`
	ThumbnailWidth     int             `json:"thumbnail_width" mapstructure:"thumbnail_width"`
	ThumbnailHeight    int             `json:"thumbnail_height" mapstructure:"thumbnail_height"`
	MaxConcurrentLoads int             `json:"max_concurrent_loads" mapstructure:"max_concurrent_loads"`

	// Contact relay
	RelayURL       string `json:"relay_url" mapstructure:"relay_url"`
	RelayAddr      string `json:"relay_addr" mapstructure:"relay_addr"`
	OutboxPath     string `json:"outbox_path" mapstructure:"outbox_path"`
	MailTo         string `json:"mail_to" mapstructure:"mail_to"`
	MailFrom       string `json:"mail_from" mapstructure:"mail_from"`
	SubjectPrefix  string `json:"subject_prefix" mapstructure:"subject_prefix"`
	RedirectTarget string `json:"redirect_target" mapstructure:"redirect_target"`

	// Logging
	LogLevel string `json:"log_level" mapstructure:"log_level"`
	LogFile  string `json:"log_file" mapstructure:"log_file"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		DataSource: filepath.Join("assets", "data", "productos.json"),

		CarouselIntervalMS: 8000,
		ReducedMotion:      false,
		Slides: []SlideSettings{
			{Title: "SJT ERP", Caption: "Sistemas de gestión para entidades financieras", Active: true},
			{Title: "Módulos", Caption: "Créditos, ahorros, contabilidad y más"},
			{Title: "Soporte", Caption: "Acompañamiento en cada gestión"},
		},
		ThumbnailWidth:     24,
		ThumbnailHeight:    8,
		MaxConcurrentLoads: 4,

		RelayURL:       "http://localhost:8080/contact",
		RelayAddr:      ":8080",
		OutboxPath:     "",
		MailTo:         "atencionalcliente@sjerp.com",
		MailFrom:       "no-reply@sjterp.com",
		SubjectPrefix:  "[Web SJT] ",
		RedirectTarget: "index.html#contacto",

		LogLevel: "info",
	}
}

// Load reads settings from a config file and the environment.
//
// The file format follows the extension (json, yaml, toml). A missing file
// is not an error: defaults apply. Every key can be overridden with an
// SJT_ environment variable, e.g. SJT_CAROUSEL_INTERVAL_MS=0.
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v, DefaultSettings())

	v.SetEnvPrefix("SJT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	settings := DefaultSettings()
	if v.IsSet("slides") {
		settings.Slides = nil
	}
	if err := v.Unmarshal(settings); err != nil {
		return nil, err
	}

	if reducedMotionFromEnv() {
		settings.ReducedMotion = true
	}

	return settings, nil
}

func setDefaults(v *viper.Viper, s *Settings) {
	v.SetDefault("data_source", s.DataSource)
	v.SetDefault("carousel_interval_ms", s.CarouselIntervalMS)
	v.SetDefault("reduced_motion", s.ReducedMotion)
	v.SetDefault("thumbnail_width", s.ThumbnailWidth)
	v.SetDefault("thumbnail_height", s.ThumbnailHeight)
	v.SetDefault("max_concurrent_loads", s.MaxConcurrentLoads)
	v.SetDefault("relay_url", s.RelayURL)
	v.SetDefault("relay_addr", s.RelayAddr)
	v.SetDefault("outbox_path", s.OutboxPath)
	v.SetDefault("mail_to", s.MailTo)
	v.SetDefault("mail_from", s.MailFrom)
	v.SetDefault("subject_prefix", s.SubjectPrefix)
	v.SetDefault("redirect_target", s.RedirectTarget)
	v.SetDefault("log_level", s.LogLevel)
	v.SetDefault("log_file", s.LogFile)
}

// reducedMotionFromEnv mirrors the prefers-reduced-motion media query for
// terminals: REDUCED_MOTION=1 or any NO_MOTION value.
func reducedMotionFromEnv() bool {
	if _, ok := os.LookupEnv("NO_MOTION"); ok {
		return true
	}
	switch strings.ToLower(os.Getenv("REDUCED_MOTION")) {
	case "1", "true", "yes", "reduce":
		return true
	}
	return false
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// CarouselInterval converts the millisecond setting to a duration.
func (s *Settings) CarouselInterval() time.Duration {
	return time.Duration(s.CarouselIntervalMS) * time.Millisecond
}

// ToSlides converts slide settings to carousel slides.
func (s *Settings) ToSlides() []carousel.Slide {
	slides := make([]carousel.Slide, len(s.Slides))
	for i, sl := range s.Slides {
		slides[i] = carousel.Slide{
			Title:      sl.Title,
			Caption:    sl.Caption,
			Background: sl.Background,
			Active:     sl.Active,
		}
	}
	return slides
}
