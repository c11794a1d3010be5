package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the working directory
const DefaultPath = "bus2.yml"

const envPrefix = "BUS2_"

// AppConfig holds the settings of a site build
type AppConfig struct {
	DataDir            string `yaml:"data_dir" validate:"required"`
	OutputDir          string `yaml:"output_dir" validate:"required"`
	RouteFile          string `yaml:"route_file"`
	PublishedDatesFile string `yaml:"published_dates_file,omitempty"`
	BaseURL            string `yaml:"base_url" validate:"required,url"`
	SiteName           string `yaml:"site_name"`
	BookingURL         string `yaml:"booking_url" validate:"omitempty,url"`
	Timezone           string `yaml:"timezone" validate:"required"`
	MaxRelatedLinks    int    `yaml:"max_related_links" validate:"gte=0"`
	RSSItems           int    `yaml:"rss_items" validate:"gte=1"`
	AccentColor        string `yaml:"accent_color,omitempty"`
}

// Default returns the settings used when no config file exists
func Default() *AppConfig {
	return &AppConfig{
		DataDir:         "data",
		OutputDir:       "outputs",
		RouteFile:       filepath.Join("route", "total_route.json"),
		BaseURL:         "https://bus.medilocator.co.kr/",
		SiteName:        "시외버스 시간표",
		BookingURL:      "https://www.bustago.or.kr/newweb/kr/booking/info_schedule.jsp",
		Timezone:        "Asia/Seoul",
		MaxRelatedLinks: 7,
		RSSItems:        20,
	}
}

// LoadDotEnv reads a .env file into the environment if one exists.
// Variables that are already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads the YAML config at path on top of the defaults.
// Returns the defaults if the file does not exist.
func Load(path string) (*AppConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		// A missing file is fine, every field has a default
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to path as YAML.
func Save(path string, cfg *AppConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("could not create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides fields from BUS2_* environment variables
func (c *AppConfig) ApplyEnv() error {
	strs := map[string]*string{
		"DATA_DIR":             &c.DataDir,
		"OUTPUT_DIR":           &c.OutputDir,
		"ROUTE_FILE":           &c.RouteFile,
		"PUBLISHED_DATES_FILE": &c.PublishedDatesFile,
		"BASE_URL":             &c.BaseURL,
		"SITE_NAME":            &c.SiteName,
		"BOOKING_URL":          &c.BookingURL,
		"TIMEZONE":             &c.Timezone,
		"ACCENT_COLOR":         &c.AccentColor,
	}
	for name, field := range strs {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*field = v
		}
	}

	ints := map[string]*int{
		"MAX_RELATED_LINKS": &c.MaxRelatedLinks,
		"RSS_ITEMS":         &c.RSSItems,
	}
	for name, field := range ints {
		v, ok := os.LookupEnv(envPrefix + name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", envPrefix, name, err)
		}
		*field = n
	}

	return nil
}

// Validate checks the struct tags, normalizes the base URL and makes sure
// the timezone resolves.
func (c *AppConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid config field %s: failed %q check", verrs[0].Field(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	if !strings.HasSuffix(c.BaseURL, "/") {
		c.BaseURL += "/"
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured timezone
func (c *AppConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("could not load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// RegistryPath is where published dates are kept, inside the output dir unless set
func (c *AppConfig) RegistryPath() string {
	if c.PublishedDatesFile != "" {
		return c.PublishedDatesFile
	}
	return filepath.Join(c.OutputDir, "published_dates.json")
}
