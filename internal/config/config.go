// Package config defines run parameters, their defaults and how they are
// collected from a YAML file, the environment or an interactive prompt.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/katiamach/wind-viability-report/internal/forecast"
	"github.com/katiamach/wind-viability-report/internal/model"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Config contains the run configuration.
type Config struct {
	// Financial and grid parameters, asked for in interactive mode.
	Region       string  `koanf:"region"`
	GridSize     int     `koanf:"grid_size"`
	TurbineArea  float64 `koanf:"turbine_area"`
	Efficiency   float64 `koanf:"efficiency"`
	PricePerKWh  float64 `koanf:"price_per_kwh"`
	Capex        float64 `koanf:"capex"`
	Opex         float64 `koanf:"opex"`
	DiscountRate float64 `koanf:"discount_rate"` // percent
	Lifetime     int     `koanf:"lifetime"`
	TopN         int     `koanf:"top_n"`

	// Forecast API.
	APIURL         string        `koanf:"api_url"`
	APIKey         string        `koanf:"api_key"`
	Model          string        `koanf:"model"`
	Level          string        `koanf:"level"`
	RequestBudget  int           `koanf:"request_budget"`
	RetryDelay     time.Duration `koanf:"retry_delay"`
	Throttle       time.Duration `koanf:"throttle"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
	Concurrency    int           `koanf:"concurrency"`
	// Seed of the budget sampler, 0 seeds from the clock.
	Seed int64 `koanf:"seed"`

	BoundariesPath string `koanf:"boundaries_path"`
	OutputDir      string `koanf:"output_dir"`
	LogLevel       string `koanf:"log_level"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		Region:       string(model.Europe),
		GridSize:     5,
		TurbineArea:  12400,
		Efficiency:   0.4,
		PricePerKWh:  0.12,
		Capex:        1_500_000,
		Opex:         65_000,
		DiscountRate: 7,
		Lifetime:     20,
		TopN:         3,

		APIURL:         forecast.DefaultURL,
		Model:          forecast.DefaultModel,
		Level:          forecast.DefaultLevel,
		RequestBudget:  forecast.DefaultBudget,
		RetryDelay:     forecast.DefaultRetryDelay,
		Throttle:       forecast.DefaultThrottle,
		RequestTimeout: forecast.DefaultTimeout,
		Concurrency:    1,

		BoundariesPath: "data/ne_110m_admin_0_countries.geojson",
		OutputDir:      "reports",
		LogLevel:       "info",
	}
}

// Params returns the financial parameter set. Discount rate becomes a fraction.
func (c *Config) Params() model.Params {
	return model.Params{
		Region:       model.Region(c.Region),
		GridSize:     c.GridSize,
		TurbineArea:  c.TurbineArea,
		Efficiency:   c.Efficiency,
		PricePerKWh:  c.PricePerKWh,
		Capex:        c.Capex,
		Opex:         c.Opex,
		DiscountRate: c.DiscountRate / 100,
		Lifetime:     c.Lifetime,
		TopN:         c.TopN,
	}
}

// field binds one config key to its parser. set leaves the Config untouched
// on error.
type field struct {
	key    string
	prompt string
	get    func(c *Config) string
	set    func(c *Config, raw string) error
}

// fields lists every key. Prompted ones come first, in the order asked.
var fields = []field{
	{
		key:    "region",
		prompt: fmt.Sprintf("Region (%s)", regionList()),
		get:    func(c *Config) string { return c.Region },
		set: func(c *Config, raw string) error {
			r, err := ParseRegion(raw)
			if err != nil {
				return err
			}
			c.Region = string(r)
			return nil
		},
	},
	intField("grid_size", "Grid resolution (points per side)", 1, func(c *Config) *int { return &c.GridSize }),
	floatField("turbine_area", "Turbine swept area (m2)", positive, func(c *Config) *float64 { return &c.TurbineArea }),
	floatField("efficiency", "Efficiency (0-1]", fraction, func(c *Config) *float64 { return &c.Efficiency }),
	floatField("price_per_kwh", "Electricity price (EUR/kWh)", nonNegative, func(c *Config) *float64 { return &c.PricePerKWh }),
	floatField("capex", "CAPEX (EUR)", positive, func(c *Config) *float64 { return &c.Capex }),
	floatField("opex", "OPEX (EUR/year)", nonNegative, func(c *Config) *float64 { return &c.Opex }),
	floatField("discount_rate", "Discount rate (%)", nonNegative, func(c *Config) *float64 { return &c.DiscountRate }),
	intField("lifetime", "Project lifetime (years)", 1, func(c *Config) *int { return &c.Lifetime }),
	intField("top_n", "Top N countries", 1, func(c *Config) *int { return &c.TopN }),

	stringField("api_url", func(c *Config) *string { return &c.APIURL }),
	{
		key: "api_key",
		get: func(c *Config) string { return c.APIKey },
		set: func(c *Config, raw string) error {
			c.APIKey = strings.TrimSpace(raw)
			return nil
		},
	},
	stringField("model", func(c *Config) *string { return &c.Model }),
	stringField("level", func(c *Config) *string { return &c.Level }),
	intField("request_budget", "", 1, func(c *Config) *int { return &c.RequestBudget }),
	durationField("retry_delay", func(c *Config) *time.Duration { return &c.RetryDelay }),
	durationField("throttle", func(c *Config) *time.Duration { return &c.Throttle }),
	durationField("request_timeout", func(c *Config) *time.Duration { return &c.RequestTimeout }),
	intField("concurrency", "", 1, func(c *Config) *int { return &c.Concurrency }),
	{
		key: "seed",
		get: func(c *Config) string { return strconv.FormatInt(c.Seed, 10) },
		set: func(c *Config, raw string) error {
			v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			if err != nil {
				return fmt.Errorf("%w: seed %q", ErrInvalidValue, raw)
			}
			c.Seed = v
			return nil
		},
	},
	stringField("boundaries_path", func(c *Config) *string { return &c.BoundariesPath }),
	stringField("output_dir", func(c *Config) *string { return &c.OutputDir }),
	{
		key: "log_level",
		get: func(c *Config) string { return c.LogLevel },
		set: func(c *Config, raw string) error {
			lvl, err := logrus.ParseLevel(strings.TrimSpace(raw))
			if err != nil {
				return fmt.Errorf("%w: log_level %q", ErrInvalidValue, raw)
			}
			c.LogLevel = lvl.String()
			return nil
		},
	},
}

// Set parses raw into the field named key.
func (c *Config) Set(key, raw string) error {
	for _, f := range fields {
		if f.key == key {
			return f.set(c, raw)
		}
	}

	return fmt.Errorf("%w: unknown key %q", ErrInvalidValue, key)
}

// ParseRegion accepts region names in any case, with spaces, dashes or
// underscores between words.
func ParseRegion(raw string) (model.Region, error) {
	name := strings.NewReplacer("_", " ", "-", " ").Replace(strings.TrimSpace(raw))
	name = strings.Join(strings.Fields(name), " ")
	r := model.Region(cases.Title(language.English).String(strings.ToLower(name)))

	if !r.Valid() {
		return "", fmt.Errorf("%w: region %q", ErrInvalidValue, raw)
	}

	return r, nil
}

func regionList() string {
	names := make([]string, 0, len(model.Regions()))
	for _, r := range model.Regions() {
		names = append(names, string(r))
	}

	return strings.Join(names, ", ")
}

type floatCheck func(v float64) bool

func positive(v float64) bool    { return v > 0 }
func nonNegative(v float64) bool { return v >= 0 }
func fraction(v float64) bool    { return v > 0 && v <= 1 }

func floatField(key, prompt string, ok floatCheck, ptr func(c *Config) *float64) field {
	return field{
		key:    key,
		prompt: prompt,
		get:    func(c *Config) string { return strconv.FormatFloat(*ptr(c), 'f', -1, 64) },
		set: func(c *Config, raw string) error {
			v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil || !ok(v) {
				return fmt.Errorf("%w: %s %q", ErrInvalidValue, key, raw)
			}
			*ptr(c) = v
			return nil
		},
	}
}

func intField(key, prompt string, lowest int, ptr func(c *Config) *int) field {
	return field{
		key:    key,
		prompt: prompt,
		get:    func(c *Config) string { return strconv.Itoa(*ptr(c)) },
		set: func(c *Config, raw string) error {
			v, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil || v < lowest {
				return fmt.Errorf("%w: %s %q", ErrInvalidValue, key, raw)
			}
			*ptr(c) = v
			return nil
		},
	}
}

func durationField(key string, ptr func(c *Config) *time.Duration) field {
	return field{
		key: key,
		get: func(c *Config) string { return ptr(c).String() },
		set: func(c *Config, raw string) error {
			v, err := time.ParseDuration(strings.TrimSpace(raw))
			if err != nil || v < 0 {
				return fmt.Errorf("%w: %s %q", ErrInvalidValue, key, raw)
			}
			*ptr(c) = v
			return nil
		},
	}
}

func stringField(key string, ptr func(c *Config) *string) field {
	return field{
		key: key,
		get: func(c *Config) string { return *ptr(c) },
		set: func(c *Config, raw string) error {
			v := strings.TrimSpace(raw)
			if v == "" {
				return fmt.Errorf("%w: %s is empty", ErrInvalidValue, key)
			}
			*ptr(c) = v
			return nil
		},
	}
}
