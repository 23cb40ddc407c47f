package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"rhystmorgan/veDesk/internal/animation"
)

const (
	envPrefix      = "VEDESK"
	configName     = ".vedesk"
	defaultLogFile = "~/.vedesk/vedesk.log"
)

type SpringConfig struct {
	Mass     float64
	Tension  float64
	Friction float64
}

type AnimationConfig struct {
	FPS    int
	Detail SpringConfig
	Nav    SpringConfig
}

type ThemeConfig struct {
	AccentMeetings string
	AccentContacts string
}

type AppConfig struct {
	Fixtures  string
	LogFile   string
	LogLevel  string
	Animation AnimationConfig
	Theme     ThemeConfig
}

// LoadAppConfig reads configuration from defaults, an optional .vedesk.yaml
// (or the explicit configFile) and VEDESK_* environment variables, in
// increasing order of precedence.
func LoadAppConfig(configFile string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		path, err := homedir.Expand(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to expand config path: %w", err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	config := &AppConfig{
		Fixtures: v.GetString("fixtures"),
		LogFile:  v.GetString("log_file"),
		LogLevel: v.GetString("log_level"),
		Animation: AnimationConfig{
			FPS:    v.GetInt("animation.fps"),
			Detail: springFrom(v, "animation.detail"),
			Nav:    springFrom(v, "animation.nav"),
		},
		Theme: ThemeConfig{
			AccentMeetings: v.GetString("theme.accent_meetings"),
			AccentContacts: v.GetString("theme.accent_contacts"),
		},
	}

	if IsDebugEnabled() {
		config.LogLevel = "debug"
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	d := GetDefaultConfig()
	v.SetDefault("fixtures", d.Fixtures)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("animation.fps", d.Animation.FPS)
	v.SetDefault("animation.detail.mass", d.Animation.Detail.Mass)
	v.SetDefault("animation.detail.tension", d.Animation.Detail.Tension)
	v.SetDefault("animation.detail.friction", d.Animation.Detail.Friction)
	v.SetDefault("animation.nav.mass", d.Animation.Nav.Mass)
	v.SetDefault("animation.nav.tension", d.Animation.Nav.Tension)
	v.SetDefault("animation.nav.friction", d.Animation.Nav.Friction)
	v.SetDefault("theme.accent_meetings", d.Theme.AccentMeetings)
	v.SetDefault("theme.accent_contacts", d.Theme.AccentContacts)
}

func springFrom(v *viper.Viper, prefix string) SpringConfig {
	return SpringConfig{
		Mass:     v.GetFloat64(prefix + ".mass"),
		Tension:  v.GetFloat64(prefix + ".tension"),
		Friction: v.GetFloat64(prefix + ".friction"),
	}
}

func (c *AppConfig) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	if c.Animation.FPS <= 0 {
		return fmt.Errorf("animation fps must be positive, got: %d", c.Animation.FPS)
	}

	if err := c.Animation.Detail.validate("detail"); err != nil {
		return err
	}
	if err := c.Animation.Nav.validate("nav"); err != nil {
		return err
	}

	return nil
}

func (s SpringConfig) validate(name string) error {
	if s.Mass <= 0 {
		return fmt.Errorf("%s spring mass must be positive, got: %v", name, s.Mass)
	}
	if s.Tension <= 0 {
		return fmt.Errorf("%s spring tension must be positive, got: %v", name, s.Tension)
	}
	if s.Friction < 0 {
		return fmt.Errorf("%s spring friction must be non-negative, got: %v", name, s.Friction)
	}
	return nil
}

// Level returns the zap level for LogLevel, falling back to info.
func (c *AppConfig) Level() zapcore.Level {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// LogPath returns LogFile with a leading ~ expanded.
func (c *AppConfig) LogPath() (string, error) {
	return homedir.Expand(c.LogFile)
}

func (c *AppConfig) FixturesPath() (string, error) {
	if c.Fixtures == "" {
		return "", nil
	}
	return homedir.Expand(c.Fixtures)
}

func (c *AppConfig) ToAnimationConfig() animation.Config {
	return animation.Config{
		FPS:    c.Animation.FPS,
		Detail: c.Animation.Detail.toSpring(),
		Nav:    c.Animation.Nav.toSpring(),
	}
}

func (s SpringConfig) toSpring() animation.SpringConfig {
	return animation.SpringConfig{Mass: s.Mass, Tension: s.Tension, Friction: s.Friction}
}

// GetDefaultConfig returns the built-in settings. The detail panel spring is
// a little stiffer than the navigation indicator's.
func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		Fixtures: "",
		LogFile:  defaultLogFile,
		LogLevel: "info",
		Animation: AnimationConfig{
			FPS:    60,
			Detail: SpringConfig{Mass: 1, Tension: 220, Friction: 25},
			Nav:    SpringConfig{Mass: 1, Tension: 200, Friction: 20},
		},
		Theme: ThemeConfig{
			AccentMeetings: "#89dceb",
			AccentContacts: "#cba6f7",
		},
	}
}

func IsDebugEnabled() bool {
	return os.Getenv("VEDESK_DEBUG") == "true" || os.Getenv("VEDESK_DEBUG") == "1"
}
