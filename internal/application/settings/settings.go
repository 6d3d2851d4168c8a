// Package settings defines application-level configuration data.
package settings

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Source formats understood by the post client.
const (
	FormatJSON = "json"
	FormatFeed = "feed"
)

// DefaultSourceURL is the public endpoint the browser reads posts from.
const DefaultSourceURL = "https://jsonplaceholder.typicode.com/posts"

// SourceConfig describes where posts are fetched from.
type SourceConfig struct {
	URL            string `yaml:"url" toml:"url" kong:"help='Post collection URL',default='https://jsonplaceholder.typicode.com/posts'"`
	Format         string `yaml:"format" toml:"format" kong:"help='Source format (json/feed)',default='json'"`
	TimeoutSeconds int    `yaml:"timeout_seconds" toml:"timeout_seconds" kong:"help='Request timeout in seconds (0 disables)',default='30'"`
}

// Timeout returns the request timeout as a duration.
func (c SourceConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// KeyMapConfig defines the configuration for keybindings.
type KeyMapConfig struct {
	Up       string `yaml:"up" toml:"up" kong:"help='Up key',default='k'"`
	Down     string `yaml:"down" toml:"down" kong:"help='Down key',default='j'"`
	UpPage   string `yaml:"up_page" toml:"up_page" kong:"help='Page Up key',default='ctrl+u'"`
	DownPage string `yaml:"down_page" toml:"down_page" kong:"help='Page Down key',default='ctrl+d'"`
	Top      string `yaml:"top" toml:"top" kong:"help='Top key',default='g'"`
	Bottom   string `yaml:"bottom" toml:"bottom" kong:"help='Bottom key',default='G'"`
	Select   string `yaml:"select" toml:"select" kong:"help='Highlight post key',default='enter,space'"`
	Search   string `yaml:"search" toml:"search" kong:"help='Focus search key',default='/,tab'"`
	Quit     string `yaml:"quit" toml:"quit" kong:"help='Quit key',default='q'"`
}

// ThemeConfig defines the color theme configuration.
type ThemeConfig struct {
	Accent              string `yaml:"accent" toml:"accent" kong:"help='Accent and highlight border color',default='#4CAF50'"`
	HighlightBackground string `yaml:"highlight_background" toml:"highlight_background" kong:"help='Highlighted row background',default='#e3fcef'"`
	Error               string `yaml:"error" toml:"error" kong:"help='Error message color',default='#D32F2F'"`
	Header              string `yaml:"header" toml:"header" kong:"help='Header color',default='#FFFFFF'"`
}

// LogConfig controls the diagnostic log sink.
type LogConfig struct {
	Level string `yaml:"level" toml:"level" kong:"help='Log level (debug/info/warn/error)',default='info'"`
	File  string `yaml:"file" toml:"file" kong:"help='Log file path (empty disables logging)'"`
}

// Settings represents the application configuration.
type Settings struct {
	Source SourceConfig `yaml:"source" toml:"source" kong:"embed,prefix='source.'"`
	KeyMap KeyMapConfig `yaml:"keymap" toml:"keymap" kong:"embed,prefix='keymap.'"`
	Theme  ThemeConfig  `yaml:"theme" toml:"theme" kong:"embed,prefix='theme.'"`
	Log    LogConfig    `yaml:"log" toml:"log" kong:"embed,prefix='log.'"`
}

// Check reports the first invalid setting. Settings must not implement
// kong's Validate hook: Check runs only after overrides are applied.
func (s Settings) Check() error {
	raw := strings.TrimSpace(s.Source.URL)
	if raw == "" {
		return fmt.Errorf("source url is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid source url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("source url %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("source url %q has no host", raw)
	}
	switch s.Source.Format {
	case FormatJSON, FormatFeed:
	default:
		return fmt.Errorf("unknown source format %q", s.Source.Format)
	}
	if s.Source.TimeoutSeconds < 0 {
		return fmt.Errorf("source timeout must not be negative: %d", s.Source.TimeoutSeconds)
	}
	if _, err := log.ParseLevel(s.Log.Level); err != nil {
		return fmt.Errorf("parse log level %q: %w", s.Log.Level, err)
	}
	return nil
}
