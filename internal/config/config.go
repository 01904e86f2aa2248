package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spf13/viper"
)

// CatalogConfig describes one named catalog: where its data directory
// lives and how results should be presented. The theme is carried as plain
// data; nothing in the query engine consumes it.
type CatalogConfig struct {
	DataDir string `yaml:"datadir" json:"data_dir"`
	Theme   string `yaml:"theme"   json:"theme"`
	Editor  string `yaml:"editor"  json:"editor"`
}

// Config is the on-disk configuration file: a set of named catalogs plus
// the active selection, so multiple data directories can be kept around and
// switched between.
type Config struct {
	Catalogs       map[string]*CatalogConfig `yaml:"catalogs"        json:"catalogs"`
	CurrentCatalog string                    `yaml:"current_catalog" json:"current_catalog"`

	active *CatalogConfig `yaml:"-"`
}

const defaultCatalogName = "default"

var validThemeNames = []string{"light", "dark"}

var ValidThemes = func() map[string]bool {
	themes := make(map[string]bool, len(validThemeNames))
	for _, theme := range validThemeNames {
		themes[theme] = true
	}

	return themes
}()

func ValidateTheme(theme string) error {
	if _, valid := ValidThemes[theme]; valid {
		return nil
	}

	return fmt.Errorf("invalid theme: %q. Please choose from 'light' or 'dark'.", theme)
}

func newCatalogConfig() *CatalogConfig {
	return &CatalogConfig{Theme: "light"}
}

func (cc *CatalogConfig) ensureDefaults() {
	cc.DataDir = strings.TrimSpace(cc.DataDir)
	if strings.TrimSpace(cc.Theme) == "" {
		cc.Theme = "light"
	}
}

func Load(home string) (*Config, error) {
	path := GetConfigPath(home)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if len(strings.TrimSpace(string(data))) == 0 {
		cfg.Catalogs = map[string]*CatalogConfig{
			defaultCatalogName: newCatalogConfig(),
		}
		cfg.CurrentCatalog = defaultCatalogName
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.ensureInitialized(); err != nil {
		return nil, err
	}

	cc, err := cfg.ActiveCatalog()
	if err != nil {
		return nil, err
	}

	if cc.Theme != "" {
		if err := ValidateTheme(cc.Theme); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func (cfg *Config) ensureInitialized() error {
	if cfg.Catalogs == nil {
		cfg.Catalogs = make(map[string]*CatalogConfig)
	}

	if cfg.CurrentCatalog == "" {
		if len(cfg.Catalogs) == 0 {
			cfg.Catalogs[defaultCatalogName] = newCatalogConfig()
			cfg.CurrentCatalog = defaultCatalogName
		} else {
			for name := range cfg.Catalogs {
				cfg.CurrentCatalog = name
				break
			}
		}
	}

	return cfg.setActiveCatalog(cfg.CurrentCatalog)
}

func (cfg *Config) setActiveCatalog(name string) error {
	if name == "" {
		return fmt.Errorf("catalog name cannot be empty")
	}
	cc, ok := cfg.Catalogs[name]
	if !ok {
		return fmt.Errorf("catalog %q does not exist", name)
	}
	if cc == nil {
		cc = newCatalogConfig()
		cfg.Catalogs[name] = cc
	}

	cc.ensureDefaults()
	cfg.CurrentCatalog = name
	cfg.active = cc

	cfg.syncViperWithActiveCatalog()

	return nil
}

func (cfg *Config) syncViperWithActiveCatalog() {
	if cfg.active == nil {
		return
	}

	viper.Set("datadir", cfg.active.DataDir)
	viper.Set("theme", cfg.active.Theme)
	viper.Set("editor", cfg.active.Editor)
}

func (cfg *Config) ActiveCatalog() (*CatalogConfig, error) {
	if cfg.active != nil {
		return cfg.active, nil
	}

	if cfg.CurrentCatalog == "" {
		return nil, fmt.Errorf("no catalog is currently selected")
	}

	if err := cfg.setActiveCatalog(cfg.CurrentCatalog); err != nil {
		return nil, err
	}

	return cfg.active, nil
}

func (cfg *Config) CatalogNames() []string {
	names := make([]string, 0, len(cfg.Catalogs))
	for name := range cfg.Catalogs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SwitchCatalog activates a named catalog and persists the selection.
func (cfg *Config) SwitchCatalog(name string) error {
	if err := cfg.setActiveCatalog(name); err != nil {
		return err
	}
	return cfg.Save()
}

// ActivateCatalog activates a named catalog for this process only.
func (cfg *Config) ActivateCatalog(name string) error {
	return cfg.setActiveCatalog(name)
}

func (cfg *Config) AddCatalog(name string, cc *CatalogConfig, makeCurrent bool) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("catalog name cannot be empty")
	}

	if cfg.Catalogs == nil {
		cfg.Catalogs = make(map[string]*CatalogConfig)
	}

	if _, exists := cfg.Catalogs[trimmed]; exists {
		return fmt.Errorf("catalog %q already exists", trimmed)
	}

	if cc == nil {
		cc = newCatalogConfig()
	}
	cc.ensureDefaults()
	cfg.Catalogs[trimmed] = cc

	if cfg.CurrentCatalog == "" || makeCurrent {
		if err := cfg.setActiveCatalog(trimmed); err != nil {
			return err
		}
	}

	return cfg.Save()
}

func (cfg *Config) RemoveCatalog(name string) error {
	if len(cfg.Catalogs) <= 1 {
		return fmt.Errorf("cannot remove the last catalog")
	}

	if _, exists := cfg.Catalogs[name]; !exists {
		return fmt.Errorf("catalog %q does not exist", name)
	}

	delete(cfg.Catalogs, name)

	if cfg.CurrentCatalog == name {
		cfg.active = nil
		cfg.CurrentCatalog = ""
		if err := cfg.ensureInitialized(); err != nil {
			return err
		}
	}

	return cfg.Save()
}

func (cfg *Config) ChangeTheme(theme string) error {
	if err := ValidateTheme(theme); err != nil {
		return err
	}

	cc, err := cfg.ActiveCatalog()
	if err != nil {
		return err
	}

	cc.Theme = theme
	return cfg.Save()
}

func (cfg *Config) ChangeDataDir(dir string) error {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	cc, err := cfg.ActiveCatalog()
	if err != nil {
		return err
	}

	cc.DataDir = trimmed
	return cfg.Save()
}

func (cfg *Config) GetConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return GetConfigPath(homeDir)
}

func (cfg *Config) Save() error {
	cc, err := cfg.ActiveCatalog()
	if err != nil {
		return err
	}

	if cc.Theme != "" {
		if err := ValidateTheme(cc.Theme); err != nil {
			return err
		}
	}

	cfg.syncViperWithActiveCatalog()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	configPath := cfg.GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}
