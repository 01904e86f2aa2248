package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/Paintersrp/curio/internal/config"
	"github.com/Paintersrp/curio/internal/constants"
	catalogsvc "github.com/Paintersrp/curio/internal/services/catalog"
	"github.com/Paintersrp/curio/internal/store"
)

type State struct {
	Config      *config.Config
	Catalog     *config.CatalogConfig
	CatalogName string
	Home        string
	DataDir     string
	Store       *store.Store
	Service     *catalogsvc.Service
	Watcher     *DataWatcher
}

func NewState(catalogOverride string) (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(home)
	if err != nil {
		return nil, err
	}

	if catalogOverride != "" {
		if err := cfg.ActivateCatalog(catalogOverride); err != nil {
			return nil, err
		}
	}

	cc, err := cfg.ActiveCatalog()
	if err != nil {
		return nil, err
	}

	s := &State{
		Config:      cfg,
		Catalog:     cc,
		CatalogName: cfg.CurrentCatalog,
		Home:        home,
		DataDir:     cc.DataDir,
	}

	// An unconfigured catalog has no data directory yet. Commands that need
	// one go through RequireService, which points the user at init.
	if cc.DataDir == "" {
		return s, nil
	}

	st, err := store.NewStore(cc.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory: %w", err)
	}

	service := catalogsvc.NewService(st)

	watcher, err := NewDataWatcher(cc.DataDir)
	if err != nil {
		_ = service.Close()
		return nil, fmt.Errorf("failed to create data watcher: %w", err)
	}
	watcher.OnChange(func(rel string) {
		service.QueueUpdate(rel)
	})
	watcher.OnClose(func() {
		_ = service.Close()
	})

	s.Store = st
	s.Service = service
	s.Watcher = watcher

	return s, nil
}

// RequireService returns the catalog service, or an error directing the user
// to configure a data directory first.
func (s *State) RequireService() (*catalogsvc.Service, error) {
	if s == nil || s.Service == nil {
		return nil, errors.New(
			"no data directory configured for this catalog, run 'curio init' first",
		)
	}
	return s.Service, nil
}

// DefaultDataDir returns the conventional data directory under the user's
// home for freshly initialized catalogs.
func (s *State) DefaultDataDir() string {
	return filepath.Join(s.Home, constants.DefaultDataDirName)
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

func LoadConfig(home string) (*config.Config, error) {
	viper.AddConfigPath(home + constants.ConfigDir)
	viper.SetConfigName(constants.ConfigFile)
	viper.SetConfigType(constants.ConfigFileType)
	viper.ReadInConfig()

	err := config.EnsureConfigExists(home)
	if err != nil {
		return nil, err
	}

	return config.Load(home)
}

// Close releases resources associated with the state, including the data
// watcher and shared catalog service.
func (s *State) Close() error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.Watcher != nil {
		if err := s.Watcher.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Watcher = nil
	}
	if s.Service != nil {
		if err := s.Service.Close(); err != nil && !errors.Is(err, catalogsvc.ErrClosed) {
			errs = append(errs, err)
		}
		s.Service = nil
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
