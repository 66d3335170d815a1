package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/rbenali/garrison-duty/pkg/core/roster"
)

// StoreConfig selects and configures the persistence backend
type StoreConfig struct {
	// Backend is one of memory, sqlite, postgres
	Backend string `yaml:"backend" validate:"required,oneof=memory sqlite postgres"`

	// Path is the database file for the sqlite backend
	Path string `yaml:"path,omitempty"`

	// DSN is the connection string for the postgres backend
	DSN string `yaml:"dsn,omitempty"`
}

// RankConfig defines one rank of the hierarchy
type RankConfig struct {
	ID    string `yaml:"id" validate:"required"`
	Label string `yaml:"label" validate:"required"`
	Order int    `yaml:"order" validate:"gt=0"`
}

// RoleConfig maps a duty role to its allowed ranks
type RoleConfig struct {
	ID           string   `yaml:"id" validate:"required"`
	Name         string   `yaml:"name" validate:"required"`
	AllowedRanks []string `yaml:"allowedRanks" validate:"required,min=1"`
}

// GuardPointConfig defines one guarded location
type GuardPointConfig struct {
	ID       int    `yaml:"id" validate:"gt=0"`
	Name     string `yaml:"name" validate:"required"`
	Location string `yaml:"location,omitempty"`
}

// SpecialistConfig is one required specialty of a day profile
type SpecialistConfig struct {
	Specialty string `yaml:"specialty" validate:"required"`
	Count     int    `yaml:"count" validate:"gte=0"`
}

// ProfileConfig configures guard points and specialists for one day type
type ProfileConfig struct {
	ID             string             `yaml:"id" validate:"required"`
	DayType        string             `yaml:"dayType" validate:"required,oneof=WEEKDAY WEEKEND HOLIDAY"`
	ActivePointIDs []int              `yaml:"activePointIds"`
	Specialists    []SpecialistConfig `yaml:"requiredSpecialists" validate:"dive"`
}

// HolidayConfig holds the holiday calendar: fixed ISO dates plus
// recurring RRULE definitions
type HolidayConfig struct {
	Dates []string `yaml:"dates,omitempty"`
	Rules []string `yaml:"rules,omitempty"`
}

// Config represents the application configuration
type Config struct {
	Store         StoreConfig        `yaml:"store" validate:"required"`
	Ranks         []RankConfig       `yaml:"ranks" validate:"required,min=1,dive"`
	Roles         []RoleConfig       `yaml:"roles" validate:"required,min=1,dive"`
	GuardPoints   []GuardPointConfig `yaml:"guardPoints" validate:"dive"`
	Profiles      []ProfileConfig    `yaml:"profiles" validate:"required,min=1,dive"`
	Holidays      HolidayConfig      `yaml:"holidays"`
	RotationHours []string           `yaml:"rotationHours,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from garrison_config.yaml.
// It looks for the config file in the current directory first, then in
// the user's home directory.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}
	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and its cross-references
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// Backend-specific settings
	switch cfg.Store.Backend {
	case "sqlite":
		if cfg.Store.Path == "" {
			return fmt.Errorf("store.path is required for the sqlite backend")
		}
	case "postgres":
		if cfg.Store.DSN == "" {
			return fmt.Errorf("store.dsn is required for the postgres backend")
		}
	}

	// Role allowed ranks must reference configured ranks
	rankIDs := make(map[string]bool, len(cfg.Ranks))
	for _, r := range cfg.Ranks {
		rankIDs[r.ID] = true
	}
	for _, role := range cfg.Roles {
		for _, rank := range role.AllowedRanks {
			if !rankIDs[rank] {
				return fmt.Errorf("role %q references unknown rank %q", role.ID, rank)
			}
		}
	}

	// One profile per day type; active points must reference configured
	// guard points
	pointIDs := make(map[int]bool, len(cfg.GuardPoints))
	for _, gp := range cfg.GuardPoints {
		pointIDs[gp.ID] = true
	}
	seenDayTypes := make(map[string]bool)
	for _, p := range cfg.Profiles {
		if seenDayTypes[p.DayType] {
			return fmt.Errorf("duplicate profile for day type %s", p.DayType)
		}
		seenDayTypes[p.DayType] = true
		for _, id := range p.ActivePointIDs {
			if !pointIDs[id] {
				return fmt.Errorf("profile %q references unknown guard point %d", p.ID, id)
			}
		}
	}

	// Validate holiday dates and rrule syntax
	for _, d := range cfg.Holidays.Dates {
		if _, err := roster.ParseDate(d); err != nil {
			return fmt.Errorf("invalid holiday date: %w", err)
		}
	}
	for i, rule := range cfg.Holidays.Rules {
		if _, err := rrule.StrToRRule(rule); err != nil {
			return fmt.Errorf("invalid rrule in holidays.rules[%d]: %w", i, err)
		}
	}

	return nil
}

// Catalog converts the configuration into the reference data tables the
// engine consumes
func (cfg *Config) Catalog() (*roster.Catalog, error) {
	fixed := make([]roster.Date, 0, len(cfg.Holidays.Dates))
	for _, d := range cfg.Holidays.Dates {
		fixed = append(fixed, roster.Date(d))
	}
	cal, err := roster.NewCalendar(fixed, cfg.Holidays.Rules)
	if err != nil {
		return nil, fmt.Errorf("failed to build holiday calendar: %w", err)
	}

	catalog := &roster.Catalog{
		Calendar:      cal,
		RotationHours: cfg.RotationHours,
	}
	for _, r := range cfg.Ranks {
		catalog.Ranks = append(catalog.Ranks, roster.Rank{ID: r.ID, Label: r.Label, Order: r.Order})
	}
	for _, r := range cfg.Roles {
		catalog.Roles = append(catalog.Roles, roster.Role{
			ID:           roster.RoleID(r.ID),
			Name:         r.Name,
			AllowedRanks: r.AllowedRanks,
		})
	}
	for _, gp := range cfg.GuardPoints {
		catalog.GuardPoints = append(catalog.GuardPoints, roster.GuardPoint{
			ID:       gp.ID,
			Name:     gp.Name,
			Location: gp.Location,
		})
	}
	for _, p := range cfg.Profiles {
		catalog.Profiles = append(catalog.Profiles, roster.DayProfile{
			ID:             p.ID,
			Classification: roster.Classification(p.DayType),
			ActivePointIDs: p.ActivePointIDs,
			Specialists:    specialists(p.Specialists),
		})
	}
	return catalog, nil
}

func specialists(cfgs []SpecialistConfig) []roster.SpecialistRequirement {
	out := make([]roster.SpecialistRequirement, 0, len(cfgs))
	for _, s := range cfgs {
		out = append(out, roster.SpecialistRequirement{Specialty: s.Specialty, Count: s.Count})
	}
	return out
}

// findConfigFile searches for garrison_config.yaml in the current
// directory and the home directory
func findConfigFile() (string, error) {
	configFileName := "garrison_config.yaml"

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
