package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	DefaultStateTable = "HelloGuruSkillTable"
	DefaultSkillName  = "hello guru"
)

// Config holds the skill's runtime settings.
type Config struct {
	StateTable      string `mapstructure:"state_table"`
	Debug           bool   `mapstructure:"debug"`
	AutoCreateTable bool   `mapstructure:"auto_create_table"`
	SkillID         string `mapstructure:"skill_id"`
	SkillName       string `mapstructure:"skill_name"`
	ParamPrefix     string `mapstructure:"param_prefix"`
}

// OptionalGetter reads a parameter that may not exist.
type OptionalGetter interface {
	GetOptionalParameter(ctx context.Context, name string) (string, bool, error)
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("state_table", DefaultStateTable)
	v.SetDefault("debug", false)
	v.SetDefault("auto_create_table", true)
	v.SetDefault("skill_id", "")
	v.SetDefault("skill_name", DefaultSkillName)
	v.SetDefault("param_prefix", "")

	bindings := map[string]string{
		"state_table":       "STATE_TABLE",
		"debug":             "DEBUG_ON",
		"auto_create_table": "AUTO_CREATE_TABLE",
		"skill_id":          "SKILL_ID",
		"skill_name":        "SKILL_NAME",
		"param_prefix":      "PARAM_PREFIX",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("config: bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.StateTable = strings.TrimSpace(c.StateTable)
	c.SkillID = strings.TrimSpace(c.SkillID)
	c.SkillName = strings.TrimSpace(c.SkillName)
	c.ParamPrefix = strings.TrimRight(strings.TrimSpace(c.ParamPrefix), "/")
}

func (c *Config) Validate() error {
	if c.StateTable == "" {
		return errors.New("config: state table must not be empty")
	}
	if c.SkillName == "" {
		return errors.New("config: skill name must not be empty")
	}
	return nil
}

// ApplyParameters overrides the skill id and name with values found under
// ParamPrefix. Missing parameters keep the environment values.
func (c *Config) ApplyParameters(ctx context.Context, params OptionalGetter) error {
	if c.ParamPrefix == "" || params == nil {
		return nil
	}
	overrides := []struct {
		name string
		dst  *string
	}{
		{name: "/skill_id", dst: &c.SkillID},
		{name: "/skill_name", dst: &c.SkillName},
	}
	for _, o := range overrides {
		val, ok, err := params.GetOptionalParameter(ctx, c.ParamPrefix+o.name)
		if err != nil {
			return fmt.Errorf("config: load %s: %w", o.name, err)
		}
		if ok {
			*o.dst = strings.TrimSpace(val)
		}
	}
	c.normalize()
	return c.Validate()
}
