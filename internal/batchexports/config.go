package batchexports

import (
	"fmt"
	"time"
)

// Config is one saved batch-export destination configuration. ServiceConfig
// carries the service-specific fields declared by the service definition.
type Config struct {
	ID            int               `json:"id,omitempty"`
	Name          string            `json:"name"`
	Description   string            `json:"description,omitempty"`
	Service       string            `json:"service"`
	Enabled       bool              `json:"enabled"`
	ServiceConfig map[string]string `json:"config"`
	CreatedAt     time.Time         `json:"created_at,omitempty"`
	UpdatedAt     time.Time         `json:"updated_at,omitempty"`
}

// clone deep-copies the config so drafts and baselines never share the
// service config map.
func (c Config) clone() Config {
	copied := c
	copied.ServiceConfig = make(map[string]string, len(c.ServiceConfig))
	for k, v := range c.ServiceConfig {
		copied.ServiceConfig[k] = v
	}
	return copied
}

// defaults returns the empty form draft for a service: every declared field
// at its default value.
func (d ServiceDefinition) defaults() Config {
	cfg := Config{
		Service:       d.ServiceName,
		Enabled:       true,
		ServiceConfig: make(map[string]string, len(d.Fields)),
	}
	for _, f := range d.Fields {
		cfg.ServiceConfig[f.Name] = f.Default
	}
	return cfg
}

// validate checks a draft against the service definition, collecting every
// field failure rather than stopping at the first so the form can surface
// all of them at once.
func (d ServiceDefinition) validate(cfg Config) map[string]string {
	fields := make(map[string]string)
	if cfg.Name == "" {
		fields["name"] = "name is required"
	}
	if cfg.Service != d.ServiceName {
		fields["service"] = fmt.Sprintf("service must be %q", d.ServiceName)
	}
	for _, f := range d.Fields {
		if f.Required && cfg.ServiceConfig[f.Name] == "" {
			fields[f.Name] = fmt.Sprintf("%s is required", f.Label)
		}
	}
	declared := make(map[string]bool, len(d.Fields))
	for _, f := range d.Fields {
		declared[f.Name] = true
	}
	for name := range cfg.ServiceConfig {
		if !declared[name] {
			fields[name] = fmt.Sprintf("unknown field for %s", d.ServiceName)
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
