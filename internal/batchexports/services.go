// Package batchexports manages batch-export destination configurations:
// the catalog of export services, their configuration forms, and the saved
// configurations behind them.
package batchexports

import (
	"pipeline-console/internal/common/registry"
)

// Field describes one service-specific configuration field.
type Field struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
	Secret   bool   `json:"secret,omitempty"`
	Default  string `json:"default,omitempty"`
}

// ServiceDefinition describes one batch-export destination service: its
// identity and the fields its configuration form carries.
type ServiceDefinition struct {
	ServiceName string  `json:"service"`
	Fields      []Field `json:"fields"`
	// StaffOnly services appear in the destination catalog only for
	// impersonated staff sessions.
	StaffOnly bool `json:"-"`
}

// Name implements registry.Definition.
func (d ServiceDefinition) Name() string {
	return d.ServiceName
}

// Registry holds the known batch-export services in display order.
type Registry struct {
	defs *registry.Registry[ServiceDefinition]
}

// NewRegistry creates an empty service registry.
func NewRegistry() *Registry {
	return &Registry{defs: registry.New[ServiceDefinition]()}
}

// Register adds a service definition. Registration order is display order.
func (r *Registry) Register(def ServiceDefinition) {
	r.defs.Register(def)
}

// Get returns a service definition by name.
func (r *Registry) Get(service string) (ServiceDefinition, error) {
	return r.defs.Get(service)
}

// ServiceNames returns the offered service names in display order. Staff
// gated services are included only for impersonated sessions; omission is
// a visibility rule, not an error.
func (r *Registry) ServiceNames(impersonated bool) []string {
	var names []string
	for _, name := range r.defs.Names() {
		def, err := r.defs.Get(name)
		if err != nil {
			continue
		}
		if def.StaffOnly && !impersonated {
			continue
		}
		names = append(names, name)
	}
	return names
}

// DefaultRegistry returns the registry of supported export services. The
// registration order is the fixed order the destination catalog lists them
// in.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(ServiceDefinition{
		ServiceName: "BigQuery",
		Fields: []Field{
			{Name: "project_id", Label: "Project ID", Required: true},
			{Name: "dataset_id", Label: "Dataset ID", Required: true},
			{Name: "table_id", Label: "Table ID", Required: true},
			{Name: "client_email", Label: "Client email", Required: true},
			{Name: "private_key", Label: "Private key", Required: true, Secret: true},
			{Name: "token_uri", Label: "Token URI", Default: "https://oauth2.googleapis.com/token"},
		},
	})
	r.Register(ServiceDefinition{
		ServiceName: "Postgres",
		Fields: []Field{
			{Name: "host", Label: "Host", Required: true},
			{Name: "port", Label: "Port", Default: "5432"},
			{Name: "database", Label: "Database", Required: true},
			{Name: "user", Label: "User", Required: true},
			{Name: "password", Label: "Password", Required: true, Secret: true},
			{Name: "schema", Label: "Schema", Default: "public"},
			{Name: "table_name", Label: "Table name", Default: "events"},
		},
	})
	r.Register(ServiceDefinition{
		ServiceName: "Redshift",
		Fields: []Field{
			{Name: "host", Label: "Host", Required: true},
			{Name: "port", Label: "Port", Default: "5439"},
			{Name: "database", Label: "Database", Required: true},
			{Name: "user", Label: "User", Required: true},
			{Name: "password", Label: "Password", Required: true, Secret: true},
			{Name: "schema", Label: "Schema", Default: "public"},
			{Name: "table_name", Label: "Table name", Default: "events"},
		},
	})
	r.Register(ServiceDefinition{
		ServiceName: "Snowflake",
		Fields: []Field{
			{Name: "account", Label: "Account", Required: true},
			{Name: "database", Label: "Database", Required: true},
			{Name: "warehouse", Label: "Warehouse", Required: true},
			{Name: "user", Label: "User", Required: true},
			{Name: "password", Label: "Password", Secret: true},
			{Name: "schema", Label: "Schema", Default: "PUBLIC"},
			{Name: "table_name", Label: "Table name", Default: "events"},
			{Name: "role", Label: "Role"},
		},
	})
	r.Register(ServiceDefinition{
		ServiceName: "S3",
		Fields: []Field{
			{Name: "bucket_name", Label: "Bucket name", Required: true},
			{Name: "region", Label: "Region", Required: true},
			{Name: "prefix", Label: "Key prefix"},
			{Name: "aws_access_key_id", Label: "AWS access key ID", Required: true},
			{Name: "aws_secret_access_key", Label: "AWS secret access key", Required: true, Secret: true},
			{Name: "compression", Label: "Compression"},
		},
	})
	r.Register(ServiceDefinition{
		ServiceName: "HTTP",
		StaffOnly:   true,
		Fields: []Field{
			{Name: "url", Label: "URL", Required: true},
			{Name: "token", Label: "Token", Required: true, Secret: true},
		},
	})
	return r
}
