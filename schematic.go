package schematic

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/schematic/pkg/declare"
	"github.com/aretw0/schematic/pkg/entity"
	"github.com/aretw0/schematic/pkg/registry"
	"github.com/getkin/kin-openapi/openapi3"
)

// Catalog is the high-level entry point of the library.
// It owns a registry of kinds and builds validated entities from plain data.
type Catalog struct {
	registry *registry.Registry
	hooks    entity.Hooks
	logger   *slog.Logger
	mode     entity.DefaultMode
}

// Option defines a functional option for configuring the Catalog.
type Option func(*Catalog)

// WithRegistry uses r instead of a fresh registry. Kinds already registered
// in r (for instance Go-declared schemas) stay available.
func WithRegistry(r *registry.Registry) Option {
	return func(c *Catalog) {
		c.registry = r
	}
}

// WithHooks registers observability hooks on every entity the catalog builds.
func WithHooks(hooks entity.Hooks) Option {
	return func(c *Catalog) {
		c.hooks = c.hooks.Chain(hooks)
	}
}

// WithLogger sets a custom structured logger for the catalog and its entities.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// WithDefaultMode sets how built entities merge defaults.
func WithDefaultMode(mode entity.DefaultMode) Option {
	return func(c *Catalog) {
		c.mode = mode
	}
}

// New initializes a Catalog with every declaration found in dir.
// An empty dir loads nothing, which is useful together with WithRegistry.
func New(dir string, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		registry: registry.New(),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}

	if dir == "" {
		return c, nil
	}

	decls, err := declare.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load declarations: %w", err)
	}
	if err := c.registry.RegisterDeclarations(decls...); err != nil {
		return nil, fmt.Errorf("failed to register declarations: %w", err)
	}
	c.logger.Info("catalog loaded", "dir", dir, "kinds", c.registry.Kinds())
	return c, nil
}

// Registry returns the underlying registry.
func (c *Catalog) Registry() *registry.Registry { return c.registry }

// Kinds returns the registered kind names, sorted.
func (c *Catalog) Kinds() []string { return c.registry.Kinds() }

// Describe returns the declaration of a kind. Kinds declared in Go are
// described by field names and defaults only.
func (c *Catalog) Describe(kind string) (*declare.Declaration, error) {
	k, err := c.registry.Lookup(kind)
	if err != nil {
		return nil, err
	}
	if k.Declaration != nil {
		return k.Declaration, nil
	}

	decl := &declare.Declaration{Kind: k.Name()}
	for _, name := range k.Schema.Fields() {
		f := declare.Field{Name: name}
		f.Default, _ = k.Schema.Default(name)
		if child, ok := k.Children[name]; ok {
			f.Entity, f.Many = child.Kind, child.Many
		}
		decl.Fields = append(decl.Fields, f)
	}
	return decl, nil
}

// OpenAPI returns the OpenAPI 3 schema component of a kind.
func (c *Catalog) OpenAPI(kind string) (*openapi3.Schema, error) {
	decl, err := c.Describe(kind)
	if err != nil {
		return nil, err
	}
	return decl.OpenAPI(), nil
}

// Build creates an entity of kind from plain data, nested entities included.
func (c *Catalog) Build(kind string, data map[string]any) (*entity.Entity, error) {
	return c.registry.Build(kind, data,
		entity.WithHooks(c.hooks),
		entity.WithLogger(c.logger),
		entity.WithDefaultMode(c.mode),
	)
}

// Report is the outcome of validating plain data against a kind.
type Report struct {
	Kind   string         `json:"kind"`
	Data   map[string]any `json:"data"`
	Errors entity.Errors  `json:"errors"`
	Valid  bool           `json:"valid"`
}

// Validate builds an entity of kind from data and reports its resolved data
// and validation state. Only the top-level entity's errors are reported.
func (c *Catalog) Validate(kind string, data map[string]any) (Report, error) {
	e, err := c.Build(kind, data)
	if err != nil {
		return Report{}, err
	}
	report := NewReport(e)
	c.logger.Debug("validated", "kind", kind, "valid", report.Valid)
	return report, nil
}

// NewReport snapshots an entity.
func NewReport(e *entity.Entity) Report {
	return Report{
		Kind:   e.Kind(),
		Data:   e.Fetch(),
		Errors: e.Errors(),
		Valid:  e.Valid(),
	}
}
