package registry

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"sync"

	"github.com/aretw0/schematic/pkg/declare"
	"github.com/aretw0/schematic/pkg/entity"
)

// ErrKindNotFound is returned when a kind has not been registered.
var ErrKindNotFound = errors.New("kind not found")

// ErrDuplicateKind is returned when a kind is registered twice.
var ErrDuplicateKind = errors.New("duplicate kind")

// Child describes a field holding nested entities.
type Child struct {
	Kind string
	Many bool
}

// Kind is a registered schema together with what is known about its nesting.
type Kind struct {
	Schema      *entity.Schema
	Declaration *declare.Declaration // nil for kinds declared in Go
	Children    map[string]Child
}

// Name returns the kind name.
func (k Kind) Name() string { return k.Schema.Kind() }

// FromDeclaration builds a Kind from a declaration document.
func FromDeclaration(decl *declare.Declaration) (Kind, error) {
	schema, err := decl.Schema()
	if err != nil {
		return Kind{}, err
	}
	k := Kind{Schema: schema, Declaration: decl}
	for _, f := range decl.Fields {
		if f.Nested() {
			if k.Children == nil {
				k.Children = make(map[string]Child)
			}
			k.Children[f.Name] = Child{Kind: f.Entity, Many: f.Many}
		}
	}
	return k, nil
}

// Registry manages the available kinds. Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]Kind
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{
		kinds: make(map[string]Kind),
	}
}

// Register adds a kind. Registering the same name twice is an error.
func (r *Registry) Register(k Kind) error {
	if k.Schema == nil {
		return fmt.Errorf("%w: kind without schema", entity.ErrInvalidSchema)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.kinds[k.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateKind, k.Name())
	}
	r.kinds[k.Name()] = k
	return nil
}

// RegisterSchema registers a Go-declared schema without nested children.
func (r *Registry) RegisterSchema(s *entity.Schema) error {
	return r.Register(Kind{Schema: s})
}

// RegisterDeclarations registers every declaration and then checks that all
// nested kinds resolve.
func (r *Registry) RegisterDeclarations(decls ...*declare.Declaration) error {
	for _, d := range decls {
		k, err := FromDeclaration(d)
		if err != nil {
			return err
		}
		if err := r.Register(k); err != nil {
			return err
		}
	}
	return r.CheckReferences()
}

// CheckReferences reports nested kinds that are not registered.
func (r *Registry) CheckReferences() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var errs []error
	for _, name := range slices.Sorted(maps.Keys(r.kinds)) {
		k := r.kinds[name]
		for _, field := range slices.Sorted(maps.Keys(k.Children)) {
			child := k.Children[field]
			if _, ok := r.kinds[child.Kind]; !ok {
				errs = append(errs, fmt.Errorf("%s.%s: %w: %s", name, field, ErrKindNotFound, child.Kind))
			}
		}
	}
	return errors.Join(errs...)
}

// Lookup returns a registered kind.
func (r *Registry) Lookup(name string) (Kind, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.kinds[name]
	if !ok {
		return Kind{}, fmt.Errorf("%w: %s", ErrKindNotFound, name)
	}
	return k, nil
}

// Kinds returns the registered kind names, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.kinds))
}

// Build creates an entity of the named kind. Plain maps found in nested
// fields (and lists of them) are built into child entities first, so that
// Fetch on the result yields the same shape as data.
func (r *Registry) Build(name string, data map[string]any, opts ...entity.Option) (*entity.Entity, error) {
	k, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	if len(k.Children) == 0 || data == nil {
		return entity.New(k.Schema, data, opts...), nil
	}

	resolved := maps.Clone(data)
	for field, child := range k.Children {
		raw, ok := resolved[field]
		if !ok || raw == nil {
			continue
		}
		built, err := r.buildChild(child, raw, opts)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", name, field, err)
		}
		resolved[field] = built
	}
	return entity.New(k.Schema, resolved, opts...), nil
}

func (r *Registry) buildChild(child Child, raw any, opts []entity.Option) (any, error) {
	if !child.Many {
		return r.buildOne(child.Kind, raw, opts)
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		// Left as is; the field validator reports the mismatch.
		return raw, nil
	}
	out := make([]any, rv.Len())
	for i := range out {
		built, err := r.buildOne(child.Kind, rv.Index(i).Interface(), opts)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out[i] = built
	}
	return out, nil
}

func (r *Registry) buildOne(kind string, raw any, opts []entity.Option) (any, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return raw, nil
	}
	return r.Build(kind, m, opts...)
}
