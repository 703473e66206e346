package annotations

import (
	"fmt"
	"sort"
	"sync"
)

// AnnotationRegistry resolves marker names to their schemas
type AnnotationRegistry interface {
	// Register adds a schema under its type and marker name
	Register(schema AnnotationSchema) error

	// Schema returns the schema of a marker type
	Schema(annotationType AnnotationType) (AnnotationSchema, error)

	// Lookup returns the schema of the marker spelled name after //kryolite:
	Lookup(name string) (AnnotationSchema, bool)

	// Types returns the registered marker types in declaration order
	Types() []AnnotationType
}

type registry struct {
	mu     sync.RWMutex
	byType map[AnnotationType]AnnotationSchema
	byName map[string]AnnotationType
}

// NewRegistry creates an empty registry
func NewRegistry() AnnotationRegistry {
	return &registry{
		byType: make(map[AnnotationType]AnnotationSchema),
		byName: make(map[string]AnnotationType),
	}
}

var (
	defaultRegistry     AnnotationRegistry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the shared registry of the four kryolite markers
func DefaultRegistry() AnnotationRegistry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
		if err := RegisterBuiltinSchemas(defaultRegistry); err != nil {
			panic(fmt.Sprintf("kryogen: builtin marker schemas are invalid: %v", err))
		}
	})
	return defaultRegistry
}

func (r *registry) Register(schema AnnotationSchema) error {
	name := schema.Type.String()
	if name == "unknown" {
		return fmt.Errorf("marker type %d has no name", schema.Type)
	}
	if err := checkSchema(schema); err != nil {
		return fmt.Errorf("marker %s: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byType[schema.Type]; taken {
		return fmt.Errorf("marker %s is registered twice", name)
	}
	r.byType[schema.Type] = schema
	r.byName[name] = schema.Type
	return nil
}

func (r *registry) Schema(annotationType AnnotationType) (AnnotationSchema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schema, ok := r.byType[annotationType]
	if !ok {
		return AnnotationSchema{}, fmt.Errorf("marker %s is not registered", annotationType)
	}
	return schema, nil
}

func (r *registry) Lookup(name string) (AnnotationSchema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	annotationType, ok := r.byName[name]
	if !ok {
		return AnnotationSchema{}, false
	}
	return r.byType[annotationType], true
}

func (r *registry) Types() []AnnotationType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]AnnotationType, 0, len(r.byType))
	for annotationType := range r.byType {
		types = append(types, annotationType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// checkSchema rejects schemas the marker parser could not apply
func checkSchema(schema AnnotationSchema) error {
	if len(schema.Targets) == 0 {
		return fmt.Errorf("no declaration kind accepts it")
	}
	for name, spec := range schema.Parameters {
		if name == "" {
			return fmt.Errorf("unnamed parameter")
		}
		if spec.Type != StringType && spec.Type != StringSliceType {
			return fmt.Errorf("parameter %s has unsupported type %d", name, spec.Type)
		}
	}
	for _, name := range schema.Positional {
		if _, ok := schema.Parameters[name]; !ok {
			return fmt.Errorf("positional parameter %s is not declared", name)
		}
	}
	return nil
}
