package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, RegisterBuiltinSchemas(registry))

	assert.Equal(t, []AnnotationType{
		SmartContractAnnotation,
		StateAnnotation,
		ExportedAnnotation,
		InterfaceAnnotation,
	}, registry.Types())

	schema, err := registry.Schema(InterfaceAnnotation)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name"}, schema.Positional)
	assert.True(t, schema.Repeatable)
	assert.True(t, schema.AllowsTarget(TypeTarget))
	assert.False(t, schema.AllowsTarget(FuncTarget))

	byName, ok := registry.Lookup("smart_contract")
	require.True(t, ok)
	assert.Equal(t, SmartContractAnnotation, byName.Type)

	_, ok = registry.Lookup("route")
	assert.False(t, ok)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(StateAnnotationSchema))

	err := registry.Register(StateAnnotationSchema)
	assert.EqualError(t, err, "marker state is registered twice")
}

func TestRegistryRejectsInvalidSchemas(t *testing.T) {
	tests := []struct {
		name   string
		schema AnnotationSchema
	}{
		{
			name:   "unnamed type",
			schema: AnnotationSchema{Type: AnnotationType(99), Targets: []TargetKind{TypeTarget}},
		},
		{
			name: "positional without spec",
			schema: AnnotationSchema{
				Type:       ExportedAnnotation,
				Positional: []string{"Name"},
				Targets:    []TargetKind{FuncTarget},
			},
		},
		{
			name:   "no targets",
			schema: AnnotationSchema{Type: ExportedAnnotation},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewRegistry()
			assert.Error(t, registry.Register(tt.schema))
			_, err := registry.Schema(tt.schema.Type)
			assert.Error(t, err)
		})
	}
}

func TestParseAnnotationTypeRoundTrip(t *testing.T) {
	for _, annotationType := range DefaultRegistry().Types() {
		parsed, err := ParseAnnotationType(annotationType.String())
		require.NoError(t, err)
		assert.Equal(t, annotationType, parsed)
	}

	_, err := ParseAnnotationType("route")
	assert.Error(t, err)
}

func TestValidators(t *testing.T) {
	assert.NoError(t, ValidateIdentifier("KRC721"))
	assert.NoError(t, ValidateIdentifier("kryolite.KRC721"))
	assert.Error(t, ValidateIdentifier("a.b.c"))
	assert.Error(t, ValidateIdentifier(42))

	assert.NoError(t, ValidateIdentifierList([]string{"BalanceOf", "OwnerOf"}))
	assert.Error(t, ValidateIdentifierList([]string{}))
	assert.Error(t, ValidateIdentifierList([]string{"Owner-Of"}))
}
