package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"phone": {"type": "string"}
	}
}`

func TestValidateDocument_Valid(t *testing.T) {
	err := ValidateDocument(testSchema, map[string]any{"name": "John", "phone": "123"})
	assert.NoError(t, err)
}

func TestValidateDocument_MissingFieldsAllowed(t *testing.T) {
	err := ValidateDocument(testSchema, map[string]any{})
	assert.NoError(t, err)
}

func TestValidateDocument_WrongType(t *testing.T) {
	err := ValidateDocument(testSchema, map[string]any{"name": 42.0, "phone": true})
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
	require.Len(t, validationErr.Errors, 2)

	byField := make(map[string]FieldError)
	for _, fe := range validationErr.Errors {
		byField[fe.Field] = fe
	}
	assert.Equal(t, "invalid_type", byField["name"].Type)
	assert.Contains(t, []string{"integer", "number"}, byField["name"].Given)
	assert.Equal(t, "boolean", byField["phone"].Given)
	assert.Contains(t, validationErr.Error(), "validation failed")
}

func TestValidateDocument_RootTypeMismatch(t *testing.T) {
	err := ValidateDocument(testSchema, []any{"not", "an", "object"})
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, RootField, validationErr.Errors[0].Field)
	assert.Equal(t, "array", validationErr.Errors[0].Given)
}

func TestValidateDocument_MalformedSchema(t *testing.T) {
	err := ValidateDocument(`{"type": 12}`, map[string]any{})
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, loadErr.Error(), "failed to load schema")
}

func TestValidateDocument(t *testing.T) {
	assert.NoError(t, ValidateDocument(testSchema, map[string]any{"name": "John"}))

	err := ValidateDocument(testSchema, map[string]any{"name": 1.5})
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "name", validationErr.Errors[0].Field)
	assert.Contains(t, []string{"integer", "number"}, validationErr.Errors[0].Given)
}
