package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validRecordJSON = `{
  "name": "Jane Smith",
  "email": "Jane@Example.com",
  "countryCode": "US",
  "phone": "(555) 123-4567",
  "position": "Software Engineer",
  "description": "Builds things."
}`

const invalidRecordJSON = `{
  "name": "J",
  "email": "not-an-email",
  "countryCode": "IN",
  "phone": "123",
  "position": "Engineer",
  "description": ""
}`

func TestValidateCommand(t *testing.T) {
	tests := []struct {
		name        string
		stdin       string
		args        []string
		wantErr     string
		wantContain []string
	}{
		{
			name:        "valid file",
			args:        []string{"validate", "--in", writeFile(t, "valid.json", validRecordJSON)},
			wantContain: []string{"All fields are valid", "jane@example.com"},
		},
		{
			name:        "valid stdin",
			stdin:       validRecordJSON,
			args:        []string{"validate"},
			wantContain: []string{"All fields are valid"},
		},
		{
			name:        "invalid record",
			stdin:       invalidRecordJSON,
			args:        []string{"validate", "-i", "-"},
			wantErr:     "validation found 3 error(s)",
			wantContain: []string{"VALIDATION FAILED", "Name must be at least 2 characters long", "[phone_too_short]"},
		},
		{
			name:        "malformed JSON",
			stdin:       `{"name":`,
			args:        []string{"validate"},
			wantErr:     "validation found 1 error(s)",
			wantContain: []string{"general: Validation failed"},
		},
		{
			name:    "missing file",
			args:    []string{"validate", "--in", "/nonexistent/record.json"},
			wantErr: "input file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := executeCommand(t, tt.stdin, tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err, output)
			}
			for _, s := range tt.wantContain {
				assert.Contains(t, output, s)
			}
		})
	}
}

func TestValidateCommand_JSON(t *testing.T) {
	output, err := executeCommand(t, invalidRecordJSON, "validate", "--json")
	require.Error(t, err)

	var result struct {
		Valid  bool              `json:"valid"`
		Errors map[string]string `json:"errors"`
		Codes  map[string]string `json:"codes"`
	}
	// The error line follows the JSON document.
	dec := json.NewDecoder(strings.NewReader(output))
	require.NoError(t, dec.Decode(&result))

	assert.False(t, result.Valid)
	assert.Equal(t, "Invalid phone number for selected country", result.Errors["phone"])
	assert.Equal(t, "phone_too_short", result.Codes["phone"])
	assert.Contains(t, result.Errors, "email")
	assert.Contains(t, result.Errors, "name")
}

func TestValidateFieldCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
		wantOut string
	}{
		{
			name:    "valid name",
			args:    []string{"validate-field", "name", "Jane Smith"},
			wantOut: "name: ok",
		},
		{
			name:    "phone for default country",
			args:    []string{"validate-field", "phone", "12345"},
			wantErr: "Phone number must be at least 10 digits for India",
		},
		{
			name:    "phone for another country",
			args:    []string{"validate-field", "phone", "91234567", "--country", "SG"},
			wantOut: "phone: ok",
		},
		{
			name:    "unknown field",
			args:    []string{"validate-field", "age", "42"},
			wantErr: `unknown field "age"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := executeCommand(t, "", tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, output, tt.wantOut)
		})
	}
}

func TestValidateCommand_Binary_ExitCode(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()

	valid := filepath.Join(tmpDir, "valid.json")
	invalid := filepath.Join(tmpDir, "invalid.json")
	require.NoError(t, os.WriteFile(valid, []byte(validRecordJSON), 0644))
	require.NoError(t, os.WriteFile(invalid, []byte(invalidRecordJSON), 0644))

	cmd := exec.Command(binaryPath, "validate", "--in", valid)
	output, err := cmd.CombinedOutput()
	assert.NoError(t, err, string(output))

	cmd = exec.Command(binaryPath, "validate", "--in", invalid)
	output, err = cmd.CombinedOutput()
	assert.Error(t, err)
	assert.Contains(t, string(output), "validation found 3 error(s)")
}
