package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintTable_Basic(t *testing.T) {
	var buf bytes.Buffer
	columns := []string{"email", "status"}
	rows := [][]string{
		{"alice@example.com", "active"},
		{"bob@example.com", "locked"},
	}

	printTable(&buf, columns, rows)
	output := buf.String()
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")

	require.Len(t, lines, 3, "expected header + 2 data rows")

	// Headers should be uppercased.
	assert.Contains(t, lines[0], "EMAIL")
	assert.Contains(t, lines[0], "STATUS")

	assert.Contains(t, lines[1], "alice@example.com")
	assert.Contains(t, lines[1], "active")
	assert.Contains(t, lines[2], "bob@example.com")
	assert.Contains(t, lines[2], "locked")
}

func TestPrintTable_EmptyColumns(t *testing.T) {
	var buf bytes.Buffer

	printTable(&buf, []string{}, [][]string{{"a"}})

	assert.Empty(t, buf.String(), "empty columns should produce no output")
}

func TestPrintTable_EmptyRows(t *testing.T) {
	var buf bytes.Buffer
	columns := []string{"email"}

	printTable(&buf, columns, nil)
	output := buf.String()
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")

	require.Len(t, lines, 1, "only the header line should be present")
	assert.Contains(t, lines[0], "EMAIL")
}

func TestPrintTable_ColumnSeparator(t *testing.T) {
	var buf bytes.Buffer
	columns := []string{"a", "b"}
	rows := [][]string{{"1", "2"}}

	printTable(&buf, columns, rows)
	output := buf.String()
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")

	require.Len(t, lines, 2)
	assert.Equal(t, "A  B", lines[0], "columns should be separated by two spaces")
	assert.Equal(t, "1  2", lines[1])
}

func TestPrintTable_PadsToWidestCell(t *testing.T) {
	var buf bytes.Buffer
	columns := []string{"email", "id"}
	rows := [][]string{
		{"a@b.co", "1"},
		{"longer.address@example.com", "2"},
	}

	printTable(&buf, columns, rows)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	require.Len(t, lines, 3)
	// The id column starts at the same offset on every line.
	offset := strings.Index(lines[0], "ID")
	assert.Equal(t, offset, strings.Index(lines[1], "1"))
	assert.Equal(t, offset, strings.Index(lines[2], "2"))
}

func TestPrintJSON_Basic(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]string{"hello": "world"}

	err := printJSON(&buf, data)
	require.NoError(t, err)

	var parsed map[string]string
	err = json.Unmarshal(buf.Bytes(), &parsed)
	require.NoError(t, err)
	assert.Equal(t, "world", parsed["hello"])

	// Should be indented (contains newline + spaces).
	assert.Contains(t, buf.String(), "\n  ")
}

func TestPrintJSON_NilInput(t *testing.T) {
	var buf bytes.Buffer

	err := printJSON(&buf, nil)
	require.NoError(t, err)

	assert.Equal(t, "null\n", buf.String())
}

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		wantErr bool
	}{
		{name: "empty ok", output: "", wantErr: false},
		{name: "table ok", output: "table", wantErr: false},
		{name: "json ok", output: "json", wantErr: false},
		{name: "yaml rejected", output: "yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateOutputFormat(tt.output)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
