package generator

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// parseSchemaColumns extracts table -> ordered column names from the DDL
// script, ignoring psql meta-command lines and constraint clauses. The loader
// COPYs CSVs positionally, so the headers here must match the table
// definitions column for column.
func parseSchemaColumns(t *testing.T, path string) map[string][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}

	columns := make(map[string][]string)
	var table string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "" || strings.HasPrefix(line, `\`):
			continue
		case strings.HasPrefix(line, "CREATE TABLE "):
			table = strings.Fields(strings.TrimPrefix(line, "CREATE TABLE "))[0]
		case table == "":
			continue
		case strings.HasPrefix(line, ")"):
			table = ""
		case strings.HasPrefix(line, "PRIMARY KEY"):
			continue
		default:
			name := strings.Fields(line)[0]
			columns[table] = append(columns[table], strings.TrimSuffix(name, ","))
		}
	}
	return columns
}

func TestCSVHeadersMatchSchema(t *testing.T) {
	schema := parseSchemaColumns(t, filepath.Join("..", "..", "schema", "ddl.sql"))

	tests := []struct {
		table  string
		header []string
	}{
		{"hospitals", hospitalColumns},
		{"departments", departmentColumns},
		{"providers", providerColumns},
		{"patients", patientColumns},
		{"encounters", encounterColumns},
		{"transactions", transactionColumns},
	}
	if len(schema) != len(tests) {
		t.Errorf("schema defines %d tables, want %d", len(schema), len(tests))
	}
	for _, tc := range tests {
		t.Run(tc.table, func(t *testing.T) {
			got, ok := schema[tc.table]
			if !ok {
				t.Fatalf("table %s not found in schema", tc.table)
			}
			if !reflect.DeepEqual(got, tc.header) {
				t.Errorf("schema columns %v\nwant csv header %v", got, tc.header)
			}
		})
	}
}
