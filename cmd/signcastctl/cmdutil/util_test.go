package cmdutil

import (
	"bytes"
	"testing"

	"github.com/signcast/signcast/internal/cli/output"
)

func TestBoolToYesNo(t *testing.T) {
	tests := []struct {
		input    bool
		expected string
	}{
		{true, "yes"},
		{false, "no"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := BoolToYesNo(tt.input)
			if result != tt.expected {
				t.Errorf("BoolToYesNo(%v) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestEmptyOr(t *testing.T) {
	if got := EmptyOr("", "-"); got != "-" {
		t.Errorf("EmptyOr(\"\", \"-\") = %q, want %q", got, "-")
	}
	if got := EmptyOr("value", "-"); got != "value" {
		t.Errorf("EmptyOr(\"value\", \"-\") = %q, want %q", got, "value")
	}
}

func TestFormatGB(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "0.00 GB"},
		{1.5, "1.50 GB"},
		{2.345, "2.35 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormatGB(tt.input); got != tt.expected {
				t.Errorf("FormatGB(%v) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// testTableRenderer implements output.TableRenderer for testing
type testTableRenderer struct {
	headers []string
	rows    [][]string
}

func (t testTableRenderer) Headers() []string {
	return t.headers
}

func (t testTableRenderer) Rows() [][]string {
	return t.rows
}

func TestPrintOutput_JSON(t *testing.T) {
	Flags.Output = "json"

	var buf bytes.Buffer
	data := []string{"foo", "bar"}
	renderer := testTableRenderer{
		headers: []string{"NAME"},
		rows:    [][]string{{"foo"}, {"bar"}},
	}

	err := PrintOutput(&buf, data, false, "No items", renderer)
	if err != nil {
		t.Fatalf("PrintOutput() error = %v", err)
	}

	if !bytes.Contains(buf.Bytes(), []byte("foo")) || !bytes.Contains(buf.Bytes(), []byte("bar")) {
		t.Errorf("PrintOutput() = %q, missing expected data", buf.String())
	}
}

func TestPrintOutput_YAML(t *testing.T) {
	Flags.Output = "yaml"

	var buf bytes.Buffer
	data := []string{"foo", "bar"}
	renderer := testTableRenderer{
		headers: []string{"NAME"},
		rows:    [][]string{{"foo"}, {"bar"}},
	}

	err := PrintOutput(&buf, data, false, "No items", renderer)
	if err != nil {
		t.Fatalf("PrintOutput() error = %v", err)
	}

	expected := "- foo\n- bar\n"
	if buf.String() != expected {
		t.Errorf("PrintOutput() = %q, want %q", buf.String(), expected)
	}
}

func TestPrintOutput_Table_Empty(t *testing.T) {
	Flags.Output = "table"

	var buf bytes.Buffer
	renderer := testTableRenderer{
		headers: []string{"NAME"},
		rows:    [][]string{},
	}

	err := PrintOutput(&buf, []string{}, true, "No items found.", renderer)
	if err != nil {
		t.Fatalf("PrintOutput() error = %v", err)
	}

	expected := "No items found.\n"
	if buf.String() != expected {
		t.Errorf("PrintOutput() = %q, want %q", buf.String(), expected)
	}
}

func TestPrintOutput_Table_WithData(t *testing.T) {
	Flags.Output = "table"

	var buf bytes.Buffer
	data := []string{"foo", "bar"}
	renderer := testTableRenderer{
		headers: []string{"NAME"},
		rows:    [][]string{{"foo"}, {"bar"}},
	}

	err := PrintOutput(&buf, data, false, "No items found.", renderer)
	if err != nil {
		t.Fatalf("PrintOutput() error = %v", err)
	}

	if buf.Len() == 0 {
		t.Errorf("PrintOutput() returned empty output for table")
	}
}

func TestGetOutputFormatParsed(t *testing.T) {
	tests := []struct {
		flagValue string
		expected  output.Format
		wantErr   bool
	}{
		{"table", output.FormatTable, false},
		{"json", output.FormatJSON, false},
		{"yaml", output.FormatYAML, false},
		{"invalid", output.FormatTable, true},
	}

	for _, tt := range tests {
		t.Run(tt.flagValue, func(t *testing.T) {
			Flags.Output = tt.flagValue
			format, err := GetOutputFormatParsed()
			if tt.wantErr {
				if err == nil {
					t.Errorf("GetOutputFormatParsed() expected error for %q", tt.flagValue)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetOutputFormatParsed() error = %v", err)
			}
			if format != tt.expected {
				t.Errorf("GetOutputFormatParsed() = %v, want %v", format, tt.expected)
			}
		})
	}
}

func TestGetTenantID_FlagWins(t *testing.T) {
	orig := Flags.TenantID
	defer func() { Flags.TenantID = orig }()

	Flags.TenantID = "tenant-from-flag"
	if got := GetTenantID(); got != "tenant-from-flag" {
		t.Errorf("GetTenantID() = %q, want %q", got, "tenant-from-flag")
	}
}
