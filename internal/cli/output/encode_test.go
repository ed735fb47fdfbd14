package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type encodeFixture struct {
	Name    string `json:"name" yaml:"name"`
	Devices int    `json:"devices" yaml:"devices"`
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	err := PrintJSON(&buf, encodeFixture{Name: "acme", Devices: 3})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"name": "acme"`)
	assert.Contains(t, buf.String(), `"devices": 3`)
}

func TestPrintYAML(t *testing.T) {
	var buf bytes.Buffer
	err := PrintYAML(&buf, encodeFixture{Name: "acme", Devices: 3})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "name: acme")
	assert.Contains(t, buf.String(), "devices: 3")
}

func TestPrintYAML_List(t *testing.T) {
	var buf bytes.Buffer
	err := PrintYAML(&buf, []string{"lobby-screen", "window-display"})
	require.NoError(t, err)

	assert.Equal(t, "- lobby-screen\n- window-display\n", buf.String())
}
