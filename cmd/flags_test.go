package cmd

import (
	"testing"

	"github.com/gnames/ifcdb/pkg/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want outFormat
		err  bool
	}{
		{"text", formatText, false},
		{"JSON", formatJSON, false},
		{" yaml ", formatYAML, false},
		{"csv", "", true},
	}

	for _, v := range tests {
		t.Run(v.in, func(t *testing.T) {
			f, err := parseFormat(v.in)
			if v.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, v.want, f)
		})
	}
}

func TestEncode(t *testing.T) {
	id := uuid.MustParse("0b6f3a8e-3c1f-4f57-9a55-4f7d1ad0e4a2")
	res := []*model.ImportResult{{ProjectID: id, ProjectName: "Plant", ElementCount: 3}}

	out, err := encode(formatJSON, res)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"projectId": "0b6f3a8e-3c1f-4f57-9a55-4f7d1ad0e4a2"`)
	assert.Contains(t, string(out), `"elementCount": 3`)

	out, err = encode(formatYAML, res)
	require.NoError(t, err)
	var back []map[string]any
	require.NoError(t, yaml.Unmarshal(out, &back))
	require.Len(t, back, 1)
	assert.Equal(t, "Plant", back[0]["project_name"])
	assert.Equal(t, 3, back[0]["element_count"])

	_, err = encode(formatText, res)
	assert.Error(t, err)
}
