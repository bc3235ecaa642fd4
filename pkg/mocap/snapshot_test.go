package mocap

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

// testSnapshot builds a 49-joint snapshot with the given shoulder and wrist.
func testSnapshot(shoulder, wrist [3]float64) Snapshot {
	joints := make([][]float64, 49)
	for i := range joints {
		joints[i] = []float64{float64(i), -float64(i), 0.5}
	}
	joints[33] = shoulder[:]
	joints[31] = wrist[:]
	return Snapshot{
		ImagePath:   "frame.jpg",
		DemoType:    "frame",
		Predictions: []Prediction{{JointsVis: joints}},
	}
}

func writeJSON(t *testing.T, dir, name string, s Snapshot) string {
	t.Helper()
	data, err := json.Marshal(s)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func writeYAML(t *testing.T, dir, name string, s Snapshot) string {
	t.Helper()
	data, err := yaml.Marshal(s)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"a.json", FormatJSON, false},
		{"a.JSON", FormatJSON, false},
		{"a.yaml", FormatYAML, false},
		{"a.yml", FormatYAML, false},
		{"a.pkl", "", true},
		{"a", "", true},
	}

	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if tt.wantErr {
			assert.Error(t, err, tt.path)
			continue
		}
		assert.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}

func TestSnapshot_Offset(t *testing.T) {
	s := testSnapshot([3]float64{1, 2, 3}, [3]float64{1.5, 4, 2.25})

	got, err := s.Offset()
	require.NoError(t, err)
	if diff := cmp.Diff(r3.Vec{X: 0.5, Y: 2, Z: -0.75}, got); diff != "" {
		t.Errorf("Offset() mismatch (-want +got):\n%s", diff)
	}
}

func TestToControlSpace(t *testing.T) {
	got := ToControlSpace(r3.Vec{X: 1, Y: 2, Z: 3})
	assert.Equal(t, r3.Vec{X: 2, Y: 3, Z: 1}, got)
}

func TestDecodeSnapshot_JSON(t *testing.T) {
	in := `{"pred_output_list":[{"pred_joints_vis":[` +
		strings.Repeat("[0,0,0],", 31) +
		`[4,5,6],[0,0,0],[1,1,1]` +
		`]}]}`

	s, err := DecodeSnapshot(strings.NewReader(in), FormatJSON)
	require.NoError(t, err)

	wrist, err := s.Landmark(RightWrist)
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{X: 4, Y: 5, Z: 6}, wrist)

	shoulder, err := s.Landmark(RightShoulder)
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{X: 1, Y: 1, Z: 1}, shoulder)
}

func TestDecodeSnapshot_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
	}{
		{"malformed json", `{"pred_output_list":`, FormatJSON},
		{"empty predictions", `{"pred_output_list":[]}`, FormatJSON},
		{"missing predictions", `{"image_path":"x.jpg"}`, FormatJSON},
		{"too few joints", `{"pred_output_list":[{"pred_joints_vis":[[0,0,0]]}]}`, FormatJSON},
		{"short joint", `{"pred_output_list":[{"pred_joints_vis":[` + strings.Repeat("[0,0],", 33) + `[0,0]]}]}`, FormatJSON},
		{"malformed yaml", "pred_output_list: [", FormatYAML},
		{"unknown format", `{}`, Format("pickle")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSnapshot(strings.NewReader(tt.input), tt.format)
			assert.Error(t, err)
		})
	}
}

func TestDecodeSnapshot_EmptyPredictions(t *testing.T) {
	_, err := DecodeSnapshot(strings.NewReader(`{"pred_output_list":[]}`), FormatJSON)
	assert.ErrorIs(t, err, ErrNoPrediction)
}

func TestLoadSnapshot_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, "000.yaml", testSnapshot([3]float64{0, 0, 0}, [3]float64{1, 2, 3}))

	s, err := LoadSnapshot(path)
	require.NoError(t, err)

	got, err := s.Offset()
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{X: 1, Y: 2, Z: 3}, got)
	assert.Equal(t, "frame.jpg", s.ImagePath)
}

func TestLoadSnapshot_Missing(t *testing.T) {
	_, err := LoadSnapshot(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
