package mocap

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

// Format is the serialization of a snapshot file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrNoPrediction is returned when a snapshot has an empty prediction list.
var ErrNoPrediction = errors.New("snapshot has no predictions")

// Prediction is one body estimate within a snapshot.
type Prediction struct {
	JointsVis   [][]float64 `json:"pred_joints_vis" yaml:"pred_joints_vis"`
	Camera      []float64   `json:"pred_camera,omitempty" yaml:"pred_camera,omitempty"`
	BBoxTopLeft []float64   `json:"bbox_top_left,omitempty" yaml:"bbox_top_left,omitempty"`
}

// Snapshot is a single motion-capture frame as written by the pose estimator.
type Snapshot struct {
	ImagePath   string       `json:"image_path,omitempty" yaml:"image_path,omitempty"`
	DemoType    string       `json:"demo_type,omitempty" yaml:"demo_type,omitempty"`
	Predictions []Prediction `json:"pred_output_list" yaml:"pred_output_list"`
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported snapshot extension %q", filepath.Ext(path))
	}
}

// DecodeSnapshot reads a snapshot in the given format and checks that the
// landmarks used for replay are present.
func DecodeSnapshot(r io.Reader, format Format) (*Snapshot, error) {
	var s Snapshot
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&s); err != nil {
			return nil, fmt.Errorf("parse snapshot JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&s); err != nil {
			return nil, fmt.Errorf("parse snapshot YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported snapshot format %q", format)
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadSnapshot loads a snapshot from a file.
func LoadSnapshot(path string) (*Snapshot, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	s, err := DecodeSnapshot(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return s, nil
}

func (s *Snapshot) validate() error {
	if len(s.Predictions) == 0 {
		return ErrNoPrediction
	}
	for _, l := range AllLandmarks() {
		if _, err := s.Landmark(l); err != nil {
			return err
		}
	}
	return nil
}

// Landmark returns the position of a landmark from the first prediction.
func (s *Snapshot) Landmark(l Landmark) (r3.Vec, error) {
	if len(s.Predictions) == 0 {
		return r3.Vec{}, ErrNoPrediction
	}
	idx, ok := l.Index()
	if !ok {
		return r3.Vec{}, fmt.Errorf("unknown landmark %q", l)
	}

	joints := s.Predictions[0].JointsVis
	if idx >= len(joints) {
		return r3.Vec{}, fmt.Errorf("landmark %s: joint %d missing (have %d joints)", l, idx, len(joints))
	}
	p := joints[idx]
	if len(p) < 3 {
		return r3.Vec{}, fmt.Errorf("landmark %s: joint %d has %d coordinates, want 3", l, idx, len(p))
	}
	return r3.Vec{X: p[0], Y: p[1], Z: p[2]}, nil
}

// Offset returns the right wrist position relative to the right shoulder,
// in capture space.
func (s *Snapshot) Offset() (r3.Vec, error) {
	shoulder, err := s.Landmark(RightShoulder)
	if err != nil {
		return r3.Vec{}, err
	}
	wrist, err := s.Landmark(RightWrist)
	if err != nil {
		return r3.Vec{}, err
	}
	return r3.Sub(wrist, shoulder), nil
}

// ToControlSpace reorders a capture-space vector into robot control axes.
//
// Capture x runs left to right, y down to up and z toward the scene. The
// robot takes x forward, y left and z up, so (a, b, c) becomes (b, c, a).
func ToControlSpace(v r3.Vec) r3.Vec {
	return r3.Vec{X: v.Y, Y: v.Z, Z: v.X}
}
