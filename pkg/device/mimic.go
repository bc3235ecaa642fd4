package device

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gwillem/mimic/pkg/mocap"
)

// ErrIndexOutOfRange is returned when a replay is polled past its last frame.
var ErrIndexOutOfRange = errors.New("index out of range")

// homeRotation points the end effector down with the gripper facing forward.
var homeRotation = []float64{
	-1, 0, 0,
	0, 1, 0,
	0, 0, -1,
}

// Mimic replays recorded human arm motion as device input.
//
// Each frame's command is the right wrist offset from the right shoulder,
// converted to robot axes. Rotation, grasp and reset never change.
// A Mimic is not safe for concurrent use.
type Mimic struct {
	positions []r3.Vec
	cursor    int

	rotation     *mat.Dense
	rawDRotation r3.Vec
	grasp        bool
	reset        int
	enabled      bool

	posSensitivity float64
	rotSensitivity float64

	pattern  string
	progress mocap.ProgressFunc
}

// Option configures a Mimic.
type Option func(*Mimic)

// WithPosSensitivity sets the position scaling. It is stored but not applied.
func WithPosSensitivity(s float64) Option {
	return func(m *Mimic) { m.posSensitivity = s }
}

// WithRotSensitivity sets the rotation scaling. It is stored but not applied.
func WithRotSensitivity(s float64) Option {
	return func(m *Mimic) { m.rotSensitivity = s }
}

// WithPattern restricts loading to file names matching a glob.
func WithPattern(pattern string) Option {
	return func(m *Mimic) { m.pattern = pattern }
}

// WithProgress reports each loaded snapshot.
func WithProgress(fn mocap.ProgressFunc) Option {
	return func(m *Mimic) { m.progress = fn }
}

// NewMimic loads every snapshot in dir and prepares them for replay.
func NewMimic(dir string, opts ...Option) (*Mimic, error) {
	m := newMimic(opts)

	positions, err := mocap.LoadPositions(dir, m.pattern, m.progress)
	if err != nil {
		return nil, fmt.Errorf("load mimic positions: %w", err)
	}
	m.positions = positions

	return m, nil
}

// NewMimicFromPositions creates a Mimic that replays control-space offsets
// already in memory. The slice is copied.
func NewMimicFromPositions(positions []r3.Vec, opts ...Option) *Mimic {
	m := newMimic(opts)
	m.positions = append([]r3.Vec(nil), positions...)
	return m
}

func newMimic(opts []Option) *Mimic {
	m := &Mimic{
		posSensitivity: 1.0,
		rotSensitivity: 1.0,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.resetInternalState()
	return m
}

// resetInternalState restores everything except the reset signal.
func (m *Mimic) resetInternalState() {
	m.rotation = mat.NewDense(3, 3, append([]float64(nil), homeRotation...))
	m.rawDRotation = r3.Vec{}
	m.grasp = false
	m.cursor = 0
}

// StartControl resets the replay to the first frame and enables the device.
func (m *Mimic) StartControl() {
	m.resetInternalState()
	m.reset = 0
	m.enabled = true
}

// GetControllerState returns the command for the current frame and moves to
// the next one. Polling past the last frame returns ErrIndexOutOfRange.
func (m *Mimic) GetControllerState() (ControllerState, error) {
	if m.cursor >= len(m.positions) {
		return ControllerState{}, fmt.Errorf("mimic frame %d of %d: %w", m.cursor, len(m.positions), ErrIndexOutOfRange)
	}

	dpos := m.positions[m.cursor]
	m.cursor++

	grasp := 0
	if m.grasp {
		grasp = 1
	}

	return ControllerState{
		DPos:         dpos,
		Rotation:     mat.DenseCopyOf(m.rotation),
		RawDRotation: m.rawDRotation,
		Grasp:        grasp,
		Reset:        m.reset,
	}, nil
}

// Len returns the number of recorded frames.
func (m *Mimic) Len() int {
	return len(m.positions)
}

// Cursor returns the index of the next frame to replay.
func (m *Mimic) Cursor() int {
	return m.cursor
}

// Enabled reports whether StartControl has been called.
func (m *Mimic) Enabled() bool {
	return m.enabled
}

// PosSensitivity returns the configured position scaling.
func (m *Mimic) PosSensitivity() float64 {
	return m.posSensitivity
}

// RotSensitivity returns the configured rotation scaling.
func (m *Mimic) RotSensitivity() float64 {
	return m.rotSensitivity
}

var _ Device = (*Mimic)(nil)
