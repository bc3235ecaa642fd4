// Package device provides input devices that feed commands to a robot control loop.
package device

import (
	"encoding/json"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Device is polled once per control step by the control loop.
type Device interface {
	// StartControl must be called before the first poll.
	StartControl()
	// GetControllerState returns the command for the current step.
	GetControllerState() (ControllerState, error)
}

// ControllerState is the command produced by a device for one control step.
type ControllerState struct {
	DPos         r3.Vec     // position delta
	Rotation     *mat.Dense // 3x3 absolute orientation
	RawDRotation r3.Vec     // roll, pitch, yaw delta
	Grasp        int        // 1 closes the gripper
	Reset        int        // 1 requests an episode reset
}

type controllerStateJSON struct {
	DPos         [3]float64    `json:"dpos"`
	Rotation     [3][3]float64 `json:"rotation"`
	RawDRotation [3]float64    `json:"raw_drotation"`
	Grasp        int           `json:"grasp"`
	Reset        int           `json:"reset"`
}

// MarshalJSON encodes the state with the field names used by the control framework.
func (s ControllerState) MarshalJSON() ([]byte, error) {
	out := controllerStateJSON{
		DPos:         vecArray(s.DPos),
		RawDRotation: vecArray(s.RawDRotation),
		Grasp:        s.Grasp,
		Reset:        s.Reset,
	}
	if s.Rotation != nil {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				out.Rotation[i][j] = s.Rotation.At(i, j)
			}
		}
	}
	return json.Marshal(out)
}

func vecArray(v r3.Vec) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
