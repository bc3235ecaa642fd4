// Package mocap loads motion-capture snapshots and extracts body landmarks.
package mocap

// Landmark identifies a keypoint in a predicted body pose.
type Landmark string

// Landmarks used for replay.
const (
	RightShoulder Landmark = "right_shoulder"
	RightWrist    Landmark = "right_wrist"
)

// landmarkIndex maps a landmark to its position in pred_joints_vis.
var landmarkIndex = map[Landmark]int{
	RightShoulder: 33,
	RightWrist:    31,
}

// AllLandmarks returns all landmark names in order.
func AllLandmarks() []Landmark {
	return []Landmark{
		RightShoulder,
		RightWrist,
	}
}

// Index returns the joint array index of the landmark.
func (l Landmark) Index() (int, bool) {
	i, ok := landmarkIndex[l]
	return i, ok
}
