// Package mimic replays recorded human motion as input for robot teleoperation.
//
// A recording is a directory of per-frame pose snapshots written by a
// motion-capture estimator. Each frame becomes a position command: the right
// wrist relative to the right shoulder, in robot axes. The replay device is
// polled once per control step in place of a live input device.
//
// # Installation
//
//	go install github.com/gwillem/mimic/cmd/mimic@latest
//
// # Usage
//
// Point a configuration at a recording:
//
//	mimic init --dir recordings/jo_box3
//
// Check what was recorded, then replay it:
//
//	mimic inspect
//	mimic replay
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/mimic: CLI with init, inspect, replay, plot and dump commands
//   - pkg/mocap: Snapshot decoding and landmark extraction
//   - pkg/device: Device interface and the Mimic replay driver
//   - pkg/replay: Fixed-rate control loop that polls a device
//   - pkg/config: JSON and environment configuration
package mimic
