// Package replay runs a device through a fixed-rate control loop.
package replay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gwillem/mimic/pkg/device"
)

// DefaultHz is the control frequency used when none is configured.
const DefaultHz = 20

// ErrFinished is returned by Start once the device has no more frames.
var ErrFinished = errors.New("replay finished")

// State is published after every control step.
type State struct {
	Frame     int
	Command   device.ControllerState
	Timestamp time.Time
	Error     error
}

// Controller polls a device at a fixed rate.
type Controller struct {
	dev device.Device
	hz  int

	mu      sync.RWMutex
	running bool
	frame   int
	stateCh chan State
	logCh   chan string
}

// Config holds configuration for the controller.
type Config struct {
	Device device.Device
	Hz     int
}

// NewController creates a new replay controller.
func NewController(cfg Config) (*Controller, error) {
	if cfg.Device == nil {
		return nil, fmt.Errorf("create controller: no device")
	}
	if cfg.Hz <= 0 {
		cfg.Hz = DefaultHz
	}

	return &Controller{
		dev:     cfg.Device,
		hz:      cfg.Hz,
		stateCh: make(chan State, 1),
		logCh:   make(chan string, 10),
	}, nil
}

// States returns a channel that receives state updates.
func (c *Controller) States() <-chan State {
	return c.stateCh
}

// Logs returns a channel that receives log messages.
func (c *Controller) Logs() <-chan string {
	return c.logCh
}

// Hz returns the control frequency.
func (c *Controller) Hz() int {
	return c.hz
}

// Frames returns the number of steps completed.
func (c *Controller) Frames() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.frame
}

func (c *Controller) log(format string, args ...any) {
	msg := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	select {
	case c.logCh <- msg:
	default:
		// Drop if channel full
	}
}

// Start runs the control loop until ctx is done or the device runs out of frames.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("already running")
	}
	c.running = true
	c.frame = 0
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
	}()

	c.dev.StartControl()
	c.log("Replay started at %d Hz", c.hz)

	ticker := time.NewTicker(time.Second / time.Duration(c.hz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.log("Replay stopped after %d frames", c.Frames())
			return ctx.Err()
		case <-ticker.C:
			if err := c.step(); err != nil {
				return err
			}
		}
	}
}

func (c *Controller) step() error {
	cmd, err := c.dev.GetControllerState()
	if errors.Is(err, device.ErrIndexOutOfRange) {
		c.log("Replay finished after %d frames", c.Frames())
		return ErrFinished
	}
	if err != nil {
		c.log("Device error: %v", err)
		c.sendState(State{Frame: c.Frames(), Error: err, Timestamp: time.Now()})
		return fmt.Errorf("poll device: %w", err)
	}

	c.mu.Lock()
	frame := c.frame
	c.frame++
	c.mu.Unlock()

	c.sendState(State{
		Frame:     frame,
		Command:   cmd,
		Timestamp: time.Now(),
	})
	return nil
}

func (c *Controller) sendState(s State) {
	select {
	case c.stateCh <- s:
	default:
		// Drop old state if channel full, replace with new
		select {
		case <-c.stateCh:
		default:
		}
		c.stateCh <- s
	}
}
