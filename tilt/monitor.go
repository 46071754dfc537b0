// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tilt

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"
)

// State is the lifecycle state of a Monitor.
type State int

const (
	Uninitialized State = iota
	Running
	Halted
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Running:
		return "Running"
	case Halted:
		return "Halted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrNotRunning is returned by Cycle when the Monitor is not Running.
	ErrNotRunning = errors.New("tilt: monitor not running")
	// ErrStarted is returned by Start when called more than once.
	ErrStarted = errors.New("tilt: monitor already started")
)

// DefaultOpts refreshes the screen about 10 times per second.
var DefaultOpts = Opts{
	Period: 100 * time.Millisecond,
}

// Opts holds the configuration of a Monitor.
type Opts struct {
	// Period is the sleep after each cycle. Processing time is not
	// subtracted.
	Period time.Duration
	// Log receives the diagnostic lines. Defaults to stdout without prefix.
	Log *log.Logger
	// Layout defaults to DefaultLayout.
	Layout *Layout
}

// Monitor drives the read, estimate and render loop.
type Monitor struct {
	opts  Opts
	log   *log.Logger
	state State
	src   Source
	r     *Renderer

	sleep func(ctx context.Context, d time.Duration) error
}

// New returns an Uninitialized Monitor.
func New(opts *Opts) *Monitor {
	if opts == nil {
		opts = &DefaultOpts
	}
	m := &Monitor{opts: *opts, log: opts.Log, sleep: sleep}
	if m.log == nil {
		m.log = log.New(os.Stdout, "", 0)
	}
	if m.opts.Period <= 0 {
		m.opts.Period = DefaultOpts.Period
	}
	return m
}

// State returns the current lifecycle state.
func (m *Monitor) State() State {
	return m.state
}

// Renderer returns the renderer, nil unless Start succeeded.
func (m *Monitor) Renderer() *Renderer {
	return m.r
}

// Start brings the sensor up, then the screen, then draws the chrome.
//
// The sensor is brought up first; if it fails the screen is never touched.
// Any failure logs one line and moves the Monitor to Halted for good. On
// success the Monitor is Running.
func (m *Monitor) Start(sensorUp func() (Source, error), screenUp func() (Screen, error)) error {
	if m.state != Uninitialized {
		return ErrStarted
	}
	src, err := sensorUp()
	if err != nil {
		m.log.Print("ERROR: MPU6050 not found!")
		return m.halt(fmt.Errorf("tilt: sensor: %w", err))
	}
	scr, err := screenUp()
	if err != nil {
		m.log.Printf("ERROR: display not found! %v", err)
		return m.halt(fmt.Errorf("tilt: screen: %w", err))
	}
	r, err := NewRenderer(scr, m.opts.Layout)
	if err == nil {
		err = r.InitChrome()
	}
	if err != nil {
		m.log.Printf("ERROR: display setup failed! %v", err)
		return m.halt(err)
	}
	m.src = src
	m.r = r
	m.state = Running
	m.log.Print("System started. Reading MPU6050...")
	return nil
}

func (m *Monitor) halt(err error) error {
	m.state = Halted
	return err
}

// Cycle reads one sample, logs it and redraws the three fields.
//
// A failed read skips the redraw. Failures are logged and returned but never
// change the state.
func (m *Monitor) Cycle() error {
	if m.state != Running {
		return ErrNotRunning
	}
	s, err := m.src.ReadSample()
	if err != nil {
		m.log.Printf("ERROR: read failed! %v", err)
		return fmt.Errorf("tilt: reading sample: %w", err)
	}
	o := Estimate(s.Acceleration)
	a := s.Acceleration
	m.log.Printf("Ax: %.2f Ay: %.2f Az: %.2f | Roll: %.2f deg Pitch: %.2f deg | Temp: %.1f C",
		a.X, a.Y, a.Z, o.Roll, o.Pitch, s.Temperature)
	var errs []error
	for _, v := range []struct {
		name string
		f    *Field
		v    float64
	}{
		{"roll", &m.r.Roll, o.Roll},
		{"pitch", &m.r.Pitch, o.Pitch},
		{"temperature", &m.r.Temperature, s.Temperature},
	} {
		if err := m.r.RenderField(v.f, v.v); err != nil {
			m.log.Printf("ERROR: drawing %s failed! %v", v.name, err)
			errs = append(errs, fmt.Errorf("tilt: rendering %s: %w", v.name, err))
		}
	}
	return errors.Join(errs...)
}

// Run cycles while Running and idles while Halted, sleeping Period between
// iterations. It only returns when ctx is done.
func (m *Monitor) Run(ctx context.Context) error {
	for {
		if m.state == Running {
			_ = m.Cycle()
		}
		if err := m.sleep(ctx, m.opts.Period); err != nil {
			return err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
