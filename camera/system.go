package camera

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/spaghettifunk/kamera/engine/core"
)

/** @brief The name of the default rig. */
const DEFAULT_RIG_NAME string = "default"

// Rig is one camera instance: a raw look transform driven by an optional
// controller, a smoother producing the filtered pose, and the explicit
// cursor-lock state owned by this rig. Rigs never share state with each
// other.
type Rig struct {
	ID        uuid.UUID
	Name      string
	Transform LookTransform
	Smoother  *Smoother
	Cursor    CursorState

	controller Controller
	smoothed   LookTransform
	smoothedOK bool
}

func newRig(name string, transform LookTransform, smoothingWeight float32) *Rig {
	return &Rig{
		ID:        uuid.New(),
		Name:      name,
		Transform: transform,
		Smoother:  NewSmoother(smoothingWeight),
		Cursor:    CursorState{Visible: true},
	}
}

// Bind attaches a controller to the rig. An enabled controller takes the
// cursor immediately, matching the startup behavior of an auto-hiding
// first-person camera; controllers that do not want the cursor release it
// on their first update.
func (r *Rig) Bind(controller Controller) {
	r.controller = controller
	if controller != nil && controller.IsEnabled() {
		r.Cursor.Grab()
	}
}

func (r *Rig) Controller() Controller {
	return r.controller
}

// Smoothed returns the last filtered pose emitted for this rig. Before
// the first update it returns the raw transform.
func (r *Rig) Smoothed() LookTransform {
	if !r.smoothedOK {
		return r.Transform
	}
	return r.smoothed
}

// Teleport replaces the raw transform and resets the smoother so the rig
// snaps to the new placement instead of gliding there.
func (r *Rig) Teleport(transform LookTransform) {
	r.Transform = transform
	r.Smoother.Reset()
	r.smoothedOK = false
}

type rigLookup struct {
	rig            *Rig
	referenceCount uint16
}

/** @brief The camera system configuration. */
type SystemConfig struct {
	// The maximum number of rigs that can be managed by the system.
	MaxRigCount uint16
	// Default smoothing weight for rigs created through Acquire.
	DefaultSmoothingWeight float32
}

// TuningEvent is the payload for EVENT_CODE_CAMERA_TUNING_CHANGED.
// RigName selects a specific rig; empty targets whichever rig currently
// has an enabled controller.
type TuningEvent struct {
	Tuning  Tuning
	RigName string
}

// System owns all camera rigs, hands them out by name with reference
// counting, and runs the per-tick update pipeline for the rig whose
// controller is active. A default, non-registered rig always exists as a
// fallback.
type System struct {
	Config *SystemConfig
	// Registration order; doubles as the controller priority order.
	order  []string
	lookup map[string]*rigLookup
	// A default rig that always exists as a fallback.
	defaultRig *Rig

	// Pending changes delivered through the event bus; applied at the
	// start of the next Update so rig mutation stays on the tick thread.
	pendingMu          sync.Mutex
	pendingCursorModes []*CursorModeEvent
	pendingTunings     []*TuningEvent
}

// NewSystem initializes the camera system.
func NewSystem(config *SystemConfig) (*System, error) {
	if config.MaxRigCount == 0 {
		err := fmt.Errorf("func NewSystem - config.MaxRigCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}
	if config.DefaultSmoothingWeight == 0 {
		config.DefaultSmoothingWeight = 0.9
	}
	s := &System{
		Config:     config,
		order:      make([]string, 0, config.MaxRigCount),
		lookup:     make(map[string]*rigLookup, config.MaxRigCount),
		defaultRig: newRig(DEFAULT_RIG_NAME, defaultTransform(), config.DefaultSmoothingWeight),
	}
	return s, nil
}

func defaultTransform() LookTransform {
	return LookTransform{
		Eye:    [3]float32{0, 0, 5},
		Target: [3]float32{0, 0, 0},
		Up:     [3]float32{0, 1, 0},
	}
}

// RegisterEvents subscribes the system to runtime cursor-mode and tuning
// changes. Call once after core.EventSystemInitialize.
func (s *System) RegisterEvents() {
	core.EventRegister(core.EVENT_CODE_CURSOR_MODE_CHANGED, s.onCursorModeChanged)
	core.EventRegister(core.EVENT_CODE_CAMERA_TUNING_CHANGED, s.onTuningChanged)
}

func (s *System) Shutdown() error {
	return nil
}

// Acquire returns the rig with the given name, creating it on first use.
// The internal reference count is incremented.
func (s *System) Acquire(name string) (*Rig, error) {
	if name == DEFAULT_RIG_NAME {
		return s.defaultRig, nil
	}
	entry, ok := s.lookup[name]
	if !ok {
		if len(s.order) >= int(s.Config.MaxRigCount) {
			err := fmt.Errorf("func Acquire failed to create rig '%s'. Adjust camera system config to allow more", name)
			core.LogError(err.Error())
			return nil, err
		}
		core.LogDebug("Creating new camera rig named '%s'...", name)
		entry = &rigLookup{
			rig: newRig(name, defaultTransform(), s.Config.DefaultSmoothingWeight),
		}
		s.lookup[name] = entry
		s.order = append(s.order, name)
	}
	entry.referenceCount++
	return entry.rig, nil
}

// Release decrements the reference count of the named rig. When it
// reaches zero the rig is removed and the name is usable by a new rig.
func (s *System) Release(name string) {
	if name == DEFAULT_RIG_NAME {
		core.LogDebug("Cannot release default rig. Nothing was done.")
		return
	}
	entry, ok := s.lookup[name]
	if !ok {
		core.LogWarn("Release failed lookup of rig '%s'. Nothing was done.", name)
		return
	}
	entry.referenceCount--
	if entry.referenceCount < 1 {
		delete(s.lookup, name)
		for i, n := range s.order {
			if n == name {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// GetDefault returns the default rig.
func (s *System) GetDefault() *Rig {
	return s.defaultRig
}

// ActiveRig returns the rig that receives input this tick: the first rig
// in registration order (default rig first) with an enabled controller,
// or nil. Registration order is the documented priority order.
func (s *System) ActiveRig() *Rig {
	if c := s.defaultRig.controller; c != nil && c.IsEnabled() {
		return s.defaultRig
	}
	for _, name := range s.order {
		if entry, ok := s.lookup[name]; ok {
			if c := entry.rig.controller; c != nil && c.IsEnabled() {
				return entry.rig
			}
		}
	}
	return nil
}

// Update runs one tick: pending runtime changes are applied, the active
// rig maps input into control events and folds them into its raw
// transform, and every rig's smoother advances toward its raw transform.
func (s *System) Update(dtSeconds float32) {
	s.applyPending()

	active := s.ActiveRig()
	if active != nil {
		ctrl := active.controller
		ctrl.UpdateCursor(&active.Cursor)
		ctrl.InputMap(&active.Cursor)
		ctrl.ApplyControl(&active.Transform, dtSeconds)
	}

	s.smoothRig(s.defaultRig, active, dtSeconds)
	for _, name := range s.order {
		if entry, ok := s.lookup[name]; ok {
			s.smoothRig(entry.rig, active, dtSeconds)
		}
	}
}

func (s *System) smoothRig(rig *Rig, active *Rig, dtSeconds float32) {
	var override *float32
	if rig == active {
		w := rig.controller.SmoothingWeight()
		override = &w
	}
	rig.smoothed = rig.Smoother.Update(override, rig.Transform, dtSeconds)
	rig.smoothedOK = true
}

func (s *System) onCursorModeChanged(context core.EventContext) {
	event, ok := context.Data.(*CursorModeEvent)
	if !ok {
		core.LogError("wrong event payload associated with event type `%d`", context.Type)
		return
	}
	s.pendingMu.Lock()
	s.pendingCursorModes = append(s.pendingCursorModes, event)
	s.pendingMu.Unlock()
}

func (s *System) onTuningChanged(context core.EventContext) {
	event, ok := context.Data.(*TuningEvent)
	if !ok {
		core.LogError("wrong event payload associated with event type `%d`", context.Type)
		return
	}
	s.pendingMu.Lock()
	s.pendingTunings = append(s.pendingTunings, event)
	s.pendingMu.Unlock()
}

func (s *System) applyPending() {
	s.pendingMu.Lock()
	cursorModes := s.pendingCursorModes
	tunings := s.pendingTunings
	s.pendingCursorModes = nil
	s.pendingTunings = nil
	s.pendingMu.Unlock()

	for _, event := range cursorModes {
		s.forEachTargeted(event.RigName, func(c Controller) {
			c.SetCursorToggleMode(event.Mode)
		})
	}
	for _, event := range tunings {
		tuning := event.Tuning
		s.forEachTargeted(event.RigName, func(c Controller) {
			c.ApplyTuning(tuning)
		})
	}
}

// forEachTargeted applies fn to the named rig's controller or, when name
// is empty, to every enabled controller.
func (s *System) forEachTargeted(name string, fn func(Controller)) {
	if name != "" {
		if name == DEFAULT_RIG_NAME {
			if s.defaultRig.controller != nil {
				fn(s.defaultRig.controller)
			}
			return
		}
		if entry, ok := s.lookup[name]; ok && entry.rig.controller != nil {
			fn(entry.rig.controller)
		}
		return
	}
	if c := s.defaultRig.controller; c != nil && c.IsEnabled() {
		fn(c)
	}
	for _, rigName := range s.order {
		if entry, ok := s.lookup[rigName]; ok {
			if c := entry.rig.controller; c != nil && c.IsEnabled() {
				fn(c)
			}
		}
	}
}
