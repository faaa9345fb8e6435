package gwr

import "github.com/joeycumines/logiface"

// Tracker is a capability bundle: the sink for every lifecycle, log,
// value, and time record the engine emits. Implementations must be safe to
// call from the single scheduler goroutine and must serialize records in
// call order — both are automatic consequences of the engine's cooperative,
// single-threaded execution model.
type Tracker interface {
	AddEntity(id, parentID Id, name string)
	Enter(taskID, entityID Id)
	Exit(taskID, entityID Id)
	Create(creatorID, objID Id, bytes uint64, reqType, name string)
	Destroy(creatorID, objID Id)
	Log(entityID Id, level logiface.Level, message string)
	Time(setterID Id, timeNS float64)
	Connect(fromID, toID Id)
	Value(id Id, v float64)
	IsEntityEnabled(id Id, level logiface.Level) bool
	Shutdown()
}

// NullTracker discards every record and reports every entity as disabled
// for logging purposes. It is the tracker of choice for tests, where the
// cost of serialization is pure overhead.
type NullTracker struct{}

// NewNullTracker returns a Tracker that drops everything it is given.
func NewNullTracker() *NullTracker { return &NullTracker{} }

func (*NullTracker) AddEntity(Id, Id, string)                 {}
func (*NullTracker) Enter(Id, Id)                              {}
func (*NullTracker) Exit(Id, Id)                               {}
func (*NullTracker) Create(Id, Id, uint64, string, string)     {}
func (*NullTracker) Destroy(Id, Id)                            {}
func (*NullTracker) Log(Id, logiface.Level, string)            {}
func (*NullTracker) Time(Id, float64)                          {}
func (*NullTracker) Connect(Id, Id)                            {}
func (*NullTracker) Value(Id, float64)                         {}
func (*NullTracker) IsEntityEnabled(Id, logiface.Level) bool   { return false }
func (*NullTracker) Shutdown()                                 {}

var (
	_ Tracker = (*NullTracker)(nil)
	_ Tracker = (*StreamTracker)(nil)
)
