package gwr

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// recordKind tags each frame written by StreamTracker.
type recordKind byte

const (
	recordAddEntity recordKind = iota
	recordEnter
	recordExit
	recordCreate
	recordDestroy
	recordLog
	recordTime
	recordConnect
	recordValue
	recordShutdown
)

// StreamTracker is the production Tracker: it frames every record onto an
// io.Writer using a minimal tagged, length-prefixed encoding built on
// encoding/binary and bufio. It intentionally does not attempt to produce
// any particular upstream trace schema — serializing to a specific wire
// format understood by external trace viewers is outside the engine's
// responsibility.
//
// A StreamTracker may optionally mirror Log records through a structured
// logiface logger, for a human-readable view alongside the binary stream.
type StreamTracker struct {
	w        *bufio.Writer
	closer   io.Closer
	mirror   *logiface.Logger[*stumpy.Event]
	minLevel logiface.Level
	err      error
}

// StreamTrackerOption configures a StreamTracker.
type StreamTrackerOption interface {
	applyStream(*StreamTracker)
}

type streamOptionFunc func(*StreamTracker)

func (f streamOptionFunc) applyStream(t *StreamTracker) { f(t) }

// WithMinLevel sets the minimum level IsEntityEnabled reports as enabled.
// Defaults to logiface.LevelTrace, matching the engine's implementer-chosen
// default enablement.
func WithMinLevel(level logiface.Level) StreamTrackerOption {
	return streamOptionFunc(func(t *StreamTracker) { t.minLevel = level })
}

// WithMirrorLogger configures a logiface logger that additionally receives
// every Log record, independent of the binary stream.
func WithMirrorLogger(l *logiface.Logger[*stumpy.Event]) StreamTrackerOption {
	return streamOptionFunc(func(t *StreamTracker) { t.mirror = l })
}

// NewStreamTracker returns a Tracker that writes framed records to w. If w
// also implements io.Closer, Shutdown closes it after flushing.
func NewStreamTracker(w io.Writer, opts ...StreamTrackerOption) *StreamTracker {
	t := &StreamTracker{w: bufio.NewWriter(w), minLevel: logiface.LevelTrace}
	if c, ok := w.(io.Closer); ok {
		t.closer = c
	}
	for _, o := range opts {
		o.applyStream(t)
	}
	return t
}

// Err returns the first write error encountered, if any.
func (t *StreamTracker) Err() error { return t.err }

func (t *StreamTracker) writeByte(b byte) {
	if t.err != nil {
		return
	}
	t.err = t.w.WriteByte(b)
}

func (t *StreamTracker) writeUint64(v uint64) {
	if t.err != nil {
		return
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, t.err = t.w.Write(buf[:])
}

func (t *StreamTracker) writeFloat64(v float64) {
	t.writeUint64(math.Float64bits(v))
}

func (t *StreamTracker) writeString(s string) {
	if t.err != nil {
		return
	}
	t.writeUint64(uint64(len(s)))
	if t.err != nil {
		return
	}
	_, t.err = t.w.WriteString(s)
}

func (t *StreamTracker) AddEntity(id, parentID Id, name string) {
	t.writeByte(byte(recordAddEntity))
	t.writeUint64(uint64(id))
	t.writeUint64(uint64(parentID))
	t.writeString(name)
}

func (t *StreamTracker) Enter(taskID, entityID Id) {
	t.writeByte(byte(recordEnter))
	t.writeUint64(uint64(taskID))
	t.writeUint64(uint64(entityID))
}

func (t *StreamTracker) Exit(taskID, entityID Id) {
	t.writeByte(byte(recordExit))
	t.writeUint64(uint64(taskID))
	t.writeUint64(uint64(entityID))
}

func (t *StreamTracker) Create(creatorID, objID Id, bytes uint64, reqType, name string) {
	t.writeByte(byte(recordCreate))
	t.writeUint64(uint64(creatorID))
	t.writeUint64(uint64(objID))
	t.writeUint64(bytes)
	t.writeString(reqType)
	t.writeString(name)
}

func (t *StreamTracker) Destroy(creatorID, objID Id) {
	t.writeByte(byte(recordDestroy))
	t.writeUint64(uint64(creatorID))
	t.writeUint64(uint64(objID))
}

func (t *StreamTracker) Log(entityID Id, level logiface.Level, message string) {
	t.writeByte(byte(recordLog))
	t.writeUint64(uint64(entityID))
	t.writeByte(byte(level))
	t.writeString(message)
	if t.mirror != nil {
		t.mirror.Build(level).
			Int64(`entity`, int64(entityID)).
			Log(message)
	}
}

func (t *StreamTracker) Time(setterID Id, timeNS float64) {
	t.writeByte(byte(recordTime))
	t.writeUint64(uint64(setterID))
	t.writeFloat64(timeNS)
}

func (t *StreamTracker) Connect(fromID, toID Id) {
	t.writeByte(byte(recordConnect))
	t.writeUint64(uint64(fromID))
	t.writeUint64(uint64(toID))
}

func (t *StreamTracker) Value(id Id, v float64) {
	t.writeByte(byte(recordValue))
	t.writeUint64(uint64(id))
	t.writeFloat64(v)
}

func (t *StreamTracker) IsEntityEnabled(_ Id, level logiface.Level) bool {
	return level <= t.minLevel && level >= 0
}

func (t *StreamTracker) Shutdown() {
	t.writeByte(byte(recordShutdown))
	if t.err == nil {
		t.err = t.w.Flush()
	}
	if t.closer != nil {
		if cerr := t.closer.Close(); t.err == nil {
			t.err = cerr
		}
	}
}
