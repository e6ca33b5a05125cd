package streamkit

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"unsafe"
)

//***************************************************************************
// Levels and Logs
//***************************************************************************

// Level defines different level warnings for giving
// log events.
type Level uint8

// constants of log levels this package respect.
// They are capitalize to ensure no naming conflict.
const (
	INFO Level = 1 << iota
	DEBUG
	WARN
	ERROR
	PANIC
)

// String implements the Stringer interface.
func (l Level) String() string {
	switch l {
	case INFO:
		return "INFO"
	case ERROR:
		return "ERROR"
	case DEBUG:
		return "DEBUG"
	case WARN:
		return "WARN"
	case PANIC:
		return "PANIC"
	}
	return "UNKNOWN"
}

// LogMessage defines an interface which exposes a method for retrieving
// log details for giving log item.
type LogMessage interface {
	Message() string
}

// Message implements the LogMessage interface around a bare string.
type Message string

// Message returns the underline string of giving Message.
func (m Message) Message() string {
	return string(m)
}

// Logs defines a acceptable logging interface which all elements of this
// package will respect and use to deliver logs for different parts and ops,
// this frees this package from specifying or locking a giving implementation
// and contaminating import paths. Implement this and pass in with UseLogs.
type Logs interface {
	Emit(Level, LogMessage)
}

// DrainLog implements the streamkit.Logs interface.
type DrainLog struct{}

// Emit does nothing with provided arguments, it implements
// streamkit.Logs Emit method.
func (DrainLog) Emit(_ Level, _ LogMessage) {}

//*****************************************************************
// LogEvent
//*****************************************************************

var (
	comma        = []byte(",")
	colon        = []byte(":")
	space        = []byte(" ")
	openBlock    = []byte("{")
	closingBlock = []byte("}")
	doubleQuote  = []byte("\"")
	logEventPool = sync.Pool{
		New: func() interface{} {
			return &LogEvent{content: make([]byte, 0, 512), r: 1}
		},
	}
)

// LogMsg requests allocation for a *LogEvent from the internal pool returning
// a *LogEvent for use which must have it's Message() or Write() method called
// once done.
func LogMsg(message string) *LogEvent {
	event := logEventPool.Get().(*LogEvent)
	event.reset()
	event.addQuotedString("message", message)
	event.endEntry()
	return event
}

// LogEvent implements a efficient zero or near zero-allocation as much as
// possible, using a underline non-strict json format to transform log
// key-value pairs into a LogMessage.
//
// Each LogEvent is retrieved from a pool and will panic if used after its
// Message() or Write() method was called.
type LogEvent struct {
	r       uint32
	content []byte
}

// String adds a field name with string value.
func (l *LogEvent) String(name string, value string) *LogEvent {
	l.addQuotedString(name, value)
	l.endEntry()
	return l
}

// Bytes adds a field name with bytes value. The byte is expected to be
// valid JSON, no checks are made to ensure this, you can mess up your JSON
// if you do not use this correctly.
func (l *LogEvent) Bytes(name string, value []byte) *LogEvent {
	l.addBytes(name, value)
	l.endEntry()
	return l
}

// QBytes adds a field name with bytes value which will be wrapped with
// quotation.
func (l *LogEvent) QBytes(name string, value []byte) *LogEvent {
	l.addQuotedBytes(name, value)
	l.endEntry()
	return l
}

// Object adds a field name with object value built by giving handler.
func (l *LogEvent) Object(name string, handler func(*LogEvent)) *LogEvent {
	child := logEventPool.Get().(*LogEvent)
	child.reset()
	handler(child)
	if len(child.content) > len(openBlock) {
		child.reduce(len(comma) + len(space))
	}
	child.end()

	l.addBytes(name, child.content)
	l.endEntry()

	child.resetContent()
	child.release()
	return l
}

// ObjectJSON adds a field name with object value serialized through the
// encoding/json package.
func (l *LogEvent) ObjectJSON(name string, value interface{}) *LogEvent {
	data, err := json.Marshal(value)
	if err != nil {
		fmt.Printf("JSON Marshalling %#v with failure: %+s\n", value, err)
		return l
	}

	l.addBytes(name, data)
	l.endEntry()
	return l
}

// Bool adds a field name with bool value.
func (l *LogEvent) Bool(name string, value bool) *LogEvent {
	l.addString(name, strconv.FormatBool(value))
	l.endEntry()
	return l
}

// Int adds a field name with int value.
func (l *LogEvent) Int(name string, value int) *LogEvent {
	l.addString(name, strconv.Itoa(value))
	l.endEntry()
	return l
}

// Int64 adds a field name with int64 value.
func (l *LogEvent) Int64(name string, value int64) *LogEvent {
	l.addString(name, strconv.FormatInt(value, 10))
	l.endEntry()
	return l
}

// Float64 adds a field name with float64 value.
func (l *LogEvent) Float64(name string, value float64) *LogEvent {
	l.addString(name, strconv.FormatFloat(value, 'E', -1, 64))
	l.endEntry()
	return l
}

// Message returns the generated JSON of giving *LogEvent, releasing it
// back into the internal pool. The event must not be used afterwards.
func (l *LogEvent) Message() string {
	if l.released() {
		panic("Re-using released *LogEvent")
	}

	// remove last comma and space
	if len(l.content) > len(openBlock) {
		l.reduce(len(comma) + len(space))
	}
	l.end()

	cn := make([]byte, len(l.content))
	copy(cn, l.content)

	l.resetContent()
	l.release()
	return bytes2String(cn)
}

// Write delivers giving log event to lg under giving level, releasing the
// event back into the internal pool.
func (l *LogEvent) Write(ll Level, lg Logs) {
	if lg == nil {
		lg = DrainLog{}
	}
	lg.Emit(ll, Message(l.Message()))
}

// Buf returns the current content of the *LogEvent.
func (l *LogEvent) Buf() []byte {
	return l.content
}

func (l *LogEvent) reset() {
	atomic.StoreUint32(&l.r, 1)
	l.begin()
}

func (l *LogEvent) reduce(d int) {
	available := len(l.content)
	rem := available - d
	if rem < 0 {
		rem = 0
	}
	l.content = l.content[:rem]
}

func (l *LogEvent) resetContent() {
	l.content = l.content[:0]
}

func (l *LogEvent) released() bool {
	return atomic.LoadUint32(&l.r) == 0
}

func (l *LogEvent) release() {
	atomic.StoreUint32(&l.r, 0)
	logEventPool.Put(l)
}

func (l *LogEvent) begin() {
	l.content = append(l.content, openBlock...)
}

func (l *LogEvent) addQuotedString(k string, v string) {
	if l.released() {
		panic("Re-using released *LogEvent")
	}

	l.content = append(l.content, doubleQuote...)
	l.content = append(l.content, k...)
	l.content = append(l.content, doubleQuote...)
	l.content = append(l.content, colon...)
	l.content = append(l.content, space...)
	l.content = append(l.content, doubleQuote...)
	l.content = append(l.content, v...)
	l.content = append(l.content, doubleQuote...)
}

func (l *LogEvent) addString(k string, v string) {
	if l.released() {
		panic("Re-using released *LogEvent")
	}

	l.content = append(l.content, doubleQuote...)
	l.content = append(l.content, k...)
	l.content = append(l.content, doubleQuote...)
	l.content = append(l.content, colon...)
	l.content = append(l.content, space...)
	l.content = append(l.content, v...)
}

func (l *LogEvent) addQuotedBytes(k string, v []byte) {
	if l.released() {
		panic("Re-using released *LogEvent")
	}

	l.content = append(l.content, doubleQuote...)
	l.content = append(l.content, k...)
	l.content = append(l.content, doubleQuote...)
	l.content = append(l.content, colon...)
	l.content = append(l.content, space...)
	l.content = append(l.content, doubleQuote...)
	l.content = append(l.content, v...)
	l.content = append(l.content, doubleQuote...)
}

func (l *LogEvent) addBytes(k string, v []byte) {
	if l.released() {
		panic("Re-using released *LogEvent")
	}

	l.content = append(l.content, doubleQuote...)
	l.content = append(l.content, k...)
	l.content = append(l.content, doubleQuote...)
	l.content = append(l.content, colon...)
	l.content = append(l.content, space...)
	l.content = append(l.content, v...)
}

func (l *LogEvent) endEntry() {
	l.content = append(l.content, comma...)
	l.content = append(l.content, space...)
}

func (l *LogEvent) end() {
	l.content = append(l.content, closingBlock...)
}

func bytes2String(bc []byte) string {
	return *(*string)(unsafe.Pointer(&bc))
}
