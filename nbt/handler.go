package nbt

// Control is returned by every Handler callback to steer the parser.
type Control int

const (
	// Continue tells the parser to proceed normally.
	Continue Control = iota
	// Skip tells the parser to discard the remainder of the current
	// container without invoking callbacks for its remaining contents; the
	// container's closing EndCompound/EndList is still delivered. The
	// parser still consumes the bytes, so the stream stays aligned.
	Skip
	// Abort tells the parser to unwind cleanly and return immediately.
	Abort
)

// Handler is the streaming-parser extension point: any type implementing
// this interface can drive (or be driven by) a walk of an NBT byte stream
// without a tree ever being materialized. name is nil when the tag is a
// list element (list elements are never named); otherwise it points at the
// tag's name, which may itself be the empty string.
type Handler interface {
	// Start is invoked once, for the document root, before any other
	// callback. rootName is the root compound's name (often empty).
	Start(rootName string) Control
	// End is invoked once the root compound (and everything inside it)
	// has been fully consumed.
	End() Control

	Byte(name *string, v int8) Control
	Short(name *string, v int16) Control
	Int(name *string, v int32) Control
	Long(name *string, v int64) Control
	Float(name *string, v float32) Control
	Double(name *string, v float64) Control
	String(name *string, v string) Control

	ByteArray(name *string, v []byte) Control
	IntArray(name *string, v []int32) Control
	LongArray(name *string, v []int64) Control

	StartList(name *string, elem Kind, length int32) Control
	EndList() Control

	StartCompound(name *string) Control
	EndCompound() Control

	// Warning reports a non-fatal condition the parser tolerated rather
	// than rejecting outright (e.g. an empty LIST declaring element kind
	// END with a nonzero length). It does not return a Control: the parser
	// has already decided to continue.
	Warning(msg string)
}

// BaseHandler is embeddable in a Handler implementation to default every
// callback to a no-op returning Continue. Embedders override only the
// callbacks they care about.
type BaseHandler struct{}

func (BaseHandler) Start(string) Control                   { return Continue }
func (BaseHandler) End() Control                           { return Continue }
func (BaseHandler) Byte(*string, int8) Control             { return Continue }
func (BaseHandler) Short(*string, int16) Control           { return Continue }
func (BaseHandler) Int(*string, int32) Control             { return Continue }
func (BaseHandler) Long(*string, int64) Control            { return Continue }
func (BaseHandler) Float(*string, float32) Control         { return Continue }
func (BaseHandler) Double(*string, float64) Control        { return Continue }
func (BaseHandler) String(*string, string) Control         { return Continue }
func (BaseHandler) ByteArray(*string, []byte) Control      { return Continue }
func (BaseHandler) IntArray(*string, []int32) Control      { return Continue }
func (BaseHandler) LongArray(*string, []int64) Control     { return Continue }
func (BaseHandler) StartList(*string, Kind, int32) Control { return Continue }
func (BaseHandler) EndList() Control                       { return Continue }
func (BaseHandler) StartCompound(*string) Control          { return Continue }
func (BaseHandler) EndCompound() Control                   { return Continue }
func (BaseHandler) Warning(string)                         {}

var _ Handler = BaseHandler{}
