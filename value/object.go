package value

import "fmt"

// Object is the interface implemented by every heap-allocated value variant:
// Function, Closure, Upvalue, Native. Objects are shared by reference —
// nothing in this core frees an object or breaks a reference cycle
// explicitly. The host runtime's tracing GC reclaims lumen objects, cyclic
// or not, once nothing reachable (the VM's stack, its globals, another
// object) refers to them.
type Object interface {
	String() string
	TypeName() string
}

// FunctionKind distinguishes why a Function was compiled. Only Script and
// Function are ever produced by this core's compiler (there is no class
// declaration grammar rule); Method and Initializer are carried because
// spec.md §3 lists all four as part of the Object data model, and because a
// closure/bytecode layer that can represent methods is the natural
// extension point a class system would plug into later.
type FunctionKind uint8

const (
	FuncScript FunctionKind = iota
	FuncFunction
	FuncMethod
	FuncInitializer
)

func (k FunctionKind) String() string {
	switch k {
	case FuncScript:
		return "script"
	case FuncFunction:
		return "function"
	case FuncMethod:
		return "method"
	case FuncInitializer:
		return "initializer"
	default:
		return "unknown"
	}
}

// Chunk is the per-function container: an append-only instruction stream, a
// constant pool addressed by a 0..255 index, and a run-length-encoded
// offset→line table (spec.md §3).
type Chunk struct {
	Code      []byte
	Constants []Value
	lineRuns  []lineRun
}

type lineRun struct {
	line  int
	count int
}

// Write appends a single instruction byte produced at source line.
func (c *Chunk) Write(b byte, line int) {
	c.Code = append(c.Code, b)
	c.addLine(line)
}

func (c *Chunk) addLine(line int) {
	if n := len(c.lineRuns); n > 0 && c.lineRuns[n-1].line == line {
		c.lineRuns[n-1].count++
		return
	}
	c.lineRuns = append(c.lineRuns, lineRun{line: line, count: 1})
}

// AddConstant appends value to the constant pool and returns its index.
// The compiler is responsible for enforcing the 255-constant limit
// (spec.md §4.2); Chunk itself has no ceiling.
func (c *Chunk) AddConstant(v Value) int {
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1
}

// Line looks up the source line an instruction offset was emitted from by
// walking the (line, count) runs, accumulating counts until the running
// total exceeds offset (spec.md §3).
func (c *Chunk) Line(offset int) int {
	total := 0
	for _, run := range c.lineRuns {
		total += run.count
		if offset < total {
			return run.line
		}
	}
	if len(c.lineRuns) == 0 {
		return 0
	}
	return c.lineRuns[len(c.lineRuns)-1].line
}

// Function is a compiled function (or the implicit top-level script): its
// kind, arity, upvalue count, owned Chunk, and name. Functions are shared —
// multiple Closures may reference the same Function.
type Function struct {
	Kind         FunctionKind
	Name         string
	Arity        int
	UpvalueCount int
	Chunk        Chunk
}

func (f *Function) String() string {
	if f.Kind == FuncScript {
		return "<script>"
	}
	name := f.Name
	if name == "" {
		name = "anonymous"
	}
	return fmt.Sprintf("<func %s(#%d)>", name, f.Arity)
}

func (f *Function) TypeName() string { return "function" }

// Closure pairs a Function with the captured-variable references
// (Upvalues) it needs at runtime. Two Closures created at the same
// OP_CLOSURE call site, capturing the same enclosing local, share the same
// *Upvalue object.
type Closure struct {
	Function *Function
	Upvalues []*Upvalue
}

func (c *Closure) String() string {
	return fmt.Sprintf("<closure %s>", c.Function.String())
}

func (c *Closure) TypeName() string { return "closure" }

// Upvalue is a shared, possibly-indirected reference to a variable
// location. While its enclosing frame is still live it is Open and points
// directly at the frame's stack slot (Location); when that frame returns or
// its scope exits, the upvalue is Closed, migrating the value into its own
// cell so it outlives the stack slot that used to hold it (spec.md §9's
// redesign note — without this, scenario 5 in spec.md §8 observes garbage
// once counter()'s frame is gone).
type Upvalue struct {
	Location *Value
	closed   Value
	// Slot is the value-stack index Location points at while the upvalue
	// is open. It lets the VM order and search its open-upvalue list
	// without comparing *Value pointers directly (Go gives pointers no
	// relational operators). Meaningless once the upvalue is closed.
	Slot int
	// Next threads open upvalues together in the VM's open-upvalue list,
	// ordered by descending Slot, so captureUpvalue can find and reuse an
	// existing open upvalue instead of creating a duplicate.
	Next *Upvalue
}

// NewUpvalue creates an open upvalue pointing at the live stack slot at
// index slot, addressed by location.
func NewUpvalue(slot int, location *Value) *Upvalue {
	return &Upvalue{Slot: slot, Location: location}
}

// Get reads through the upvalue, open or closed.
func (u *Upvalue) Get() Value {
	if u.Location != nil {
		return *u.Location
	}
	return u.closed
}

// Set writes through the upvalue, open or closed.
func (u *Upvalue) Set(v Value) {
	if u.Location != nil {
		*u.Location = v
		return
	}
	u.closed = v
}

// Close migrates the upvalue's value out of the stack slot it was pointing
// at into its own cell, and severs the pointer. Called when the stack slot
// it references is about to be reused (scope exit, function return).
func (u *Upvalue) Close() {
	u.closed = *u.Location
	u.Location = nil
}

func (u *Upvalue) String() string     { return fmt.Sprintf("<upvalue %s>", u.Get().String()) }
func (u *Upvalue) TypeName() string   { return "upvalue" }

// NativeFn is the signature every native function implements: given its
// argument slice, return a Value or an error (surfaced as a runtime error).
type NativeFn func(args []Value) (Value, error)

// Native wraps a Go function exposed to lumen programs as a callable value.
type Native struct {
	Name string
	Fn   NativeFn
}

func (n *Native) String() string   { return fmt.Sprintf("<native %s@%p>", n.Name, n) }
func (n *Native) TypeName() string { return "native" }
