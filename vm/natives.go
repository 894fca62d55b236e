package vm

import (
	"fmt"
	"time"

	"github.com/informatter/lumen/value"
)

// defineNatives registers the VM's small standard library into globals.
// These are the only callers of Object's Native variant and of CALL's
// native-callee branch — without them that path would be unexercised.
func (vm *VM) defineNatives() {
	vm.defineNative("clock", nativeClock)
	vm.defineNative("len", nativeLen)
	vm.defineNative("type", nativeType)
}

func (vm *VM) defineNative(name string, fn value.NativeFn) {
	vm.globals[name] = value.Obj(&value.Native{Name: name, Fn: fn})
}

// nativeClock reports wall-clock seconds since the Unix epoch, matching
// clox's canonical `clock()` native used throughout the Lox lineage for
// benchmarking scripts.
func nativeClock(args []value.Value) (value.Value, error) {
	return value.Number(float64(time.Now().UnixNano()) / 1e9), nil
}

func nativeLen(args []value.Value) (value.Value, error) {
	if len(args) != 1 || !args[0].IsString() {
		return value.Nil(), fmt.Errorf("len() expects a single string argument")
	}
	return value.Number(float64(len(args[0].AsString()))), nil
}

func nativeType(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Nil(), fmt.Errorf("type() expects a single argument")
	}
	return value.Str(args[0].TypeName()), nil
}
