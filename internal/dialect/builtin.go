package dialect

import (
	"bytes"
	_ "embed"
	"sync"
)

const builtinName = "builtin"

//go:embed data/gherkin-languages.json
var builtinData []byte

var (
	builtinOnce sync.Once
	builtinReg  *Registry
	builtinErr  error
)

// Builtin loads the dialects shipped with the module. With no options the
// registry is decoded once per process and shared.
func Builtin(opts ...Option) (*Registry, error) {
	if len(opts) > 0 {
		return Load(bytes.NewReader(builtinData), builtinName, FormatJSON, opts...)
	}
	builtinOnce.Do(func() {
		builtinReg, builtinErr = Load(bytes.NewReader(builtinData), builtinName, FormatJSON)
	})
	return builtinReg, builtinErr
}

// MustBuiltin is Builtin that panics if the embedded data is broken.
func MustBuiltin() *Registry {
	reg, err := Builtin()
	if err != nil {
		panic(err)
	}
	return reg
}
