//go:build !qwenasr

package asr

// NativeAvailable reports whether the vendor engine was compiled in.
func NativeAvailable() bool { return false }

// unavailableEngine stands in for the vendor engine in builds without the
// qwenasr tag. Context creation stays infallible; every load just fails.
type unavailableEngine struct{}

func newNativeEngine() engine { return unavailableEngine{} }

func (unavailableEngine) load(string) bool { return false }

func (unavailableEngine) batch([]float32, Params) engineOutput { return engineOutput{} }

func (unavailableEngine) stream([]float32, Params, TokenCallback) engineOutput {
	return engineOutput{}
}

func (unavailableEngine) free() {}
