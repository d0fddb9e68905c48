package asr

// engine is the backend contract behind a Context: load a model file, run a
// batch pass, run a streaming pass, release resources. Implementations are
// the stub engine (always compiled) and the vendor engine (qwenasr build
// tag).
type engine interface {
	// load reads and validates the model file at path. A false return
	// leaves the engine safe to free but unusable for transcription.
	load(path string) bool
	// batch runs one full inference pass.
	batch(samples []float32, params Params) engineOutput
	// stream runs inference delivering tokens to cb. A nil cb means
	// "always continue".
	stream(samples []float32, params Params, cb TokenCallback) engineOutput
	// free releases engine resources. Called at most once.
	free()
}

// engineOutput is what an engine hands back to the Context layer, which
// turns it into a Result with timing attached.
type engineOutput struct {
	text   string
	tokens int32
	ok     bool
}

func newEngine(b Backend) engine {
	switch b {
	case BackendStub:
		return newStubEngine()
	case BackendNative:
		return newNativeEngine()
	default:
		if NativeAvailable() {
			return newNativeEngine()
		}
		return newStubEngine()
	}
}
