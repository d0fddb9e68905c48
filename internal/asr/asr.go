// Package asr exposes the Qwen3-ASR inference engine behind a narrow
// call/return boundary: create a Context, load a GGUF model into it, run
// batch or streaming transcription over raw audio samples.
//
// The boundary reports failure at the boolean level only (LoadModel returns
// bool, Result carries a Success flag). Callers that need to know *why* a
// load or transcription failed must look at outer layers; the boundary
// itself cannot distinguish a missing file from a bad header from an engine
// rejection.
//
// Result.Text is an ordinary Go string. The C-style contract this package
// grew out of required the caller to release result text through a paired
// free function; garbage collection makes that dance unnecessary here, so
// no free function exists. Manual text release survives only inside the
// vendor-backed engine, where it stays an internal detail of the cgo layer.
//
// A Context is exclusively owned by one logical caller at a time. Calling
// into the same Context from multiple goroutines without external
// synchronization is not supported, and the streaming token callback runs
// synchronously on the calling goroutine: it must not call back into its
// own Context.
package asr

import "time"

// GGUFMagic is the little-endian magic value expected in the first four
// bytes of a model file. Files that do not start with it are rejected
// before any further parsing.
const GGUFMagic uint32 = 0x46475547

// Backend selects which engine implementation a Context creates on load.
type Backend int

const (
	// BackendAuto picks the native engine when it was compiled in and
	// falls back to the stub otherwise.
	BackendAuto Backend = iota
	// BackendStub forces the stub engine: GGUF header validation on load,
	// deterministic placeholder transcripts. Used for interface testing in
	// environments without the vendor library.
	BackendStub
	// BackendNative forces the vendor engine. When the binary was built
	// without the qwenasr tag every load simply fails.
	BackendNative
)

// Params configures a single transcription call. It is passed by value and
// never retained.
type Params struct {
	// Threads is the decode thread count. Values <= 0 select the engine
	// default; the vendor engine currently substitutes a fixed 4 rather
	// than detecting hardware concurrency.
	Threads int32
	// UseGPU enables GPU acceleration when the vendor build supports it.
	UseGPU bool
	// GPUDevice is the GPU device index.
	GPUDevice int32
	// Temperature is the sampling temperature; 0 means greedy decoding.
	Temperature float32
}

// DefaultParams returns the documented default transcription parameters.
func DefaultParams() Params {
	return Params{
		Threads:     0, // engine default
		UseGPU:      true,
		GPUDevice:   0,
		Temperature: 0, // greedy decoding
	}
}

// Result is the outcome of one transcription call, returned by value.
// When Success is false, Text is always empty and TokenCount zero.
type Result struct {
	// Text is the transcribed text. For streaming calls it is the
	// concatenation of the tokens that were delivered to the callback.
	Text string
	// TokenCount is the number of tokens delivered (streaming) or
	// generated (batch).
	TokenCount int32
	// DurationMS is the wall-clock time spent in the engine, in
	// milliseconds.
	DurationMS float32
	// Success reports whether transcription ran to completion (early
	// callback abort still counts as success).
	Success bool
}

// TokenCallback receives each token as it is produced during streaming
// transcription. The token string is safe to retain. Returning false
// requests early termination; the request is honored at the next token
// boundary, never preemptively.
type TokenCallback func(token string) bool

// Context is an opaque handle owning at most one loaded engine instance.
// The zero Context is not usable; create one with NewContext. Every method
// is safe to call on a nil *Context and degrades to its failure result.
type Context struct {
	backend Backend
	eng     engine // non-nil exactly when a model is loaded
}

// NewContext returns a fresh Context with no model loaded. It never fails
// and performs no I/O.
func NewContext() *Context {
	return NewContextWithBackend(BackendAuto)
}

// NewContextWithBackend returns a fresh Context bound to the given backend.
func NewContextWithBackend(b Backend) *Context {
	return &Context{backend: b}
}

// LoadModel loads the model file at path into the context. Any previously
// loaded model is released first, so a failed load always leaves the
// context unloaded rather than holding the prior model.
func (c *Context) LoadModel(path string) bool {
	if c == nil || path == "" {
		return false
	}
	if c.eng != nil {
		c.eng.free()
		c.eng = nil
	}
	eng := newEngine(c.backend)
	if !eng.load(path) {
		eng.free()
		return false
	}
	c.eng = eng
	return true
}

// IsModelLoaded reports whether the context currently owns a loaded model.
func (c *Context) IsModelLoaded() bool {
	return c != nil && c.eng != nil
}

// Transcribe runs one complete inference pass over samples and returns the
// full result. Samples are float32 PCM, mono, 16 kHz; no resampling or
// channel mixing happens here. A nil context, unloaded model, or empty
// sample buffer yields the zero Result without touching the engine.
func (c *Context) Transcribe(samples []float32, params Params) Result {
	if c == nil || c.eng == nil || len(samples) == 0 {
		return Result{}
	}

	start := time.Now()
	out := c.eng.batch(samples, params)
	return finishResult(out, start)
}

// TranscribeStreaming runs inference while delivering tokens to cb as they
// become available. A false return from cb stops further token delivery at
// the next token boundary; tokens already delivered (including the one cb
// rejected) are counted and kept in the result text. A nil cb is treated as
// a callback that always continues.
//
// When the vendor engine is active, streaming degrades to batch emulation:
// the full inference runs to completion and cb is invoked exactly once with
// the complete text, so a false return cannot stop work that has already
// finished.
func (c *Context) TranscribeStreaming(samples []float32, params Params, cb TokenCallback) Result {
	if c == nil || c.eng == nil || len(samples) == 0 {
		return Result{}
	}

	start := time.Now()
	out := c.eng.stream(samples, params, cb)
	return finishResult(out, start)
}

// Close releases the engine instance owned by the context, if any. It is a
// no-op on a nil or already-closed context. The context must not be used
// concurrently with Close.
func (c *Context) Close() {
	if c == nil {
		return
	}
	if c.eng != nil {
		c.eng.free()
		c.eng = nil
	}
}

func finishResult(out engineOutput, start time.Time) Result {
	res := Result{
		TokenCount: out.tokens,
		Success:    out.ok,
		DurationMS: float32(time.Since(start).Seconds() * 1000),
	}
	if out.ok {
		res.Text = out.text
	} else {
		// failed calls never carry text or token counts
		res.TokenCount = 0
	}
	return res
}
