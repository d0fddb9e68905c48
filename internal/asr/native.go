//go:build qwenasr

package asr

/*
#cgo CFLAGS: -I${SRCDIR}/../../third_party/qwen3-asr.cpp/include
#cgo CXXFLAGS: -std=c++17 -I${SRCDIR}/../../third_party/qwen3-asr.cpp/include
#cgo LDFLAGS: -L${SRCDIR}/../../third_party/qwen3-asr.cpp/build -lqwen3_asr -lstdc++ -lm

#include <stdlib.h>
#include "qwen3_asr_c.h"

bool qwenvoiceGoToken(const char* token, void* user_data);
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"
)

// NativeAvailable reports whether the vendor engine was compiled in.
func NativeAvailable() bool { return true }

// defaultThreads is substituted when Params.Threads <= 0. The vendor engine
// does not detect hardware concurrency.
const defaultThreads = 4

// nativeEngine wraps the qwen3-asr C context. The vendor library only
// exposes a full-result API, so streaming is batch-emulated: inference runs
// to completion and the callback fires once with the complete text.
type nativeEngine struct {
	ctx *C.qwen3_asr_context
}

func newNativeEngine() engine {
	return &nativeEngine{ctx: C.qwen3_asr_init()}
}

func (e *nativeEngine) load(path string) bool {
	if e.ctx == nil {
		return false
	}
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))
	return bool(C.qwen3_asr_load_model(e.ctx, cPath))
}

func (e *nativeEngine) batch(samples []float32, params Params) engineOutput {
	if e.ctx == nil {
		return engineOutput{}
	}
	res := C.qwen3_asr_transcribe(
		e.ctx,
		(*C.float)(unsafe.Pointer(&samples[0])),
		C.int32_t(len(samples)),
		cParams(params),
	)
	return collectOutput(res)
}

func (e *nativeEngine) stream(samples []float32, params Params, cb TokenCallback) engineOutput {
	if e.ctx == nil {
		return engineOutput{}
	}

	handle := cgo.NewHandle(cb)
	defer handle.Delete()

	res := C.qwen3_asr_transcribe_streaming(
		e.ctx,
		(*C.float)(unsafe.Pointer(&samples[0])),
		C.int32_t(len(samples)),
		cParams(params),
		(C.qwen3_asr_token_callback)(C.qwenvoiceGoToken),
		unsafe.Pointer(&handle),
	)
	return collectOutput(res)
}

func (e *nativeEngine) free() {
	if e.ctx != nil {
		C.qwen3_asr_free(e.ctx)
		e.ctx = nil
	}
}

func cParams(p Params) C.struct_qwen3_asr_params {
	threads := p.Threads
	if threads <= 0 {
		threads = defaultThreads
	}
	return C.struct_qwen3_asr_params{
		n_threads:   C.int32_t(threads),
		use_gpu:     C.bool(p.UseGPU),
		gpu_device:  C.int32_t(p.GPUDevice),
		temperature: C.float(p.Temperature),
	}
}

// collectOutput copies the C result into Go memory and releases the
// C-owned text. This is the one place the manual free contract survives.
func collectOutput(res C.struct_qwen3_asr_result) engineOutput {
	out := engineOutput{
		tokens: int32(res.n_tokens),
		ok:     bool(res.success),
	}
	if res.text != nil {
		out.text = C.GoString(res.text)
		C.qwen3_asr_free_text(res.text)
	}
	return out
}

// qwenvoiceGoToken bridges the C token callback to the Go TokenCallback
// stored behind a cgo handle. The token pointer is only valid for the
// duration of the call, so it is copied before the callback sees it.
//
//export qwenvoiceGoToken
func qwenvoiceGoToken(token *C.char, userData unsafe.Pointer) C.bool {
	if token == nil || userData == nil {
		return C.bool(false)
	}
	handle := *(*cgo.Handle)(userData)
	cb, ok := handle.Value().(TokenCallback)
	if !ok || cb == nil {
		return C.bool(true)
	}
	return C.bool(cb(C.GoString(token)))
}
