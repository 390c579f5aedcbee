// Package capi implements the stable C ABI (spec §6.1) that lets a
// host mail filter embed this tokenizer: cgo-exported init/deinit,
// language detection, tokenize, and cleanup entry points over bit-exact
// word/words_t structs.
package capi

/*
#include <stddef.h>
#include <stdint.h>
#include <stdlib.h>
#include <string.h>

typedef struct ftok {
	size_t len;
	const char *begin;
} ftok;

typedef struct ftok_unicode {
	size_t len;
	const uint32_t *begin;
} ftok_unicode;

typedef struct word {
	ftok original;
	ftok_unicode unicode;
	ftok normalized;
	ftok stemmed;
	unsigned int flags;
} word;

typedef struct words_t {
	size_t n;
	size_t m;
	word *a;
} words_t;
*/
import "C"

import (
	"bytes"
	"sync/atomic"
	"unsafe"

	"github.com/rspamd/kagome-go/config"
	"github.com/rspamd/kagome-go/dict"
	"github.com/rspamd/kagome-go/lang"
	"github.com/rspamd/kagome-go/token"
	"github.com/rspamd/kagome-go/tokenizer"
)

// Word flag bits, bit-exact with the host's rspamd_word_t flags (spec
// §6.1).
const (
	FlagText            = 1 << 0
	FlagMeta            = 1 << 1
	FlagLuaMeta         = 1 << 2
	FlagException       = 1 << 3
	FlagHeader          = 1 << 4
	FlagUnigram         = 1 << 5
	FlagUTF             = 1 << 6
	FlagNormalised      = 1 << 7
	FlagStemmed         = 1 << 8
	FlagBrokenUnicode   = 1 << 9
	FlagStopWord        = 1 << 10
	FlagSkipped         = 1 << 11
	FlagInvisibleSpaces = 1 << 12
	FlagEmoji           = 1 << 13
)

type tokenizerState struct {
	tk *tokenizer.Tokenizer
}

// current holds the live tokenizer handle. Double-init without an
// intervening deinit is rejected (spec §5's documented discipline: an
// atomic compare-and-swap that only stores into an empty handle).
var current atomic.Pointer[tokenizerState]

func writeErr(buf *C.char, bufLen C.size_t, msg string) {
	if buf == nil || bufLen == 0 {
		return
	}
	max := int(bufLen) - 1
	if max < 0 {
		max = 0
	}
	if len(msg) > max {
		msg = msg[:max]
	}
	dst := (*[1 << 30]byte)(unsafe.Pointer(buf))[:bufLen:bufLen]
	n := copy(dst, msg)
	dst[n] = 0
}

//export kagome_init
func kagome_init(cfg unsafe.Pointer, errBuf *C.char, errBufLen C.size_t) C.int {
	if current.Load() != nil {
		writeErr(errBuf, errBufLen, "kagome_init: already initialized; call kagome_deinit first")
		return -1
	}

	var d *dict.Dict
	path, ok := config.ResolveDictPath()
	if ok {
		loaded, err := dict.LoadBundleFile(path)
		if err == nil {
			d = loaded
		}
	}
	if d == nil {
		d = dict.NewFallbackDict()
		writeErr(errBuf, errBufLen, "kagome_init: no dictionary bundle found, using fallback dictionary")
	}

	if !current.CompareAndSwap(nil, &tokenizerState{tk: tokenizer.New(d)}) {
		writeErr(errBuf, errBufLen, "kagome_init: already initialized; call kagome_deinit first")
		return -1
	}
	return 0
}

//export kagome_deinit
func kagome_deinit() {
	current.Store(nil)
}

//export kagome_detect_language
func kagome_detect_language(text *C.char, length C.size_t) C.double {
	if text == nil || length == 0 {
		return C.double(-1.0)
	}
	b := C.GoBytes(unsafe.Pointer(text), C.int(length))
	return C.double(lang.DetectLanguage(b))
}

//export kagome_get_language_hint
func kagome_get_language_hint() *C.char {
	return C.CString("ja")
}

//export kagome_get_min_confidence
func kagome_get_min_confidence() C.double {
	return C.double(lang.MinConfidence)
}

type located struct {
	tok   token.Token
	start int
}

// locateAll re-finds each token's surface in the original input buffer,
// scanning forward from a monotonically-advancing search position so
// repeated surfaces resolve to successive occurrences rather than all
// collapsing onto the first match. Tokens that cannot be relocated
// (pathological segmentation) are dropped, per spec §6.1.
func locateAll(input []byte, toks []token.Token) []located {
	out := make([]located, 0, len(toks))
	searchStart := 0
	for _, tok := range toks {
		surface := tok.Surface
		if len(surface) == 0 {
			continue
		}
		if searchStart > len(input)-len(surface) {
			continue
		}
		idx := bytes.Index(input[searchStart:], surface)
		if idx < 0 {
			continue
		}
		pos := searchStart + idx
		out = append(out, located{tok: tok, start: pos})
		searchStart = pos + len(surface)
	}
	return out
}

func wordFlags(tok token.Token) (flags C.uint, omitUnicode bool) {
	flags = C.uint(FlagText | FlagUTF | FlagNormalised)
	pos := tok.POS()
	if len(pos) == 0 {
		return flags, false
	}
	switch pos[0] {
	case "記号":
		flags |= C.uint(FlagException)
		omitUnicode = true
	case "助詞", "助動詞":
		flags |= C.uint(FlagStopWord)
	}
	return flags, omitUnicode
}

//export kagome_tokenize
func kagome_tokenize(text *C.char, length C.size_t, out *C.words_t) C.int {
	state := current.Load()
	if state == nil || text == nil || length == 0 || out == nil {
		return -1
	}

	input := C.GoBytes(unsafe.Pointer(text), C.int(length))
	toks := state.tk.Tokenize(string(input))
	valid := locateAll(input, toks)

	if len(valid) == 0 {
		out.a = nil
		out.n = 0
		out.m = 0
		return 0
	}

	arr := C.calloc(C.size_t(len(valid)), C.size_t(unsafe.Sizeof(C.word{})))
	if arr == nil {
		return -1
	}
	words := (*[1 << 28]C.word)(arr)[:len(valid):len(valid)]

	for i, lv := range valid {
		w := &words[i]
		surfaceBase := unsafe.Pointer(text)
		w.original.begin = (*C.char)(unsafe.Add(surfaceBase, lv.start))
		w.original.len = C.size_t(len(lv.tok.Surface))

		flags, omitUnicode := wordFlags(lv.tok)
		w.flags = flags

		if !omitUnicode {
			runes := []rune(string(lv.tok.Surface))
			if len(runes) > 0 {
				u32 := C.malloc(C.size_t(len(runes)) * C.size_t(unsafe.Sizeof(C.uint32_t(0))))
				if u32 != nil {
					dst := (*[1 << 28]C.uint32_t)(u32)[:len(runes):len(runes)]
					for j, r := range runes {
						dst[j] = C.uint32_t(r)
					}
					w.unicode.begin = (*C.uint32_t)(u32)
					w.unicode.len = C.size_t(len(runes))
				}
			}
		}

		normalized := lv.tok.BaseForm()
		if normalized == "" || normalized == "*" {
			normalized = string(lv.tok.Surface)
		}
		w.normalized.begin = C.CString(normalized)
		w.normalized.len = C.size_t(len(normalized))
		w.stemmed.begin = C.CString(normalized)
		w.stemmed.len = C.size_t(len(normalized))
	}

	out.a = (*C.word)(arr)
	out.n = C.size_t(len(valid))
	out.m = C.size_t(len(valid))
	return 0
}

//export kagome_cleanup_result
func kagome_cleanup_result(out *C.words_t) {
	if out == nil || out.a == nil {
		return
	}
	words := (*[1 << 28]C.word)(unsafe.Pointer(out.a))[:out.n:out.n]
	for i := range words {
		w := &words[i]
		// original.begin always points into the caller's text buffer
		// and must never be freed here.
		if w.unicode.begin != nil {
			C.free(unsafe.Pointer(w.unicode.begin))
			w.unicode.begin = nil
		}
		if w.normalized.begin != nil {
			C.free(unsafe.Pointer(w.normalized.begin))
			w.normalized.begin = nil
		}
		if w.stemmed.begin != nil {
			C.free(unsafe.Pointer(w.stemmed.begin))
			w.stemmed.begin = nil
		}
	}
	C.free(unsafe.Pointer(out.a))
	out.a = nil
	out.n = 0
	out.m = 0
}
