// Package tokenizer exposes the public Go API tying the dictionary,
// lattice builder, and Viterbi engine together: New, Tokenize, Wakati,
// and a structural Debug dump.
package tokenizer

import (
	"github.com/rspamd/kagome-go/dict"
	"github.com/rspamd/kagome-go/lattice"
	"github.com/rspamd/kagome-go/token"
)

// Mode re-exports lattice.Mode so callers don't need to import the
// lattice package directly for ordinary tokenization.
type Mode = lattice.Mode

const (
	Normal   = lattice.ModeNormal
	Search   = lattice.ModeSearch
	Extended = lattice.ModeExtended
)

// Config mirrors the C++ TokenizerConfig: whether BOS/EOS sentinels are
// omitted from output, and the mode used by Tokenize when none is given
// explicitly.
type Config struct {
	OmitBosEos  bool
	DefaultMode Mode
}

// DefaultConfig matches the C++ original's defaults: BOS/EOS are NOT
// omitted, and the default mode is Normal.
func DefaultConfig() Config {
	return Config{OmitBosEos: false, DefaultMode: Normal}
}

// Tokenizer ties an immutable dictionary (and optional user dictionary)
// to a tokenization configuration. Safe for concurrent use across
// goroutines: each call to Tokenize builds its own Lattice (spec §5 —
// "a lattice instance is not safe for concurrent use" is an internal
// detail, never shared across calls).
type Tokenizer struct {
	dict   *dict.Dict
	user   *dict.UserDict
	config Config
}

// New creates a Tokenizer over d with no user dictionary and the
// default configuration.
func New(d *dict.Dict) *Tokenizer {
	return &Tokenizer{dict: d, config: DefaultConfig()}
}

// NewWithConfig creates a Tokenizer over d, an optional user dictionary,
// and an explicit configuration.
func NewWithConfig(d *dict.Dict, user *dict.UserDict, cfg Config) *Tokenizer {
	return &Tokenizer{dict: d, user: user, config: cfg}
}

// SetUserDict attaches or replaces the user dictionary consulted first
// at lattice-build time.
func (tk *Tokenizer) SetUserDict(user *dict.UserDict) {
	tk.user = user
}

// Tokenize analyzes input using the tokenizer's default mode.
func (tk *Tokenizer) Tokenize(input string) []token.Token {
	return tk.Analyze(input, tk.config.DefaultMode)
}

// Analyze tokenizes input using the given mode.
func (tk *Tokenizer) Analyze(input string, mode Mode) []token.Token {
	l := lattice.Build(tk.dict, tk.user, []byte(input))
	lattice.Forward(l, tk.dict, mode)
	nodes := lattice.Backward(l, mode)
	if len(nodes) == 0 {
		return nil
	}

	out := make([]token.Token, 0, len(nodes))
	for i := range nodes {
		n := nodes[i]
		if n.IsBosEos() && tk.config.OmitBosEos {
			continue
		}
		out = append(out, token.FromNode(&n, tk.dict, tk.user))
	}
	return out
}

// Wakati returns only the surface strings of a Normal-mode analysis,
// omitting BOS/EOS regardless of configuration (Wakati output is
// conventionally surfaces only).
func (tk *Tokenizer) Wakati(input string) []string {
	l := lattice.Build(tk.dict, tk.user, []byte(input))
	lattice.Forward(l, tk.dict, Normal)
	nodes := lattice.Backward(l, Normal)

	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if n.IsBosEos() {
			continue
		}
		out = append(out, string(n.Surface))
	}
	return out
}

// LatticeDump is a structural, non-graphical dump of a tokenization's
// lattice, supplementing the C++ original's analyze_graph without
// pulling in a DOT-rendering dependency (spec SUPPLEMENTED FEATURES
// item 5; DOT export itself stays out of scope).
type LatticeDump struct {
	Buckets []BucketDump
}

// BucketDump is one bucket's worth of candidate nodes.
type BucketDump struct {
	CharPosition int
	Nodes        []NodeDump
}

// NodeDump is one candidate node's diagnostic fields.
type NodeDump struct {
	Surface string
	Class   string
	Cost    int64
}

// Debug builds the lattice and runs the forward pass, then returns a
// structural snapshot of every candidate and its accumulated cost —
// useful for tests. The kagome CLI does not expose it.
func (tk *Tokenizer) Debug(input string, mode Mode) LatticeDump {
	l := lattice.Build(tk.dict, tk.user, []byte(input))
	lattice.Forward(l, tk.dict, mode)

	dump := LatticeDump{Buckets: make([]BucketDump, len(l.Buckets))}
	for i, bucket := range l.Buckets {
		bd := BucketDump{CharPosition: i}
		for _, idx := range bucket {
			n := l.Node(idx)
			bd.Nodes = append(bd.Nodes, NodeDump{
				Surface: string(n.Surface),
				Class:   n.Class.String(),
				Cost:    n.Cost,
			})
		}
		dump.Buckets[i] = bd
	}
	return dump
}
