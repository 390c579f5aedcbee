// Package pipeline adapts the teacher's ingest -> tokenize channel
// pipeline (root ingest.go/tokenize.go) into an optional buffered-
// channel front end: a way for a host to batch many Tokenize calls
// across goroutines without ever sharing a single lattice instance
// (spec §5's concurrency model).
package pipeline

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rspamd/kagome-go/token"
	"github.com/rspamd/kagome-go/tokenizer"
)

// ErrEmptySentence is returned when Ingest is given blank input.
var ErrEmptySentence = errors.New("pipeline: empty sentence")

// Sentence is an ingested unit of text awaiting tokenization.
type Sentence struct {
	ID        string
	Text      string
	CreatedAt time.Time
}

// Tokenized pairs a Sentence with its resulting tokens.
type Tokenized struct {
	Sentence Sentence
	Tokens   []token.Token
	Err      error
}

func generateID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

// Pipeline decouples ingestion from tokenization with two buffered
// channels: IngestChan carries sentences in, TokenizedChan carries
// results out. Each tokenization runs against a fresh lattice built
// from the shared, immutable *tokenizer.Tokenizer — never shared
// across the worker goroutines started by Start.
type Pipeline struct {
	tk            *tokenizer.Tokenizer
	mode          tokenizer.Mode
	IngestChan    chan Sentence
	TokenizedChan chan Tokenized
}

// New creates a Pipeline over tk with the given tokenization mode and
// the teacher's buffer size of 100 for both channels.
func New(tk *tokenizer.Tokenizer, mode tokenizer.Mode) *Pipeline {
	return &Pipeline{
		tk:            tk,
		mode:          mode,
		IngestChan:    make(chan Sentence, 100),
		TokenizedChan: make(chan Tokenized, 100),
	}
}

// Ingest trims and validates text, then publishes it to IngestChan
// asynchronously so the caller is never blocked by a full buffer.
func (p *Pipeline) Ingest(text string) (Sentence, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Sentence{}, ErrEmptySentence
	}
	s := Sentence{ID: generateID(), Text: trimmed, CreatedAt: time.Now().UTC()}

	go func(sent Sentence) {
		select {
		case p.IngestChan <- sent:
		default:
			// buffer full: the sentence is not published, so no
			// worker tokenizes it; the caller still holds the
			// Sentence value returned below.
		}
	}(s)

	return s, nil
}

// Start launches a worker goroutine that consumes Sentence values from
// IngestChan, tokenizes each with a fresh lattice, and publishes the
// result to TokenizedChan. It returns when ctx is done.
func (p *Pipeline) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case s := <-p.IngestChan:
				toks := p.tk.Analyze(s.Text, p.mode)
				select {
				case <-ctx.Done():
					return
				case p.TokenizedChan <- Tokenized{Sentence: s, Tokens: toks}:
				}
			}
		}
	}()
}

// StartPool launches n worker goroutines sharing the same IngestChan,
// for hosts that want to batch tokenization across multiple CPUs; the
// tokenizer itself is safe for this because every Analyze call builds
// its own Lattice (spec §5).
func (p *Pipeline) StartPool(ctx context.Context, n int) {
	for i := 0; i < n; i++ {
		p.Start(ctx)
	}
}
