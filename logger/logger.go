// Package logger repoints the teacher's InitLogs/LogJSON pair at
// tokenization sessions: one JSON file per analyzed sentence, holding
// its surface/POS/reading token dump.
package logger

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rspamd/kagome-go/token"
)

func InitLogs(path string) error {
	// Clear all .json files in the logs directory
	files, err := os.ReadDir(path)
	if err != nil {
		return err
	}
	for _, f := range files {
		if !f.IsDir() && len(f.Name()) > 5 && f.Name()[len(f.Name())-5:] == ".json" {
			_ = os.Remove(path + "/" + f.Name())
		}
	}
	return nil
}

func LogJSON(path, id string, data interface{}) error {
	file := fmt.Sprintf("%s/%s.json", path, id)
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, bytes, 0644)
}

// SessionRecord is one tokenization call's JSON log record: the
// originating sentence id and text, plus its token snapshots.
type SessionRecord struct {
	SentenceID string            `json:"sentence_id"`
	Text       string            `json:"text"`
	Tokens     []token.TokenData `json:"tokens"`
}

// LogSession flattens toks into a SessionRecord and writes it to
// path/sentenceID.json via LogJSON; `kagome batch --log-dir` calls it
// once per tokenized sentence.
func LogSession(path, sentenceID, text string, toks []token.Token) error {
	rec := SessionRecord{SentenceID: sentenceID, Text: text}
	rec.Tokens = make([]token.TokenData, len(toks))
	for i, tok := range toks {
		rec.Tokens[i] = tok.Snapshot()
	}
	return LogJSON(path, sentenceID, rec)
}
