package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// KindMeta tags the recording header that carries the doctrine and seed the
// match was played with.
const KindMeta = "meta"

// Entry is one recorded line.
type Entry struct {
	Seq  int             `json:"seq"`
	Kind string          `json:"kind"`
	Line json.RawMessage `json:"line"`
}

// Meta is the payload of the KindMeta entry.
type Meta struct {
	Doctrine string `json:"doctrine"`
	Seed     int64  `json:"seed"`
}

// Recorder appends protocol lines to a zstd-compressed JSONL file.
type Recorder struct {
	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
	seq int
}

func NewRecorder(path string) (*Recorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Recorder{f: f, enc: enc, w: bufio.NewWriterSize(enc, 128*1024)}, nil
}

// WriteMeta records the header entry.
func (r *Recorder) WriteMeta(m Meta) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return r.Write(KindMeta, b)
}

// Write appends one line. raw must be a JSON document.
func (r *Recorder) Write(kind string, raw []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.w == nil {
		return fmt.Errorf("recorder closed")
	}

	r.seq++
	b, err := json.Marshal(Entry{Seq: r.seq, Kind: kind, Line: raw})
	if err != nil {
		return err
	}
	if _, err := r.w.Write(b); err != nil {
		return err
	}
	return r.w.WriteByte('\n')
}

// Close flushes and finalises the zstd frame. The file is unreadable until
// Close has run.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err1 error
	if r.w != nil {
		err1 = r.w.Flush()
		r.w = nil
	}
	if r.enc != nil {
		if err := r.enc.Close(); err1 == nil {
			err1 = err
		}
		r.enc = nil
	}
	if r.f != nil {
		if err := r.f.Close(); err1 == nil {
			err1 = err
		}
		r.f = nil
	}
	return err1
}

// ReadRecording streams the entries of a recording to fn in order. It
// stops at the first error fn returns.
func ReadRecording(path string, fn func(Entry) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), 8<<20)
	for sc.Scan() {
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return fmt.Errorf("recording %s: %w", path, err)
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return sc.Err()
}
