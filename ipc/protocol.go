package ipc

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Frames with a full board can run to a few hundred kilobytes.
const maxLineSize = 4 << 20

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	return sc
}

// ReadMessage reads the next non-blank line and classifies it. It returns
// io.EOF when the input is exhausted.
func ReadMessage(sc *bufio.Scanner) (Message, error) {
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		kind, err := Classify(line)
		if err != nil {
			return Message{}, fmt.Errorf("classify: %w", err)
		}
		raw := make(json.RawMessage, len(line))
		copy(raw, line)
		return Message{Kind: kind, Raw: raw}, nil
	}
	if err := sc.Err(); err != nil {
		return Message{}, fmt.Errorf("read line: %w", err)
	}
	return Message{}, io.EOF
}

// WriteTurn writes the build line followed by the deploy line. Empty stacks
// are sent as [] rather than null.
func WriteTurn(w io.Writer, tc TurnCommands) error {
	for _, line := range [][]Command{tc.Build, tc.Deploy} {
		if line == nil {
			line = []Command{}
		}
		payload, err := json.Marshal(line)
		if err != nil {
			return fmt.Errorf("marshal commands: %w", err)
		}
		payload = append(payload, '\n')
		if _, err := w.Write(payload); err != nil {
			return fmt.Errorf("write commands: %w", err)
		}
	}
	return nil
}
