package ipc

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

const (
	configLine = `{"unitInformation": [{"shorthand": "FF"}], "resources": {}}`
	turnLine   = `{"turnInfo": [0, 1, -1], "p1Stats": [30, 40, 5], "p2Stats": [30, 40, 5]}`
	actionLine = `{"turnInfo": [1, 1, 0], "p1Stats": [30, 40, 5], "p2Stats": [30, 40, 5]}`
	endLine    = `{"turnInfo": [2, 9, -1], "p1Stats": [0, 0, 0], "p2Stats": [30, 0, 0]}`
)

func TestClassify(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{configLine, KindConfig},
		{turnLine, KindTurn},
		{actionLine, KindAction},
		{endLine, KindEnd},
	}
	for _, tc := range tests {
		got, err := Classify([]byte(tc.line))
		if err != nil {
			t.Fatalf("Classify(%s): %v", tc.line, err)
		}
		if got != tc.want {
			t.Errorf("Classify(%s) = %q, want %q", tc.line, got, tc.want)
		}
	}

	for _, bad := range []string{`{"turnInfo": [7]}`, `{}`, `not json`} {
		if _, err := Classify([]byte(bad)); err == nil {
			t.Errorf("Classify(%s) succeeded, want error", bad)
		}
	}
}

func TestWriteTurn(t *testing.T) {
	var buf bytes.Buffer
	tc := TurnCommands{Build: []Command{{Type: "DF", X: 23, Y: 11}, {Type: "RM", X: 0, Y: 13}}}
	if err := WriteTurn(&buf, tc); err != nil {
		t.Fatalf("WriteTurn: %v", err)
	}
	want := "[[\"DF\",23,11],[\"RM\",0,13]]\n[]\n"
	if buf.String() != want {
		t.Errorf("WriteTurn wrote %q, want %q", buf.String(), want)
	}
}

func TestReadLoopDispatch(t *testing.T) {
	input := strings.Join([]string{configLine, "", turnLine, "garbage", actionLine, endLine, turnLine}, "\n")
	var out bytes.Buffer
	c := NewConnection(strings.NewReader(input), &out, nil)

	var seen []string
	c.RegisterHandler(KindConfig, func(msg Message) (*TurnCommands, error) {
		seen = append(seen, msg.Kind)
		return nil, nil
	})
	c.RegisterHandler(KindTurn, func(msg Message) (*TurnCommands, error) {
		seen = append(seen, msg.Kind)
		return &TurnCommands{Deploy: []Command{{Type: "PI", X: 13, Y: 0}}}, nil
	})
	c.RegisterHandler(KindEnd, func(msg Message) (*TurnCommands, error) {
		seen = append(seen, msg.Kind)
		return nil, nil
	})
	var tapped int
	c.Tap = func(string, []byte) { tapped++ }

	if err := c.ReadLoop(context.Background()); err != nil {
		t.Fatalf("ReadLoop: %v", err)
	}

	want := []string{KindConfig, KindTurn, KindEnd}
	if strings.Join(seen, ",") != strings.Join(want, ",") {
		t.Errorf("handled %v, want %v", seen, want)
	}
	if tapped != 4 {
		t.Errorf("tap saw %d lines, want 4", tapped)
	}
	if got := out.String(); got != "[]\n[[\"PI\",13,0]]\n" {
		t.Errorf("output = %q", got)
	}
}

func TestCommandRoundTrip(t *testing.T) {
	var c Command
	if err := c.UnmarshalJSON([]byte(`["EF", 14, 5]`)); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if c.String() != "EF@14,5" {
		t.Errorf("decoded %s, want EF@14,5", c)
	}
	if err := c.UnmarshalJSON([]byte(`["EF", 14]`)); err == nil {
		t.Error("UnmarshalJSON accepted a two-field command")
	}
}
