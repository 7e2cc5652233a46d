package ipc

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
)

// Handler processes a received message. Return non-nil commands to submit
// a turn.
type Handler func(msg Message) (*TurnCommands, error)

// Connection is the algo's side of the engine's stdio protocol.
type Connection struct {
	in       *bufio.Scanner
	out      *bufio.Writer
	handlers map[string]Handler

	// Tap, when set, sees every raw line before it is dispatched.
	Tap func(kind string, raw []byte)
}

func NewConnection(r io.Reader, w io.Writer, handlers map[string]Handler) *Connection {
	if handlers == nil {
		handlers = make(map[string]Handler)
	}
	return &Connection{
		in:       newScanner(r),
		out:      bufio.NewWriter(w),
		handlers: handlers,
	}
}

func (c *Connection) RegisterHandler(kind string, handler Handler) {
	c.handlers[kind] = handler
}

// SendTurn writes both command lines and flushes so the engine sees them
// immediately.
func (c *Connection) SendTurn(tc TurnCommands) error {
	if err := WriteTurn(c.out, tc); err != nil {
		return err
	}
	return c.out.Flush()
}

// ReadLoop dispatches messages until the end-of-game message has been
// handled, the input closes, or ctx is cancelled. Handler errors are logged
// and the loop continues.
func (c *Connection) ReadLoop(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg, err := ReadMessage(c.in)
		if errors.Is(err, io.EOF) {
			slog.Info("engine closed input")
			return nil
		}
		if err != nil {
			slog.Error("bad protocol line", "error", err)
			if errors.Is(err, bufio.ErrTooLong) {
				return err
			}
			continue
		}
		if c.Tap != nil {
			c.Tap(msg.Kind, msg.Raw)
		}

		handler, ok := c.handlers[msg.Kind]
		if !ok {
			slog.Debug("no handler for message kind", "kind", msg.Kind)
		} else {
			resp, err := handler(msg)
			if err != nil {
				slog.Error("handler error", "kind", msg.Kind, "error", err)
			}
			if resp != nil {
				if err := c.SendTurn(*resp); err != nil {
					slog.Error("failed to send turn", "error", err)
					return err
				}
				slog.Debug("sent turn", "build", len(resp.Build), "deploy", len(resp.Deploy))
			}
		}

		if msg.Kind == KindEnd {
			return nil
		}
	}
}
