package solver

import (
	"bufio"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

//////
// Const, vars, types.
//////

// json is the codec used for all driver messages.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MessageType discriminates the driver protocol messages.
type MessageType string

const (
	// TypeHello asks the solver to announce its capabilities.
	TypeHello MessageType = "hello"

	// TypeCapabilities is the reply to TypeHello.
	TypeCapabilities MessageType = "capabilities"

	// TypeCreate creates a solver session for a search space.
	TypeCreate MessageType = "create"

	// TypeAsk requests the next parameter values for a trial.
	TypeAsk MessageType = "ask"

	// TypeAskReply carries the proposed parameter values.
	TypeAskReply MessageType = "ask_reply"

	// TypeTell reports the objective value observed for a trial.
	TypeTell MessageType = "tell"

	// TypeTellReply acknowledges a TypeTell.
	TypeTellReply MessageType = "tell_reply"

	// TypeDrop discards a solver session.
	TypeDrop MessageType = "drop"

	// TypeError is the reply to any message the solver could not serve.
	TypeError MessageType = "error"
)

// Capabilities lists the variable kinds this solver implements, announced
// in the capabilities reply.
var Capabilities = []string{
	string(KindUniform),
	string(KindLogUniform),
	string(KindDiscrete),
	string(KindCategorical),
}

// Message is the single envelope exchanged with the driver, one JSON object
// per line. Only the fields relevant to the given Type are populated.
type Message struct {
	Type MessageType `json:"type"`

	// SolverID routes create/ask/tell/drop to a session. Assigned by the
	// driver; opaque to the solver.
	SolverID uint64 `json:"solver_id,omitempty"`

	// TrialID joins an ask with the matching tell. Assigned by the driver.
	TrialID uint64 `json:"trial_id,omitempty"`

	// Seed seeds the session's random number generator (create only).
	Seed uint64 `json:"seed,omitempty"`

	// Variables declares the search space (create only).
	Variables []VariableDomain `json:"variables,omitempty"`

	// Params carries native-domain parameter values, one per variable
	// (ask_reply only).
	Params []float64 `json:"params,omitempty"`

	// Value is the observed objective value (tell only).
	Value float64 `json:"value,omitempty"`

	// Capabilities lists the supported variable kinds (capabilities only).
	Capabilities []string `json:"capabilities,omitempty"`

	// Error describes why a request failed (error only).
	Error string `json:"error,omitempty"`
}

// MessageReader decodes driver messages from a stream, one JSON object per
// line.
type MessageReader struct {
	scanner *bufio.Scanner
}

// MessageWriter encodes solver messages to a stream, one JSON object per
// line.
type MessageWriter struct {
	w io.Writer
}

//////
// Methods.
//////

// Next reads and decodes the next message. It returns io.EOF once the
// stream is exhausted.
func (r *MessageReader) Next() (Message, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return Message{}, fmt.Errorf("failed to read message: %w", err)
		}

		return Message{}, io.EOF
	}

	var msg Message
	if err := json.Unmarshal(r.scanner.Bytes(), &msg); err != nil {
		return Message{}, fmt.Errorf("failed to decode message: %w", err)
	}

	return msg, nil
}

// Write encodes and writes one message followed by a newline.
func (w *MessageWriter) Write(msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	if _, err := w.w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

//////
// Factory.
//////

// NewMessageReader creates a reader of line-delimited JSON messages.
func NewMessageReader(r io.Reader) *MessageReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	return &MessageReader{scanner: scanner}
}

// NewMessageWriter creates a writer of line-delimited JSON messages.
func NewMessageWriter(w io.Writer) *MessageWriter {
	return &MessageWriter{w: w}
}
