package solver

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
)

//////
// Const, vars, types.
//////

// ErrUnknownSolver is returned when a message references a solver id with no
// live session.
var ErrUnknownSolver = errors.New("solver: unknown solver")

// ErrUnexpectedMessage is returned for message types the solver cannot
// route.
var ErrUnexpectedMessage = errors.New("solver: unexpected message type")

// Handler multiplexes driver messages across solver sessions.
//
// One handler serves one driver connection. Sessions are created by create
// messages, routed by their driver-assigned solver id, and discarded on
// drop. The handler is single-threaded: the message loop fully processes
// one message before reading the next, which also serializes access to
// every session.
type Handler struct {
	config   Config
	logger   *zap.Logger
	sessions map[uint64]*Session
}

//////
// Methods.
//////

// Handle processes one decoded message and returns the reply to send.
// The second return value is false for cast messages (create, drop), which
// have no reply.
//
// Failures never propagate as Go errors to the message loop: they are
// turned into error replies carrying the failing detail, so a misbehaving
// driver cannot take the solver down.
func (h *Handler) Handle(msg Message) (Message, bool) {
	switch msg.Type {
	case TypeHello:
		return Message{Type: TypeCapabilities, Capabilities: Capabilities}, true

	case TypeCreate:
		session, err := NewSession(h.config, msg.Variables, msg.Seed)
		if err != nil {
			h.logger.Warn("create failed",
				zap.Uint64("solver_id", msg.SolverID), zap.Error(err))

			return errorReply(msg, err), true
		}

		h.sessions[msg.SolverID] = session
		h.logger.Info("session created",
			zap.Uint64("solver_id", msg.SolverID),
			zap.Int("variables", len(msg.Variables)))

		return Message{}, false

	case TypeAsk:
		session, ok := h.sessions[msg.SolverID]
		if !ok {
			return errorReply(msg, fmt.Errorf("%w: %d", ErrUnknownSolver, msg.SolverID)), true
		}

		params, err := session.Ask(msg.TrialID)
		if err != nil {
			h.logger.Warn("ask failed",
				zap.Uint64("solver_id", msg.SolverID),
				zap.Uint64("trial_id", msg.TrialID), zap.Error(err))

			return errorReply(msg, err), true
		}

		return Message{
			Type:     TypeAskReply,
			SolverID: msg.SolverID,
			TrialID:  msg.TrialID,
			Params:   params,
		}, true

	case TypeTell:
		session, ok := h.sessions[msg.SolverID]
		if !ok {
			return errorReply(msg, fmt.Errorf("%w: %d", ErrUnknownSolver, msg.SolverID)), true
		}

		if err := session.Tell(msg.TrialID, msg.Value); err != nil {
			h.logger.Warn("tell failed",
				zap.Uint64("solver_id", msg.SolverID),
				zap.Uint64("trial_id", msg.TrialID), zap.Error(err))

			return errorReply(msg, err), true
		}

		return Message{
			Type:     TypeTellReply,
			SolverID: msg.SolverID,
			TrialID:  msg.TrialID,
		}, true

	case TypeDrop:
		delete(h.sessions, msg.SolverID)
		h.logger.Info("session dropped", zap.Uint64("solver_id", msg.SolverID))

		return Message{}, false

	default:
		return errorReply(msg, fmt.Errorf("%w: %q", ErrUnexpectedMessage, msg.Type)), true
	}
}

// Run decodes messages from r and writes replies to w until r is exhausted.
//
// Undecodable input produces an error reply and the loop continues; only a
// transport failure (read or write error) stops the loop.
func (h *Handler) Run(r io.Reader, w io.Writer) error {
	reader := NewMessageReader(r)
	writer := NewMessageWriter(w)

	for {
		msg, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			h.logger.Warn("bad message", zap.Error(err))

			if werr := writer.Write(errorReply(Message{}, err)); werr != nil {
				return werr
			}

			continue
		}

		reply, ok := h.Handle(msg)
		if !ok {
			continue
		}

		if err := writer.Write(reply); err != nil {
			return err
		}
	}
}

//////
// Factory.
//////

// NewHandler creates a handler with no live sessions.
func NewHandler(config Config, logger *zap.Logger) *Handler {
	return &Handler{
		config:   config,
		logger:   logger,
		sessions: make(map[uint64]*Session),
	}
}

//////
// Helper functions.
//////

// errorReply builds the error reply for a failed request, echoing the ids
// so the driver can correlate it.
func errorReply(msg Message, err error) Message {
	return Message{
		Type:     TypeError,
		SolverID: msg.SolverID,
		TrialID:  msg.TrialID,
		Error:    err.Error(),
	}
}
