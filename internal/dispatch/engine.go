// Package dispatch turns inbound requests into handler calls and responses.
//
// Each message goes through receive, decode, handle, classify, respond and
// settle. The inbound message is completed only after its response has been
// sent. Messages that cannot be decoded or answered are abandoned so that
// the broker redelivers them.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync/atomic"

	"github.com/iudanet/matchsync/internal/matcherr"
	"github.com/iudanet/matchsync/internal/transport"
	"github.com/iudanet/matchsync/pkg/api"
)

// Outcome is how an inbound message was settled
type Outcome int

const (
	// OutcomeCompleted the message was answered (or swallowed) and completed
	OutcomeCompleted Outcome = iota
	// OutcomeAbandoned the message was left for redelivery
	OutcomeAbandoned
)

func (o Outcome) String() string {
	if o == OutcomeAbandoned {
		return "abandoned"
	}
	return "completed"
}

// Stats counts processed messages
type Stats struct {
	Received       int64 `json:"received"`
	Succeeded      int64 `json:"succeeded"`
	Failed         int64 `json:"failed"`
	Unhandled      int64 `json:"unhandled"`
	Swallowed      int64 `json:"swallowed"`
	Abandoned      int64 `json:"abandoned"`
	CompleteFailed int64 `json:"complete_failed"`
}

type counters struct {
	received       atomic.Int64
	succeeded      atomic.Int64
	failed         atomic.Int64
	unhandled      atomic.Int64
	swallowed      atomic.Int64
	abandoned      atomic.Int64
	completeFailed atomic.Int64
}

// Engine dispatches requests to a Handler and sends responses
type Engine struct {
	handler   Handler
	responses transport.Sender
	logger    *slog.Logger
	counters  counters
	mode      Mode
}

// Option configures an Engine
type Option func(*Engine)

// WithMode sets the engine mode
func WithMode(mode Mode) Option {
	return func(e *Engine) {
		e.mode = mode
	}
}

// NewEngine creates an engine sending responses through responses
func NewEngine(handler Handler, responses transport.Sender, logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		handler:   handler,
		responses: responses,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Mode returns the engine mode
func (e *Engine) Mode() Mode {
	return e.mode
}

// Stats returns a snapshot of the counters
func (e *Engine) Stats() Stats {
	return Stats{
		Received:       e.counters.received.Load(),
		Succeeded:      e.counters.succeeded.Load(),
		Failed:         e.counters.failed.Load(),
		Unhandled:      e.counters.unhandled.Load(),
		Swallowed:      e.counters.swallowed.Load(),
		Abandoned:      e.counters.abandoned.Load(),
		CompleteFailed: e.counters.completeFailed.Load(),
	}
}

// panicError carries a recovered handler panic
type panicError struct {
	value any
	stack []byte
}

func (p *panicError) Error() string {
	return fmt.Sprintf("panic: %v\n%s", p.value, p.stack)
}

// ProcessRequest calls the handler selected by the request type and builds the response.
// It returns nil only when the handler failure is swallowed in ModeTest.
func (e *Engine) ProcessRequest(ctx context.Context, req *api.Request) *api.Response {
	resp := api.NewSuccessResponse(req)
	if err := e.invoke(ctx, req, resp); err != nil {
		return e.failure(req, err)
	}
	e.counters.succeeded.Add(1)
	e.logger.Debug("Request handled",
		"process_id", req.ProcessID,
		"request_type", req.RequestType,
		"key", req.Key.String(),
	)
	return resp
}

func (e *Engine) invoke(ctx context.Context, req *api.Request, resp *api.Response) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r, stack: debug.Stack()}
		}
	}()

	switch req.RequestType {
	case api.RequestGet:
		data, err := e.handler.Get(ctx, req.Key)
		if err != nil {
			return err
		}
		resp.Data = data
	case api.RequestUpdate:
		return e.handler.Update(ctx, req.Key, req.Data)
	case api.RequestCreate:
		key, err := e.handler.Create(ctx, req.Key, req.Data)
		if err != nil {
			return err
		}
		if key.ClientName == "" {
			key.ClientName = req.Key.ClientName
		}
		if key.EntityName == "" {
			key.EntityName = req.Key.EntityName
		}
		// идентификатор резервирования хаба возвращается без изменений
		key.ReservationID = req.Key.ReservationID
		resp.Key = key
	default:
		return matcherr.NotImplemented("request type %q is not supported", req.RequestType)
	}
	return nil
}

// failure classifies a handler error
func (e *Engine) failure(req *api.Request, err error) *api.Response {
	log := e.logger.With(
		"process_id", req.ProcessID,
		"request_type", req.RequestType,
		"key", req.Key.String(),
	)

	if e.mode == ModeTest && errors.Is(err, ErrSilentFail) {
		e.counters.swallowed.Add(1)
		log.Info("Request failed silently", slog.Any("error", err))
		return nil
	}

	me, ok := matcherr.As(err)
	if ok {
		// тип вне закрытого списка не пройдет валидацию ответа
		if _, perr := api.ParseErrorType(string(me.Type)); perr != nil {
			ok = false
		}
	}
	if !ok {
		e.counters.unhandled.Add(1)
		message := fmt.Sprintf("%T: %+v", err, err)
		log.Error("Adapter did not handle exception",
			slog.Any("error", err),
			slog.Bool("critical", true),
		)
		return api.NewFailureResponse(req, api.ErrorAdapterDidNotHandleException, message)
	}

	e.counters.failed.Add(1)
	resp := api.NewFailureResponse(req, me.Type, me.Message)
	switch me.Type {
	case api.ErrorMoved:
		log.Info("Object moved", "new_key_value", me.NewKeyValue)
		resp.Value = req.Key.Value
		resp.Key.Value = me.NewKeyValue
	case api.ErrorHasBeenUpdated:
		log.Info("Object has been updated", "check_sum", me.NewCheckSum)
		resp.Value = me.NewCheckSum
		resp.Data = me.NewData
	case api.ErrorInternalServerError:
		resp.Message = fmt.Sprintf("%+v", err)
		log.Error("Internal server error", slog.Any("error", err), slog.Bool("critical", true))
	default:
		log.Error("Request failed", "error_type", me.Type, slog.Any("error", err))
	}
	return resp
}

// SendResponse publishes a response with its routing properties
func (e *Engine) SendResponse(ctx context.Context, resp *api.Response) error {
	body, err := api.Encode(resp)
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	if err := e.responses.Send(ctx, body, resp.Properties()); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}
	return nil
}

// HandleMessage runs one inbound message through the full state machine
func (e *Engine) HandleMessage(ctx context.Context, rcv transport.Receiver, msg *transport.Message) Outcome {
	e.counters.received.Add(1)

	req, err := api.DecodeRequest(msg.Body)
	if err != nil {
		e.logger.Error("Failed to decode request",
			"message_id", msg.ID,
			"delivery_count", msg.DeliveryCount,
			slog.Any("error", err),
			slog.Bool("critical", true),
		)
		e.abandon(ctx, rcv, msg)
		return OutcomeAbandoned
	}

	if resp := e.ProcessRequest(ctx, req); resp != nil {
		if err := e.SendResponse(ctx, resp); err != nil {
			e.logger.Error("Failed to respond, leaving request for redelivery",
				"message_id", msg.ID,
				"process_id", req.ProcessID,
				slog.Any("error", err),
			)
			e.abandon(ctx, rcv, msg)
			return OutcomeAbandoned
		}
	}

	// ответ уже отправлен: ошибку подтверждения только логируем
	if err := rcv.Complete(ctx, msg); err != nil {
		e.counters.completeFailed.Add(1)
		attrs := []any{
			"message_id", msg.ID,
			"process_id", req.ProcessID,
			slog.Any("error", err),
		}
		if !errors.Is(err, transport.ErrLockLost) {
			attrs = append(attrs, slog.Bool("critical", true))
		}
		e.logger.Error("Failed to complete request", attrs...)
	}
	return OutcomeCompleted
}

func (e *Engine) abandon(ctx context.Context, rcv transport.Receiver, msg *transport.Message) {
	e.counters.abandoned.Add(1)
	if err := rcv.Abandon(ctx, msg); err != nil {
		// брокер все равно вернет сообщение после истечения блокировки
		e.logger.Debug("Failed to abandon message", "message_id", msg.ID, slog.Any("error", err))
	}
}
