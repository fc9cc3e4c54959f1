package syncer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/leapstack-labs/dbnav/pkg/core"
)

// Fixed alert texts for events whose payload is ignored or optional.
const (
	MsgAttachSucceeded     = "DB imported successfully!"
	MsgAttachFailed        = "DB failed to import!"
	MsgNewWindowSucceeded  = "New window opened"
	MsgOpenFolderSucceeded = "Folder opened"
)

// Handler reacts to one backend event.
type Handler func(ctx context.Context, payload core.EventPayload)

// Dispatcher routes backend events to handlers one at a time, in the order
// they were delivered.
type Dispatcher struct {
	syncer   *Syncer
	logger   *slog.Logger
	handlers map[string]Handler
}

// NewDispatcher returns a Dispatcher with the standard event table.
func NewDispatcher(s *Syncer, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = s.logger
	}
	d := &Dispatcher{
		syncer:   s,
		logger:   logger,
		handlers: make(map[string]Handler),
	}
	d.registerDefaults()
	return d
}

func (d *Dispatcher) registerDefaults() {
	s := d.syncer
	success, failed := core.SeveritySuccess, core.SeverityError

	d.Handle(core.EventAttachSucceeded, func(ctx context.Context, _ core.EventPayload) {
		_ = s.RefreshNavigationThenNotify(ctx, MsgAttachSucceeded, success)
	})
	d.Handle(core.EventAttachFailed, refreshThenNotify(s, MsgAttachFailed, failed))
	d.Handle(core.EventExportSucceeded, refreshThenNotify(s, "", success))
	d.Handle(core.EventExportFailed, refreshThenNotify(s, "", failed))
	d.Handle(core.EventUploadSucceeded, refreshThenNotify(s, "", success))
	d.Handle(core.EventUploadFailed, refreshThenNotify(s, "", failed))
	d.Handle(core.EventNewWindowSucceeded, notify(s, MsgNewWindowSucceeded, success))
	d.Handle(core.EventNewWindowFailed, notify(s, "", failed))
	d.Handle(core.EventOpenFolderSucceeded, func(ctx context.Context, p core.EventPayload) {
		_ = s.LoadRootPath(ctx)
		_ = s.RefreshNavigationThenNotify(ctx, orDefault(p.Message, MsgOpenFolderSucceeded), success)
	})
	d.Handle(core.EventOpenFolderFailed, notify(s, "", failed))
}

func refreshThenNotify(s *Syncer, fallback string, sev core.Severity) Handler {
	return func(ctx context.Context, p core.EventPayload) {
		_ = s.RefreshNavigationThenNotify(ctx, orDefault(p.Message, fallback), sev)
	}
}

func notify(s *Syncer, fallback string, sev core.Severity) Handler {
	return func(_ context.Context, p core.EventPayload) {
		s.store.Alert().Show(orDefault(p.Message, fallback), sev)
	}
}

func orDefault(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}

// Handle registers h for name, replacing any existing handler.
func (d *Dispatcher) Handle(name string, h Handler) {
	d.handlers[name] = h
}

// Events lists the names with a registered handler, sorted.
func (d *Dispatcher) Events() []string {
	return slices.Sorted(maps.Keys(d.handlers))
}

// Dispatch runs the handler for ev. It reports whether one was registered.
// A panicking handler is logged and turned into an error alert.
func (d *Dispatcher) Dispatch(ctx context.Context, ev core.Event) (handled bool) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	log := d.logger.With("event", ev.Name, "event_id", ev.ID)

	h, ok := d.handlers[ev.Name]
	if !ok {
		log.Debug("no handler for event")
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error("event handler panicked", "panic", r)
			d.syncer.store.Alert().Show(fmt.Sprintf("%s: %v", ev.Name, r), core.SeverityError)
		}
	}()

	log.Debug("dispatching event")
	h(ctx, DecodePayload(ev.Payload))
	return true
}

// Run dispatches events until the channel closes or ctx is done. It
// returns ctx.Err() in either case, so a clean close yields nil.
func (d *Dispatcher) Run(ctx context.Context, events <-chan core.Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return ctx.Err()
			}
			d.Dispatch(ctx, ev)
		}
	}
}

// Listen subscribes to src and runs the dispatcher on its events.
func (d *Dispatcher) Listen(ctx context.Context, src core.EventSource) error {
	events, err := src.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe to backend events: %w", err)
	}
	d.logger.Info("listening for backend events")
	return d.Run(ctx, events)
}

// DecodePayload reads the message of an event body. msg is canonical;
// message and error are accepted from older backends when msg is absent.
// Anything that is not a JSON object with a string field yields an empty
// payload.
func DecodePayload(raw json.RawMessage) core.EventPayload {
	if len(raw) == 0 {
		return core.EventPayload{}
	}
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return core.EventPayload{}
	}
	for _, key := range []string{"msg", "message", "error"} {
		field, ok := body[key]
		if !ok {
			continue
		}
		var msg string
		if err := json.Unmarshal(field, &msg); err == nil && msg != "" {
			return core.EventPayload{Message: msg}
		}
	}
	return core.EventPayload{}
}
