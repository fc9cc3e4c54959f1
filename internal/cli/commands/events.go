package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dbnav/internal/alert"
	"github.com/leapstack-labs/dbnav/internal/syncer"
	"github.com/leapstack-labs/dbnav/pkg/core"
)

// eventOutput is the structured form of one dispatched event.
type eventOutput struct {
	ID      string        `json:"id" yaml:"id"`
	Event   string        `json:"event" yaml:"event"`
	Handled bool          `json:"handled" yaml:"handled"`
	Alerts  []alertOutput `json:"alerts,omitempty" yaml:"alerts,omitempty"`
}

// alertOutput is one alert an event raised.
type alertOutput struct {
	Channel  string        `json:"channel" yaml:"channel"`
	Message  string        `json:"message" yaml:"message"`
	Severity core.Severity `json:"severity" yaml:"severity"`
}

// alertWatch remembers channel generations so the alerts raised since can
// be listed in channel order.
type alertWatch struct {
	channels []*alert.Channel
	gens     []uint64
}

func watchAlerts(channels ...*alert.Channel) *alertWatch {
	w := &alertWatch{channels: channels, gens: make([]uint64, len(channels))}
	for i, ch := range channels {
		w.gens[i] = ch.Generation()
	}
	return w
}

// Raised returns the current notification of every channel shown since
// the watch began.
func (w *alertWatch) Raised() []alertOutput {
	var raised []alertOutput
	for i, ch := range w.channels {
		if ch.Generation() == w.gens[i] {
			continue
		}
		n := ch.Current()
		raised = append(raised, alertOutput{Channel: ch.Name(), Message: n.Message, Severity: n.Severity})
	}
	return raised
}

// NewEventsCommand creates the events command.
func NewEventsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Apply backend events and print the alerts they raise",
		Long: `Subscribe to the backend event stream and run every event through the
dispatch table, as the UIs do. Each alert an event raises is printed.`,
		Example: `  # Follow events until interrupted
  dbnav events

  # Stop after three events, as JSON
  dbnav events --limit 3 -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := newSession(cmd)
			defer s.Close()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			events, err := s.client.Subscribe(ctx)
			if err != nil {
				return err
			}

			d := syncer.NewDispatcher(s.syncer, s.logger)
			channels := []*alert.Channel{s.store.Alert(), s.store.ResultAlert()}

			for seen := 0; limit == 0 || seen < limit; seen++ {
				var ev core.Event
				select {
				case <-ctx.Done():
					return nil
				case e, ok := <-events:
					if !ok {
						return nil
					}
					ev = e
				}
				if ev.ID == "" {
					ev.ID = uuid.NewString()
				}

				watch := watchAlerts(channels...)
				handled := d.Dispatch(ctx, ev)

				out := eventOutput{ID: ev.ID, Event: ev.Name, Handled: handled, Alerts: watch.Raised()}
				if err := printEvent(s, out); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Exit after this many events (0 follows forever)")

	return cmd
}

func printEvent(s *session, out eventOutput) error {
	if ok, err := s.out.Structured(out); ok {
		return err
	}
	if !out.Handled {
		s.out.Println(s.out.Muted("unhandled event " + out.Event))
		return nil
	}
	for _, a := range out.Alerts {
		if a.Message == "" {
			continue
		}
		s.out.Notification(core.Notification{Message: a.Message, Severity: a.Severity, Visible: true})
	}
	return nil
}
