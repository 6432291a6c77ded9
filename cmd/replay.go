package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"sigs.k8s.io/yaml"
)

// script is a list of host events replayed in order.
//
//	events:
//	  - kind: scene_opened
//	    path: /project/Assets/Main.unity
//	  - kind: scene_saved
//	    after: 2s
type script struct {
	Events []scriptEvent `json:"events"`
}

type scriptEvent struct {
	Kind string `json:"kind"`
	Path string `json:"path,omitempty"`
	// After is the delay before the event is sent.
	After string `json:"after,omitempty"`
}

var replayCmd = &cobra.Command{
	Use:   "replay <script>",
	Short: "Replay host events from a yaml script",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer zap.L().Sync() //nolint:errcheck

		s, err := readScript(args[0])
		if err != nil {
			return err
		}

		ctx, cancel := withInterrupt(cmd.Context())
		defer cancel()

		actions := make(chan action)
		go replay(ctx, s, actions)

		return run(ctx, actions)
	},
}

func readScript(path string) ([]timedAction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read script '%w'", err)
	}

	var s script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("cannot parse script '%w'", err)
	}

	return s.actions()
}

type timedAction struct {
	after time.Duration
	action
}

func (s script) actions() ([]timedAction, error) {
	result := make([]timedAction, 0, len(s.Events))
	for i, e := range s.Events {
		a, ok, err := parseAction(e.Kind + " " + e.Path)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		if !ok {
			return nil, fmt.Errorf("event %d: kind is missing", i)
		}

		var after time.Duration
		if e.After != "" {
			after, err = time.ParseDuration(e.After)
			if err != nil {
				return nil, fmt.Errorf("event %d: invalid delay '%w'", i, err)
			}
		}

		result = append(result, timedAction{after: after, action: a})
	}

	return result, nil
}

func replay(ctx context.Context, actions []timedAction, out chan<- action) {
	defer close(out)

	for _, a := range actions {
		if a.after > 0 {
			select {
			case <-time.After(a.after):
			case <-ctx.Done():
				return
			}
		}

		select {
		case out <- a.action:
		case <-ctx.Done():
			return
		}
	}
}
