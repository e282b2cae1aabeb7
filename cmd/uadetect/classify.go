package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/devicedetector/pkg/logger"
	"github.com/dmitrymomot/devicedetector/pkg/useragent"
)

// maxLineSize bounds a stdin line; longer user agents are rejected by the
// parser anyway.
const maxLineSize = 1 << 20

// ErrSomeFailed is returned when at least one input could not be classified.
var ErrSomeFailed = errors.New("some user agents could not be classified")

type classifyResult struct {
	UserAgent  string            `json:"user_agent"`
	Identifier string            `json:"identifier,omitempty"`
	Client     *useragent.Client `json:"client"`
	Device     *useragent.Device `json:"device"`
	Error      string            `json:"error,omitempty"`
}

func newClassifyCmd(root *rootFlags) *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "classify [user-agent...]",
		Short: "Classify user agents and print one JSON document per input",
		Long: `Classify the given user agents. Without arguments one user agent is read
per line of standard input; blank lines are skipped.

Inputs that fail to classify are reported in the "error" field and make the
command exit with a non-zero status once every input was processed.

Examples:
  uadetect classify "Mozilla/5.0 (Windows NT 10.0) Chrome/91.0.4472.124 Safari/537.36"
  uadetect classify --rules ./rules --watch < user-agents.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			if cfg.WatchRules {
				go func() {
					if err := a.watch(ctx); err != nil {
						a.log.Error("rules watcher stopped", logger.Error(err))
					}
				}()
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}
			if len(args) > 0 {
				return classifyAll(a, enc, args)
			}
			return classifyLines(ctx, a, enc, cmd.InOrStdin())
		},
	}

	cmd.Flags().Bool("watch", false, "reload rules while reading standard input")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	return cmd
}

func classifyAll(a *app, enc *json.Encoder, inputs []string) error {
	failed := 0
	for _, ua := range inputs {
		ok, err := classifyOne(a, enc, ua)
		if err != nil {
			return err
		}
		if !ok {
			failed++
		}
	}
	return failures(failed)
}

func classifyLines(ctx context.Context, a *app, enc *json.Encoder, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	failed := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		ok, err := classifyOne(a, enc, line)
		if err != nil {
			return err
		}
		if !ok {
			failed++
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read user agents: %w", err)
	}
	return failures(failed)
}

// classifyOne writes the result for ua. ok is false when ua could not be
// classified; err is only set when the output cannot be written.
func classifyOne(a *app, enc *json.Encoder, raw string) (ok bool, err error) {
	res := classifyResult{UserAgent: raw}
	ua, perr := a.parser().Parse(raw)
	if perr != nil {
		res.Error = perr.Error()
	} else {
		res.Identifier = ua.GetShortIdentifier()
		res.Client = ua.Client
		res.Device = ua.Device
	}
	if err := enc.Encode(res); err != nil {
		return false, fmt.Errorf("write result: %w", err)
	}
	return perr == nil, nil
}

func failures(n int) error {
	if n == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d failed", ErrSomeFailed, n)
}
