// Binary llmq sends one prompt to a local OpenAI-compatible inference
// server and streams the completion to stdout as tokens arrive.
//
// Usage:
//
//	llmq [--model MODEL] [--host HOST] [--config FILE] prompt...
//
// Positional arguments are joined with single spaces into one prompt.
// No conversation state is kept between invocations.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/llmq-dev/llmq/pkg/ai"
	"github.com/llmq-dev/llmq/pkg/ai/providers/openai"
	"github.com/llmq-dev/llmq/pkg/config"
	"github.com/llmq-dev/llmq/pkg/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		modelFlag   string
		hostFlag    string
		configFlag  string
		timeoutFlag time.Duration
		logLevel    string
	)

	root := &cobra.Command{
		Use:           "llmq [flags] prompt...",
		Short:         "Stream a completion from a local inference server",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFlag)
			if err != nil {
				return err
			}

			if logLevel == "" {
				logLevel = cfg.LogLevel
			}
			logging.Setup(logLevel, cmd.ErrOrStderr())

			model := resolve(modelFlag, cfg.Model, config.DefaultModel)
			host := resolve(hostFlag, cfg.Host, config.DefaultHost)

			timeout := timeoutFlag
			if timeout == 0 {
				if timeout, err = cfg.TimeoutDuration(); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			var provider ai.Provider = openai.New(host)
			req := ai.CompletionRequest{
				Model:  model,
				Prompt: strings.Join(args, " "),
			}

			events, wait := provider.Complete(ctx, req)
			printStream(cmd.OutOrStdout(), events)
			return wait()
		},
	}

	root.Flags().StringVar(&modelFlag, "model", "", "model to use (default "+config.DefaultModel+")")
	root.Flags().StringVar(&hostFlag, "host", "", "inference server base URL (default "+config.DefaultHost+")")
	root.Flags().StringVar(&configFlag, "config", "", "path to config file (default "+config.DefaultPath()+")")
	root.Flags().DurationVar(&timeoutFlag, "timeout", 0, "bound the whole exchange, e.g. 30s (0 = no timeout)")
	root.Flags().StringVar(&logLevel, "log-level", "", "stderr log level: debug|info|warn|error")

	return root
}

// printStream writes each fragment to w as it arrives, unbuffered. A stop
// event gets one trailing newline; stream exhaustion without a stop event
// does not.
func printStream(w io.Writer, events <-chan ai.Event) {
	for ev := range events {
		if ev.Text != "" {
			io.WriteString(w, ev.Text)
		}
		if ev.FinishReason == ai.FinishReasonStop {
			io.WriteString(w, "\n")
		}
	}
}

// resolve applies the flag > config file > default precedence.
func resolve(flagVal, cfgVal, def string) string {
	if flagVal != "" {
		return flagVal
	}
	if cfgVal != "" {
		return cfgVal
	}
	return def
}
