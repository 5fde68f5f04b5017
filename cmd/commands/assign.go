/*
Copyright 2022 The Numaproj Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/numaproj/numaflow-windowing/pkg/apis/windowing/v1alpha1"
	"github.com/numaproj/numaflow-windowing/pkg/shared/logging"
	"github.com/numaproj/numaflow-windowing/pkg/watermark/hold"
	"github.com/numaproj/numaflow-windowing/pkg/watermark/wmb"
	"github.com/numaproj/numaflow-windowing/pkg/window"
	"github.com/numaproj/numaflow-windowing/pkg/windowing"
	"github.com/numaproj/numaflow-windowing/pkg/windowing/config"
)

func NewAssignCommand() *cobra.Command {
	var (
		configDir  string
		timestamps []string
		watermark  string
	)

	command := &cobra.Command{
		Use:   "assign NAME",
		Short: "Assign element timestamps to the windows of a stage and print the output time holds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewLogger().Named("assign")
			ctx := logging.WithLogger(cmd.Context(), logger)

			elements := make([]time.Time, 0, len(timestamps))
			for _, ts := range timestamps {
				t, err := dateparse.ParseStrict(ts)
				if err != nil {
					return fmt.Errorf("invalid timestamp %q, %w", ts, err)
				}
				elements = append(elements, t)
			}
			wm := wmb.InitialWatermark
			if watermark != "" {
				t, err := dateparse.ParseStrict(watermark)
				if err != nil {
					return fmt.Errorf("invalid watermark %q, %w", watermark, err)
				}
				wm = wmb.Watermark(t)
			}

			conf, err := config.LoadConfigFrom(configDir, func(err error) {
				logger.Errorw("Failed to reload windowing config", zap.Error(err))
			})
			if err != nil {
				return err
			}
			name := args[0]
			if conf.GetStrategy(name).Window.GetType() == v1alpha1.GlobalType {
				s, err := config.StrategyFor[any, window.GlobalWindow](conf, name)
				if err != nil {
					return err
				}
				assign(ctx, cmd.OutOrStdout(), name, s, elements, wm)
				return nil
			}
			s, err := config.StrategyFor[any, window.IntervalWindow](conf, name)
			if err != nil {
				return err
			}
			assign(ctx, cmd.OutOrStdout(), name, s, elements, wm)
			return nil
		},
	}
	addConfigDirFlag(command, &configDir)
	command.Flags().StringSliceVar(&timestamps, "timestamps", nil, "Element timestamps, in any unambiguous date format")
	command.Flags().StringVar(&watermark, "watermark", "", "Expire the holds of the windows that are late at this watermark")
	return command
}

func assign[W window.Window](ctx context.Context, out io.Writer, name string, s *windowing.Strategy[any, W], elements []time.Time, watermark wmb.Watermark) {
	h := hold.NewHolder(ctx, name, s)
	fn := s.WindowFn()
	for _, ts := range elements {
		for _, w := range fn.AssignWindows(nil, ts) {
			h.Add(ts, w)
		}
	}
	if !fn.IsNonMerging() {
		for _, m := range fn.MergeWindows(h.Windows()) {
			h.Merge(m.To, m.From)
		}
	}

	_, _ = fmt.Fprintf(out, "strategy: %s\n", s)
	for _, w := range h.Windows() {
		ts, _ := h.Get(w)
		_, _ = fmt.Fprintf(out, "%v\thold=%s\n", w, wmb.Watermark(ts))
	}
	if hold, ok := h.Hold(); ok {
		_, _ = fmt.Fprintf(out, "watermark hold: %s\n", hold)
	} else {
		_, _ = fmt.Fprintln(out, "watermark hold: none")
	}

	for _, w := range h.Expire(watermark) {
		_, _ = fmt.Fprintf(out, "expired: %v\n", w)
	}
	_, _ = fmt.Fprintf(out, "output watermark: %s\n", h.OutputWatermark(watermark))
}
