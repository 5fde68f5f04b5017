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
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/numaproj/numaflow-windowing/pkg/apis/windowing/v1alpha1"
	"github.com/numaproj/numaflow-windowing/pkg/shared/logging"
	"github.com/numaproj/numaflow-windowing/pkg/window"
	"github.com/numaproj/numaflow-windowing/pkg/window/outputtime"
)

func NewCheckLawsCommand() *cobra.Command {
	var (
		outputTime string
		samples    int
		windows    int
		length     time.Duration
		seed       int64
	)

	command := &cobra.Command{
		Use:   "check-laws",
		Short: "Sample an output time policy for violations of commutativity and associativity",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewLogger().Named("check-laws")
			fn, err := outputtime.FromType(v1alpha1.OutputTimeType(outputTime))
			if err != nil {
				return err
			}
			if samples < 1 || windows < 1 || length < time.Millisecond {
				return fmt.Errorf("samples and windows must be positive, and length at least 1ms")
			}

			results := make([]error, windows)
			g, _ := errgroup.WithContext(cmd.Context())
			for i := 0; i < windows; i++ {
				g.Go(func() error {
					rnd := rand.New(rand.NewSource(seed + int64(i)))
					start := time.UnixMilli(rnd.Int63n(1 << 42))
					w := window.NewIntervalWindow(start, start.Add(length))
					ts := make([]time.Time, samples)
					for j := range ts {
						ts[j] = start.Add(time.Duration(rnd.Int63n(length.Milliseconds())) * time.Millisecond)
					}
					if err := outputtime.CheckLaws(fn, w, ts); err != nil {
						results[i] = fmt.Errorf("window %s: %w", w, err)
					}
					return nil
				})
			}
			_ = g.Wait()

			violations := multierr.Combine(results...)
			if violations != nil {
				logger.Errorw("Output time policy broke its laws", zap.String("outputTime", outputTime), zap.Error(violations))
				return violations
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: no violations in %d windows of %d samples\n", fn.Type(), windows, samples)
			return nil
		},
	}
	command.Flags().StringVar(&outputTime, "output-time", string(v1alpha1.DefaultOutputTime), "Output time policy: endOfWindow, earliestInputTimestamp or latestInputTimestamp")
	command.Flags().IntVar(&samples, "samples", 16, "Number of timestamps sampled per window")
	command.Flags().IntVar(&windows, "windows", 4, "Number of windows sampled concurrently")
	command.Flags().DurationVar(&length, "length", time.Minute, "Length of the sampled windows")
	command.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "Random seed")
	return command
}
