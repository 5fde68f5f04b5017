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

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"sigs.k8s.io/yaml"

	"github.com/numaproj/numaflow-windowing/pkg/apis/windowing/v1alpha1"
	"github.com/numaproj/numaflow-windowing/pkg/shared/logging"
	"github.com/numaproj/numaflow-windowing/pkg/window"
	"github.com/numaproj/numaflow-windowing/pkg/windowing"
	"github.com/numaproj/numaflow-windowing/pkg/windowing/config"
)

func NewDescribeCommand() *cobra.Command {
	var configDir string

	command := &cobra.Command{
		Use:   "describe NAME",
		Short: "Print the windowing strategy of a stage, merged over the defaults",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewLogger().Named("describe")
			conf, err := config.LoadConfigFrom(configDir, func(err error) {
				logger.Errorw("Failed to reload windowing config", zap.Error(err))
			})
			if err != nil {
				return err
			}
			spec := conf.GetStrategy(args[0])
			data, err := yaml.Marshal(spec)
			if err != nil {
				return err
			}
			s, err := strategyOf(spec)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprint(out, string(data))
			_, _ = fmt.Fprintln(out, s)
			if err := s.Validate(); err != nil {
				logger.Warnw("Windowing strategy is not valid", zap.String("name", args[0]), zap.Error(err))
				return fmt.Errorf("invalid windowing strategy %q, %w", args[0], err)
			}
			return nil
		},
	}
	addConfigDirFlag(command, &configDir)
	return command
}

// described is the part of a windowing strategy that does not depend on its window type.
type described interface {
	fmt.Stringer
	Validate() error
}

func strategyOf(spec v1alpha1.WindowingStrategy) (described, error) {
	if spec.Window.GetType() == v1alpha1.GlobalType {
		return windowing.FromSpec[any, window.GlobalWindow](spec)
	}
	return windowing.FromSpec[any, window.IntervalWindow](spec)
}
