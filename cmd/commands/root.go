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
	"os"

	"github.com/spf13/cobra"

	"github.com/numaproj/numaflow-windowing/pkg/apis/windowing/v1alpha1"
	"github.com/numaproj/numaflow-windowing/pkg/shared/util"
)

const CLIName = "windowing"

var rootCmd = &cobra.Command{
	Use:   CLIName,
	Short: "Inspect windowing strategies",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.HelpFunc()(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(NewDescribeCommand())
	rootCmd.AddCommand(NewAssignCommand())
	rootCmd.AddCommand(NewCheckLawsCommand())
	rootCmd.AddCommand(NewVersionCommand())
}

// Execute runs the root command and exits with a non-zero status on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func addConfigDirFlag(cmd *cobra.Command, configDir *string) {
	cmd.Flags().StringVar(configDir, "config-dir", util.LookupEnvStringOr(v1alpha1.EnvWindowingConfigDir, v1alpha1.DefaultWindowingConfigDir), "Directory of windowing-config.yaml")
}
