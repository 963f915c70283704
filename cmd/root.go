/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

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
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "lingoroute",
	Short: "Failover Translation Dispatcher",
	Long: `A CLI that dispatches translation requests across a rotation of
interchangeable HTTP translation endpoints, with automatic failover,
result caching and line-structure preservation for multi-line text.

Endpoints are tried in rotation order starting from the current primary;
the first endpoint to answer becomes the new primary. Results are cached
on disk, so repeating a translation never hits the network twice.

Configure endpoints with the LINGOROUTE_ENDPOINTS environment variable
(comma or space separated URLs) or an "endpoints" list in lingoroute.yaml.

Use "lingoroute translate --help" for translation options.`,
	Version: version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
