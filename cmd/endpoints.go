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
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/valpere/lingoroute/internal/config"
)

var (
	probeText   string
	probeTarget string
)

var endpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "Inspect the endpoint rotation",
}

var endpointsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the current rotation and primary endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		view := sess.registry.View()
		if len(view.Endpoints) == 0 {
			fmt.Println("No endpoints configured.")
			fmt.Printf("Set %s or add an endpoints list to lingoroute.yaml.\n", config.EnvEndpoints)
			return nil
		}

		for i, u := range view.Endpoints {
			marker := " "
			if i == view.Primary {
				marker = "*"
			}
			fmt.Printf("%s %2d  %s\n", marker, i, u)
		}
		fmt.Printf("\n%d endpoint(s), primary at index %d\n", len(view.Endpoints), view.Primary)
		return nil
	},
}

var endpointsProbeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Attempt every endpoint once and report health",
	Long: `Attempt every endpoint in the rotation once with a short probe text,
reporting per-endpoint health and latency. Probing bypasses the dispatch
queue and does not change the primary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		results := sess.dispatcher.Probe(context.Background(), probeText, probeTarget)
		if len(results) == 0 {
			fmt.Println("No endpoints configured.")
			return nil
		}

		healthy := 0
		for _, r := range results {
			status := "FAIL"
			if r.OK {
				status = "OK"
				healthy++
			}
			fmt.Printf("%-4s %8s  %s\n", status, r.Latency.Round(time.Millisecond), r.URL)
		}
		fmt.Printf("\n%d/%d endpoints healthy\n", healthy, len(results))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(endpointsCmd)
	endpointsCmd.AddCommand(endpointsListCmd)
	endpointsCmd.AddCommand(endpointsProbeCmd)

	endpointsProbeCmd.Flags().StringVar(&probeText, "text", "hello", "Probe text to translate")
	endpointsProbeCmd.Flags().StringVar(&probeTarget, "target", "es", "Probe target language")
}
