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
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/valpere/lingoroute/internal/config"
)

var interactiveTarget string

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Translate lines from stdin as they arrive",
	Long: `Read lines from stdin and translate each one, printing results to
stdout. Requests are dispatched strictly in input order, one at a time.

While the session runs, the config file is watched: editing its endpoints
list replaces the rotation on the fly, and emptying the list restores the
static defaults from ` + config.EnvEndpoints + `.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := language.Parse(interactiveTarget); err != nil {
			return fmt.Errorf("invalid target language %q: %w", interactiveTarget, err)
		}

		sess, err := newSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		config.Watch(sess.config, sess.registry, sess.logger)

		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			translated, ok, err := sess.dispatcher.Translate(context.Background(), line, interactiveTarget)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(os.Stderr, "No translation available")
				continue
			}
			fmt.Println(translated)
		}
		return scanner.Err()
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)

	interactiveCmd.Flags().StringVarP(&interactiveTarget, "target", "t", "", "Target language code (required)")
	interactiveCmd.MarkFlagRequired("target")
}
