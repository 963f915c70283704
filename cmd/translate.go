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
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/valpere/lingoroute/internal/detector"
	"github.com/valpere/lingoroute/internal/validator"
)

var (
	inputFile  string
	outputFile string
	sourceLang string
	targetLang string
	noValidate bool
)

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate text through the endpoint rotation",
	Long: `Translate text through the configured endpoint rotation.

Reads from --input (or stdin), writes to --output (or stdout). Repeated
translations of the same text are served from the persistent cache
without touching the network.

A failed endpoint is retried over both transports (POST, then GET) before
the dispatcher moves on to the next endpoint in the rotation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := language.Parse(targetLang); err != nil {
			return fmt.Errorf("invalid target language %q: %w", targetLang, err)
		}

		var text string
		if inputFile == "" || inputFile == "-" {
			raw, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			text = string(raw)
		} else {
			raw, err := os.ReadFile(inputFile)
			if err != nil {
				return fmt.Errorf("failed to read input file: %w", err)
			}
			text = string(raw)
		}

		if sourceLang == "auto" {
			det := detector.New()
			if detected, ok := det.ISO(text); ok {
				sourceLang = detected
				fmt.Fprintf(os.Stderr, "Detected source language: %s\n", sourceLang)
			}
		}

		sess, err := newSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		translated, ok, err := sess.dispatcher.Translate(context.Background(), text, targetLang)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no translation available")
		}

		if !noValidate {
			if err := validator.New().Check(translated, targetLang); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}
		}

		if outputFile == "" || outputFile == "-" {
			fmt.Println(translated)
			return nil
		}
		if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(outputFile, []byte(translated), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Successfully translated to %s\n", targetLang)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&inputFile, "input", "i", "-", "Input file to translate (- for stdin)")
	translateCmd.Flags().StringVarP(&outputFile, "output", "o", "-", "Output file for the translation (- for stdout)")
	translateCmd.Flags().StringVarP(&sourceLang, "source", "s", "auto", "Source language code (informational)")
	translateCmd.Flags().StringVarP(&targetLang, "target", "t", "", "Target language code (required)")
	translateCmd.Flags().BoolVar(&noValidate, "no-validate", false, "Skip target-language validation of the result")

	translateCmd.MarkFlagRequired("target")
}
