package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skylicht/editor"
	"github.com/skylicht/editor/handles"
)

var debugLog bool

var runCmd = &cobra.Command{
	Use:   "run <script.yaml>",
	Short: "Run an input script and print the outcome",
	Long:  "Load the script, play every frame through the editor and print per-frame results, final transforms and the selection.",
	Args:  cobra.ExactArgs(1),
	RunE:  runScript,
}

func init() {
	runCmd.Flags().BoolVar(&debugLog, "debug", false, "log editor events to stderr")
	rootCmd.AddCommand(runCmd)
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, cfgErr := editor.LoadConfig(configPath)
	logger := editor.NewWriterLogger(cfg.LogPrefix, cfg.Debug || debugLog, cmd.ErrOrStderr(), cmd.ErrOrStderr())
	if cfgErr != nil {
		logger.Warnf("%v; using defaults", cfgErr)
	}

	script, err := LoadScript(args[0])
	if err != nil {
		return err
	}

	out, err := Play(script, cfg, logger)
	if err != nil {
		return err
	}
	printOutcome(cmd.OutOrStdout(), script, out)
	return nil
}

func printOutcome(w io.Writer, s *Script, out *Outcome) {
	for i, res := range out.Results {
		if res == handles.Continuing {
			continue
		}
		fmt.Fprintf(w, "frame %d: %s\n", i, res)
	}

	fmt.Fprintln(w, "Objects:")
	for _, o := range s.Objects {
		n := out.Objects[o.Name]
		t := n.Transform
		fmt.Fprintf(w, "  %s: position (%.4f, %.4f, %.4f) rotation (%.4f, %.4f, %.4f, %.4f) scale (%.4f, %.4f, %.4f)\n",
			o.Name,
			t.Position.X(), t.Position.Y(), t.Position.Z(),
			t.Rotation.W, t.Rotation.V.X(), t.Rotation.V.Y(), t.Rotation.V.Z(),
			t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	}

	var names []string
	for _, n := range out.Editor.Selection().All() {
		names = append(names, n.Name)
	}
	fmt.Fprintf(w, "Selected: %s\n", strings.Join(names, ", "))
	fmt.Fprintf(w, "History: %d records\n", out.Editor.History().Len())
}
