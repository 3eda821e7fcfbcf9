package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skylicht/editor"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "gizmosim",
	Short: "Replay scripted mouse input through a headless editor session",
	Long: `gizmosim drives the transform gizmo and object picking without a window.
A YAML script describes the camera, the objects and the frames of input; every frame
runs through one editor tick and the resulting transforms are printed.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", editor.DefaultConfigPath, "editor config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
