package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gend/internal/registry"
)

func buildModelsCmd() *cobra.Command {
	var modelsDir string
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List models available to the engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			models, err := registry.LoadDir(modelsDir)
			if err != nil {
				return err
			}
			for _, m := range models {
				if m.Path == "" {
					fmt.Printf("%s\t(built-in)\n", m.ID)
					continue
				}
				fmt.Printf("%s\t%s\n", m.ID, m.Path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&modelsDir, "models-dir", envDefault("GEND_MODELS_DIR", ""), "Directory to scan for *.gguf model files")
	return cmd
}
