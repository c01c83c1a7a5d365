package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/flashbar/internal/bar"
)

var tipsOpts struct {
	output string
}

var tipsCmd = &cobra.Command{
	Use:   "tips",
	Short: "Print the idle-bar tip catalog",
	Long: `Print every tip the bar can show while idle.

The bar picks one tip at random per enable cycle; this command lists the full
catalog so none of them are a surprise.`,
	RunE: runTips,
}

func init() {
	rootCmd.AddCommand(tipsCmd)

	tipsCmd.Flags().StringVarP(&tipsOpts.output, "output", "o", "text",
		"Output format (text, yaml)")
}

func runTips(cmd *cobra.Command, args []string) error {
	switch tipsOpts.output {
	case "yaml":
		data, err := yaml.Marshal(bar.Tips)
		if err != nil {
			return fmt.Errorf("failed to marshal tips: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	case "text":
		for _, tip := range bar.Tips {
			fmt.Println("- " + tip)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", tipsOpts.output)
	}
}
