package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
)

var flagDefaultYAML bool

var shapesCmd = &cobra.Command{
	Use:   "shapes",
	Short: "Show the shape catalog",
	Long: `Print the shapes and palette of the active configuration.
With --yaml, print the built-in blocks.yaml to start a custom config from.

Examples:
  blocks shapes
  blocks shapes --config ./my-blocks.yaml
  blocks shapes --yaml > ~/.arcade/configs/blocks.yaml`,
	Args: cobra.NoArgs,
	RunE: runShapes,
}

func init() {
	shapesCmd.Flags().BoolVar(&flagDefaultYAML, "yaml", false, "Print the default configuration file")
}

func runShapes(_ *cobra.Command, _ []string) error {
	if flagDefaultYAML {
		fmt.Print(string(config.GetDefaultYAML()))
		return nil
	}

	cfg, err := config.LoadBlocks(flagConfig)
	if err != nil {
		return err
	}
	catalog, err := cfg.Catalog()
	if err != nil {
		return err
	}
	colors, err := cfg.Colors()
	if err != nil {
		return err
	}

	fmt.Printf("Board: %dx%d\n", cfg.Board.Size, cfg.Board.Size)

	swatches := make([]string, len(colors))
	for i, c := range colors {
		swatches[i] = tui.ColorStyle(c).Render("██") + " " + c.String()
	}
	fmt.Printf("Palette: %s\n\n", strings.Join(swatches, "  "))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	boxes := make([]string, 0, catalog.Len())
	for _, s := range catalog.Shapes() {
		body := strings.NewReplacer("#", "██", ".", "  ").Replace(s.Matrix.String())
		boxes = append(boxes, boxStyle.Render(s.Name+"\n"+body))
	}

	// Four shapes per line
	for i := 0; i < len(boxes); i += 4 {
		end := min(i+4, len(boxes))
		fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top, boxes[i:end]...))
	}
	return nil
}
