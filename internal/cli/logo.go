package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/devlink-labs/devlink/internal/branding"
)

var (
	logoName = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	logoDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	logoBox  = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 2)
)

func printLogo(w io.Writer) {
	body := lipgloss.JoinVertical(lipgloss.Center,
		logoName.Render(branding.DisplayName()),
		logoDesc.Render(branding.Description()),
	)
	fmt.Fprintln(w, logoBox.Render(body))
}
