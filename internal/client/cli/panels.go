package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/darkworlds/internal/client/command"
	"github.com/dmitrijs2005/darkworlds/internal/client/models"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	panelTitleStyle = lipgloss.NewStyle().Bold(true)
	senderStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

type viewSource interface {
	OnlineUsers() []models.User
	Discussion() []models.DiscussionMessage
}

// renderPanels draws every visible panel, discussion first, separated by a
// blank line. It returns "" when nothing is visible.
func renderPanels(view *command.ViewState, src viewSource) string {
	var parts []string
	if view.ShowDiscussion() {
		parts = append(parts, discussionPanel(src.Discussion()))
	}
	if view.ShowUsers() {
		parts = append(parts, usersPanel(src.OnlineUsers()))
	}
	return strings.Join(parts, "\n")
}

func discussionPanel(feed []models.DiscussionMessage) string {
	lines := []string{panelTitleStyle.Render("Community Discussion:")}
	for _, m := range feed {
		lines = append(lines, fmt.Sprintf("%s: %s", senderStyle.Render(m.SenderUsername), m.Content))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func usersPanel(users []models.User) string {
	lines := []string{panelTitleStyle.Render("Online Users:")}
	for _, u := range users {
		lines = append(lines, u.Username)
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}
