package cli

import (
	"strings"
	"testing"

	"github.com/dmitrijs2005/darkworlds/internal/client/command"
	"github.com/dmitrijs2005/darkworlds/internal/client/models"
	"github.com/stretchr/testify/assert"
)

type fakeViews struct {
	users []models.User
	feed  []models.DiscussionMessage
}

func (f fakeViews) OnlineUsers() []models.User             { return f.users }
func (f fakeViews) Discussion() []models.DiscussionMessage { return f.feed }

func TestRenderPanels(t *testing.T) {
	src := fakeViews{
		users: []models.User{{Username: "alice"}, {Username: "bob"}},
		feed: []models.DiscussionMessage{
			{SenderUsername: "carol", Content: "newest"},
			{SenderUsername: "dave", Content: "older"},
		},
	}
	view := &command.ViewState{}

	assert.Empty(t, renderPanels(view, src))

	view.Set(command.PanelUsers, true)
	out := renderPanels(view, src)
	assert.Contains(t, out, "Online Users:")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "bob")
	assert.NotContains(t, out, "Community Discussion:")

	view.Set(command.PanelDiscussion, true)
	out = renderPanels(view, src)
	assert.Contains(t, out, "Community Discussion:")
	assert.Less(t, strings.Index(out, "newest"), strings.Index(out, "older"))
	assert.Less(t, strings.Index(out, "Community Discussion:"), strings.Index(out, "Online Users:"))
}
