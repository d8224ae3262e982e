package main

import (
	"fmt"

	"github.com/mattermost/mattermost/server/public/model"
	"github.com/mattermost/mattermost/server/public/plugin"
	"github.com/pkg/errors"

	"github.com/fmartingr/mattermost-plugin-social-links/server/links"
	"github.com/fmartingr/mattermost-plugin-social-links/server/store/kvstore"
)

// Click is a link click delivered by a gesture session
type Click struct {
	UserID   string
	PostID   string
	Category links.Category
	Text     string
}

// ClickNotifier tells users which link they clicked and counts clicks per category
type ClickNotifier struct {
	api   plugin.API
	store kvstore.KVStore
	botID string
}

// NewClickNotifier creates a new click notifier
func NewClickNotifier(api plugin.API, store kvstore.KVStore, botID string) *ClickNotifier {
	return &ClickNotifier{
		api:   api,
		store: store,
		botID: botID,
	}
}

// Notify records the click and shows it to the user as an ephemeral post in the thread of the clicked post
func (n *ClickNotifier) Notify(click Click) error {
	if _, err := n.store.IncrementClicks(click.Category); err != nil {
		// Log error but still notify the user
		n.api.LogWarn("Failed to count link click", "category", click.Category.Name(), "error", err.Error())
	}

	post, appErr := n.api.GetPost(click.PostID)
	if appErr != nil {
		return errors.Wrap(appErr, "failed to get clicked post")
	}

	// If the post is already a reply (has RootId), use that. Otherwise, use the post ID itself.
	rootID := click.PostID
	if post.RootId != "" {
		rootID = post.RootId
	}

	ephemeral := &model.Post{
		UserId:    n.botID,
		ChannelId: post.ChannelId,
		RootId:    rootID,
		Message:   formatClick(click.Category, click.Text),
		CreateAt:  model.GetMillis(),
	}
	n.api.SendEphemeralPost(click.UserID, ephemeral)

	return nil
}

func formatClick(category links.Category, text string) string {
	return fmt.Sprintf("**%s** %s", category.Label(), text)
}
