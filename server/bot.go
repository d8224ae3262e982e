package main

import (
	"github.com/mattermost/mattermost/server/public/model"
	"github.com/mattermost/mattermost/server/public/pluginapi"
	"github.com/pkg/errors"
)

const (
	// BotUsername is the username for the social links bot
	BotUsername = "social-links"
	// BotDisplayName is the display name for the social links bot
	BotDisplayName = "Social Links"
	// BotDescription is the description for the social links bot
	BotDescription = "Tells you which hashtag, mention, phone number, email or URL you clicked"

	botIconPath = "assets/icon.png"
)

// BotService manages the bot account that sends link click notifications
type BotService struct {
	client *pluginapi.Client
	botID  string
}

// NewBotService creates a new bot service
func NewBotService(client *pluginapi.Client) *BotService {
	return &BotService{
		client: client,
	}
}

// EnsureBotExists ensures the bot account exists, creating it if necessary
func (b *BotService) EnsureBotExists() error {
	botID, err := b.client.Bot.EnsureBot(&model.Bot{
		Username:    BotUsername,
		DisplayName: BotDisplayName,
		Description: BotDescription,
	}, pluginapi.ProfileImagePath(botIconPath))
	if err != nil {
		return errors.Wrap(err, "failed to ensure bot account")
	}

	b.botID = botID
	return nil
}

// GetBotID returns the bot user ID
func (b *BotService) GetBotID() string {
	return b.botID
}
