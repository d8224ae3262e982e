package main

import (
	"net/http"
	"sync"
	"time"

	"github.com/mattermost/mattermost/server/public/model"
	"github.com/mattermost/mattermost/server/public/plugin"
	"github.com/mattermost/mattermost/server/public/pluginapi"
	"github.com/mattermost/mattermost/server/public/pluginapi/cluster"
	"github.com/pkg/errors"

	"github.com/fmartingr/mattermost-plugin-social-links/server/command"
	"github.com/fmartingr/mattermost-plugin-social-links/server/links"
	"github.com/fmartingr/mattermost-plugin-social-links/server/span"
	"github.com/fmartingr/mattermost-plugin-social-links/server/store/kvstore"
)

const sessionSweepInterval = 5 * time.Minute

// Plugin implements the interface expected by the Mattermost server to communicate between the server and plugin processes.
type Plugin struct {
	plugin.MattermostPlugin

	// kvstore is the client used to read/write KV records for this plugin.
	kvstore kvstore.KVStore

	// client is the Mattermost server API client.
	client *pluginapi.Client

	// commandClient is the client used to register and execute slash commands.
	commandClient command.Command

	backgroundJob *cluster.Job

	// configurationLock synchronizes access to the configuration.
	configurationLock sync.RWMutex

	// configuration is the active plugin configuration. Consult getConfiguration and
	// setConfiguration for usage.
	configuration *configuration

	// linkProcessor extracts and stores the links of posts
	linkProcessor *LinkProcessor

	// botService manages the social links bot account
	botService *BotService

	// clickNotifier tells users which link they clicked
	clickNotifier *ClickNotifier

	// gestureSessions holds the gesture engines of the open webapp widgets
	gestureSessions *GestureSessions
}

// OnActivate is invoked when the plugin is activated. If an error is returned, the plugin will be deactivated.
func (p *Plugin) OnActivate() error {
	p.client = pluginapi.NewClient(p.API, p.Driver)

	p.kvstore = kvstore.NewKVStore(p.client)

	p.commandClient = command.NewCommandHandler(p.client, func(text string) []links.Item {
		return links.Extract(text, p.getConfiguration().enabled)
	})

	// Initialize bot service and ensure bot exists
	p.botService = NewBotService(p.client)
	if err := p.botService.EnsureBotExists(); err != nil {
		return errors.Wrap(err, "failed to ensure bot account exists")
	}

	p.clickNotifier = NewClickNotifier(p.API, p.kvstore, p.botService.GetBotID())
	p.linkProcessor = NewLinkProcessor(p.API, p.kvstore)
	p.gestureSessions = NewGestureSessions(defaultSessionIdleTimeout)

	job, err := cluster.Schedule(
		p.API,
		"GestureSessionSweep",
		cluster.MakeWaitForInterval(sessionSweepInterval),
		p.runJob,
	)
	if err != nil {
		return errors.Wrap(err, "failed to schedule background job")
	}

	p.backgroundJob = job

	return nil
}

// OnDeactivate is invoked when the plugin is deactivated.
func (p *Plugin) OnDeactivate() error {
	if p.backgroundJob != nil {
		if err := p.backgroundJob.Close(); err != nil {
			p.API.LogError("Failed to close background job", "err", err)
		}
	}
	return nil
}

// This will execute the commands that were registered in the NewCommandHandler function.
func (p *Plugin) ExecuteCommand(c *plugin.Context, args *model.CommandArgs) (*model.CommandResponse, *model.AppError) {
	response, err := p.commandClient.Handle(args)
	if err != nil {
		return nil, model.NewAppError("ExecuteCommand", "plugin.command.execute_command.app_error", nil, err.Error(), http.StatusInternalServerError)
	}
	return response, nil
}

// MessageHasBeenPosted is invoked when a message has been posted by a user.
// This hook is called after the message has been committed to the database.
func (p *Plugin) MessageHasBeenPosted(c *plugin.Context, post *model.Post) {
	// Ignore messages from the bot itself
	if p.botService != nil && post.UserId == p.botService.GetBotID() {
		return
	}

	// Get current configuration
	config := p.getConfiguration()

	// Extract links (async, non-blocking)
	go func() {
		if _, err := p.linkProcessor.ProcessPost(post.Id, post.Message, config); err != nil {
			p.API.LogError("Failed to process post links", "postID", post.Id, "error", err.Error())
		}
	}()
}

// MessageHasBeenUpdated is invoked after a message is updated. Open gesture
// sessions of the post are reset so a press never outlives the text it was on.
func (p *Plugin) MessageHasBeenUpdated(c *plugin.Context, newPost, oldPost *model.Post) {
	if p.botService != nil && newPost.UserId == p.botService.GetBotID() {
		return
	}

	config := p.getConfiguration()

	items, err := p.linkProcessor.ProcessPost(newPost.Id, newPost.Message, config)
	if err != nil {
		p.API.LogError("Failed to process updated post links", "postID", newPost.Id, "error", err.Error())
		return
	}

	reset := p.gestureSessions.ResetPost(newPost.Id, func() span.Set {
		return config.buildSpans(items)
	})
	if reset > 0 {
		p.API.LogDebug("Reset gesture sessions of updated post", "postID", newPost.Id, "sessions", reset)
	}
}

// MessageHasBeenDeleted is invoked after a message is deleted.
func (p *Plugin) MessageHasBeenDeleted(c *plugin.Context, post *model.Post) {
	if err := p.linkProcessor.ForgetPost(post.Id); err != nil {
		p.API.LogWarn("Failed to forget post links", "postID", post.Id, "error", err.Error())
	}

	if dropped := p.gestureSessions.DropPost(post.Id); dropped > 0 {
		p.API.LogDebug("Dropped gesture sessions of deleted post", "postID", post.Id, "sessions", dropped)
	}
}

// See https://developers.mattermost.com/extend/plugins/server/reference/
