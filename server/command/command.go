package command

import (
	"fmt"
	"strings"

	"github.com/mattermost/mattermost/server/public/model"
	"github.com/mattermost/mattermost/server/public/pluginapi"

	"github.com/fmartingr/mattermost-plugin-social-links/server/links"
)

const socialLinksCommandTrigger = "sociallinks"

// Extractor finds the links of a text with the currently enabled categories.
type Extractor func(text string) []links.Item

type Handler struct {
	client  *pluginapi.Client
	extract Extractor
}

type Command interface {
	Handle(args *model.CommandArgs) (*model.CommandResponse, error)
}

// NewCommandHandler registers the slash commands of the plugin.
func NewCommandHandler(client *pluginapi.Client, extract Extractor) Command {
	err := client.SlashCommand.Register(&model.Command{
		Trigger:          socialLinksCommandTrigger,
		AutoComplete:     true,
		AutoCompleteDesc: "Show the hashtags, mentions, phone numbers, emails and URLs found in a text",
		AutoCompleteHint: "[text]",
		AutocompleteData: model.NewAutocompleteData(socialLinksCommandTrigger, "[text]", "Preview the links found in a text"),
	})
	if err != nil {
		client.Log.Error("Failed to register command", "error", err)
	}
	return newHandler(client, extract)
}

func newHandler(client *pluginapi.Client, extract Extractor) *Handler {
	return &Handler{
		client:  client,
		extract: extract,
	}
}

// Handle executes a slash command registered by this plugin.
func (c *Handler) Handle(args *model.CommandArgs) (*model.CommandResponse, error) {
	fields := strings.Fields(args.Command)
	if len(fields) == 0 {
		return ephemeral("Empty command"), nil
	}

	trigger := strings.TrimPrefix(fields[0], "/")
	switch trigger {
	case socialLinksCommandTrigger:
		return c.executeSocialLinksCommand(args), nil
	default:
		return ephemeral(fmt.Sprintf("Unknown command: %s", args.Command)), nil
	}
}

func (c *Handler) executeSocialLinksCommand(args *model.CommandArgs) *model.CommandResponse {
	command := strings.TrimSpace(args.Command)
	text := strings.TrimSpace(strings.TrimPrefix(command, "/"+socialLinksCommandTrigger))
	if text == "" {
		return ephemeral("Usage: `/" + socialLinksCommandTrigger + " [text]`")
	}

	items := c.extract(text)
	if len(items) == 0 {
		return ephemeral("No links found.")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d link(s):\n", len(items))
	for _, item := range items {
		fmt.Fprintf(&sb, "- **%s** `%s` (%d-%d)\n", item.Category.Label(), item.Text, item.Start, item.End)
	}
	return ephemeral(strings.TrimSuffix(sb.String(), "\n"))
}

func ephemeral(text string) *model.CommandResponse {
	return &model.CommandResponse{
		ResponseType: model.CommandResponseTypeEphemeral,
		Text:         text,
	}
}
