package main

import (
	"github.com/mattermost/mattermost/server/public/plugin"
	"github.com/pkg/errors"

	"github.com/fmartingr/mattermost-plugin-social-links/server/links"
	"github.com/fmartingr/mattermost-plugin-social-links/server/span"
	"github.com/fmartingr/mattermost-plugin-social-links/server/store/kvstore"
)

// LinkProcessor extracts link items from posts and keeps them in the KV store
type LinkProcessor struct {
	api   plugin.API
	store kvstore.KVStore
}

// NewLinkProcessor creates a new link processor
func NewLinkProcessor(api plugin.API, store kvstore.KVStore) *LinkProcessor {
	return &LinkProcessor{
		api:   api,
		store: store,
	}
}

// ProcessPost extracts the links of a post message and stores them, replacing
// whatever was stored for the post before
func (p *LinkProcessor) ProcessPost(postID, message string, config *configuration) ([]links.Item, error) {
	items := links.Extract(message, config.enabled)

	record := kvstore.PostLinks{Items: items, Modes: config.enabled.Flags()}
	if err := p.store.SavePostLinks(postID, record); err != nil {
		return nil, errors.Wrapf(err, "failed to store links of post %s", postID)
	}

	p.api.LogDebug("Processed post links", "postID", postID, "count", len(items))
	return items, nil
}

// ForgetPost removes the stored links of a post
func (p *LinkProcessor) ForgetPost(postID string) error {
	if err := p.store.DeletePostLinks(postID); err != nil {
		return errors.Wrapf(err, "failed to delete links of post %s", postID)
	}
	return nil
}

// ItemsForPost returns the link items of a post. Posts created before the
// plugin was enabled, or extracted with other link modes, are processed on demand.
func (p *LinkProcessor) ItemsForPost(postID string, config *configuration) ([]links.Item, error) {
	record, err := p.store.GetPostLinks(postID)
	switch {
	case err != nil:
		// Log error but fall back to extracting again
		p.api.LogWarn("Failed to load stored post links, extracting again", "postID", postID, "error", err.Error())
	case record != nil && record.Modes == config.enabled.Flags():
		return record.Items, nil
	case record != nil:
		p.api.LogDebug("Link modes changed, extracting post links again", "postID", postID, "stored", record.Modes, "current", config.enabled.Flags())
	}

	post, appErr := p.api.GetPost(postID)
	if appErr != nil {
		return nil, errors.Wrap(appErr, "failed to get post")
	}

	return p.ProcessPost(postID, post.Message, config)
}

// SpansForPost returns the styled spans of a post
func (p *LinkProcessor) SpansForPost(postID string, config *configuration) (span.Set, error) {
	items, err := p.ItemsForPost(postID, config)
	if err != nil {
		return nil, err
	}
	return config.buildSpans(items), nil
}
