package kvstore

import (
	"encoding/json"

	"github.com/mattermost/mattermost/server/public/pluginapi"
	"github.com/pkg/errors"

	"github.com/fmartingr/mattermost-plugin-social-links/server/links"
)

const (
	postLinksKeyPrefix = "links_post_"
	clicksKeyPrefix    = "clicks_"
)

// We expose our calls to the KVStore pluginapi methods through this interface for testability and stability.
// This allows us to better control which values are stored with which keys.

type Client struct {
	client *pluginapi.Client
}

func NewKVStore(client *pluginapi.Client) KVStore {
	return Client{
		client: client,
	}
}

func postLinksKey(postID string) string {
	return postLinksKeyPrefix + postID
}

func clicksKey(category links.Category) string {
	return clicksKeyPrefix + category.Name()
}

// GetPostLinks retrieves the links extracted from a post
func (kv Client) GetPostLinks(postID string) (*PostLinks, error) {
	var record *PostLinks
	if err := kv.client.KV.Get(postLinksKey(postID), &record); err != nil {
		return nil, errors.Wrap(err, "failed to get post links")
	}
	return record, nil
}

// SavePostLinks stores the links extracted from a post, replacing any previous ones
func (kv Client) SavePostLinks(postID string, record PostLinks) error {
	if _, err := kv.client.KV.Set(postLinksKey(postID), record); err != nil {
		return errors.Wrap(err, "failed to save post links")
	}
	return nil
}

// DeletePostLinks forgets the link items of a post
func (kv Client) DeletePostLinks(postID string) error {
	if err := kv.client.KV.Delete(postLinksKey(postID)); err != nil {
		return errors.Wrap(err, "failed to delete post links")
	}
	return nil
}

// IncrementClicks atomically increments the click counter of a category
func (kv Client) IncrementClicks(category links.Category) (int64, error) {
	var total int64
	err := kv.client.KV.SetAtomicWithRetries(clicksKey(category), func(oldValue []byte) (interface{}, error) {
		var current int64
		if len(oldValue) > 0 {
			if err := json.Unmarshal(oldValue, &current); err != nil {
				return nil, errors.Wrap(err, "failed to unmarshal click counter")
			}
		}
		total = current + 1
		return total, nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, "failed to increment clicks for %s", category.Name())
	}
	return total, nil
}

// GetClickCounts returns the click counter of every category
func (kv Client) GetClickCounts() (map[links.Category]int64, error) {
	counts := make(map[links.Category]int64, len(links.Order))
	for _, category := range links.Order {
		var count int64
		if err := kv.client.KV.Get(clicksKey(category), &count); err != nil {
			return nil, errors.Wrapf(err, "failed to get clicks for %s", category.Name())
		}
		counts[category] = count
	}
	return counts, nil
}
