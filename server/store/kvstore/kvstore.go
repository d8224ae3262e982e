package kvstore

import "github.com/fmartingr/mattermost-plugin-social-links/server/links"

//go:generate mockgen -destination=mocks/mock_kvstore.go -package=mocks github.com/fmartingr/mattermost-plugin-social-links/server/store/kvstore KVStore

// PostLinks is the extraction result stored for a post.
type PostLinks struct {
	Items []links.Item `json:"items"`
	// Modes is the category bitmask the items were extracted with
	Modes int `json:"modes"`
}

type KVStore interface {
	// GetPostLinks returns the links stored for a post, or nil when the post
	// was never processed.
	GetPostLinks(postID string) (*PostLinks, error)
	SavePostLinks(postID string, record PostLinks) error
	DeletePostLinks(postID string) error

	// IncrementClicks bumps the click counter of a category and returns the new total.
	IncrementClicks(category links.Category) (int64, error)
	GetClickCounts() (map[links.Category]int64, error)
}
