package main

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/fmartingr/mattermost-plugin-social-links/server/links"
	"github.com/fmartingr/mattermost-plugin-social-links/server/span"
)

const (
	defaultLinkColor     = "#FF0000"
	defaultSelectedColor = "#CCCCCC"
)

// configuration captures the plugin's external configuration as exposed in the Mattermost server
// configuration, as well as values computed from the configuration. Any public fields will be
// deserialized from the Mattermost server configuration in OnConfigurationChange.
//
// As plugins are inherently concurrent (hooks being called asynchronously), and the plugin
// configuration can change at any time, access to the configuration must be synchronized. The
// strategy used in this plugin is to guard a pointer to the configuration, and replace the entire
// struct whenever it changes. A configuration is never modified after setConfiguration.
type configuration struct {
	// LinkModes is a bitmask of the enabled link categories
	// (hashtag=1, mention=2, phone=4, email=8, url=16).
	LinkModes int

	HashtagColor  string
	MentionColor  string
	PhoneColor    string
	EmailColor    string
	URLColor      string
	SelectedColor string

	UnderlineEnabled bool

	// computed by compile
	enabled  links.Set
	palette  span.Palette
	selected color.RGBA
}

// newDefaultConfiguration is used until the server delivers the first configuration.
func newDefaultConfiguration() *configuration {
	config := &configuration{
		LinkModes: links.AllCategories().Flags(),
	}
	if err := config.compile(); err != nil {
		panic(err)
	}
	return config
}

// compile validates the raw settings and derives the computed fields.
func (c *configuration) compile() error {
	c.enabled = links.SetFromFlags(c.LinkModes)

	colors := []struct {
		setting string
		value   string
		dst     *color.RGBA
		def     string
	}{
		{"HashtagColor", c.HashtagColor, &c.palette.Hashtag, defaultLinkColor},
		{"MentionColor", c.MentionColor, &c.palette.Mention, defaultLinkColor},
		{"PhoneColor", c.PhoneColor, &c.palette.Phone, defaultLinkColor},
		{"EmailColor", c.EmailColor, &c.palette.Email, defaultLinkColor},
		{"URLColor", c.URLColor, &c.palette.URL, defaultLinkColor},
		{"SelectedColor", c.SelectedColor, &c.selected, defaultSelectedColor},
	}
	for _, setting := range colors {
		parsed, err := parseColor(setting.value, setting.def)
		if err != nil {
			return errors.Wrapf(err, "invalid %s", setting.setting)
		}
		*setting.dst = parsed
	}

	return nil
}

// buildSpans turns extracted items into spans styled by this configuration.
func (c *configuration) buildSpans(items []links.Item) span.Set {
	return span.Build(items, c.palette.Color, c.selected, c.UnderlineEnabled)
}

// parseColor parses a hex color, falling back to def when value is empty.
func parseColor(value, def string) (color.RGBA, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = def
	}
	if !strings.HasPrefix(value, "#") {
		value = "#" + value
	}

	parsed, err := colorful.Hex(value)
	if err != nil {
		return color.RGBA{}, errors.Wrapf(err, "could not parse color %q", value)
	}

	r, g, b := parsed.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// formatColor renders a color as the hex string the webapp expects.
func formatColor(c color.RGBA) string {
	converted, _ := colorful.MakeColor(c)
	return strings.ToUpper(converted.Hex())
}

// getConfiguration retrieves the active configuration under lock, making it safe to use
// concurrently. The active configuration may change underneath the client of this method, but
// the struct returned by this API call is considered immutable.
func (p *Plugin) getConfiguration() *configuration {
	p.configurationLock.RLock()
	defer p.configurationLock.RUnlock()

	if p.configuration == nil {
		return newDefaultConfiguration()
	}

	return p.configuration
}

// setConfiguration replaces the active configuration under lock.
//
// Do not call setConfiguration while holding the configurationLock, as sync.Mutex is not
// reentrant. In particular, avoid using the plugin API entirely, as this may in turn trigger a
// hook back into the plugin. If that hook attempts to acquire this lock, a deadlock may occur.
//
// This method panics if setConfiguration is called with the existing configuration. This almost
// certainly means that the configuration was modified without being cloned and may result in
// an unsafe access.
func (p *Plugin) setConfiguration(configuration *configuration) {
	p.configurationLock.Lock()
	defer p.configurationLock.Unlock()

	if configuration != nil && p.configuration == configuration {
		panic("setConfiguration called with the existing configuration")
	}

	p.configuration = configuration
}

// OnConfigurationChange is invoked when configuration changes may have been made.
func (p *Plugin) OnConfigurationChange() error {
	var configuration = new(configuration)

	// Load the public configuration fields from the Mattermost server configuration.
	if err := p.API.LoadPluginConfiguration(configuration); err != nil {
		return errors.Wrap(err, "failed to load plugin configuration")
	}

	if err := configuration.compile(); err != nil {
		p.API.LogError("Invalid plugin configuration", "error", err.Error())
		return errors.Wrap(err, "invalid plugin configuration")
	}

	p.setConfiguration(configuration)

	// Open gesture sessions hold spans styled and filtered by the old settings
	if p.gestureSessions != nil {
		if dropped := p.gestureSessions.DropAll(); dropped > 0 {
			p.API.LogDebug("Dropped gesture sessions after configuration change", "sessions", dropped)
		}
	}

	p.API.LogDebug("Loaded configuration",
		"linkModes", configuration.LinkModes,
		"underline", configuration.UnderlineEnabled,
	)

	return nil
}
