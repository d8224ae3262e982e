package main

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/gorilla/mux"
	"github.com/mattermost/mattermost/server/public/model"
	"github.com/mattermost/mattermost/server/public/plugin"

	"github.com/fmartingr/mattermost-plugin-social-links/server/gesture"
	"github.com/fmartingr/mattermost-plugin-social-links/server/links"
	"github.com/fmartingr/mattermost-plugin-social-links/server/span"
)

const (
	// maxExtractTextLength bounds the text accepted by the extract endpoint in UTF-16 units,
	// matching the server post size limit
	maxExtractTextLength = model.PostMessageMaxRunesV2

	// maxExtractBodySize leaves room for 4 byte runes and the JSON wrapper
	maxExtractBodySize = maxExtractTextLength*4 + 1024
)

// ServeHTTP handles requests from the webapp.
// The root URL is currently <siteUrl>/plugins/com.github.fmartingr.social-links/api/v1/.
func (p *Plugin) ServeHTTP(c *plugin.Context, w http.ResponseWriter, r *http.Request) {
	router := mux.NewRouter()

	// Middleware to require that the user is logged in
	router.Use(p.MattermostAuthorizationRequired)

	apiRouter := router.PathPrefix("/api/v1").Subrouter()

	apiRouter.HandleFunc("/config", p.GetConfig).Methods(http.MethodGet)
	apiRouter.HandleFunc("/extract", p.Extract).Methods(http.MethodPost)
	apiRouter.HandleFunc("/posts/{postId}/links", p.GetPostLinks).Methods(http.MethodGet)
	apiRouter.HandleFunc("/posts/{postId}/gestures", p.HandleGesture).Methods(http.MethodPost)
	apiRouter.HandleFunc("/stats", p.GetStats).Methods(http.MethodGet)

	router.ServeHTTP(w, r)
}

func (p *Plugin) MattermostAuthorizationRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("Mattermost-User-ID")
		if userID == "" {
			// Log for debugging - Mattermost should automatically add this header
			p.API.LogWarn("Missing Mattermost-User-ID header in request", "path", r.URL.Path, "method", r.Method)
			http.Error(w, "Not authorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type configResponse struct {
	Categories       []links.Category          `json:"categories"`
	Colors           map[links.Category]string `json:"colors"`
	SelectedColor    string                    `json:"selectedColor"`
	UnderlineEnabled bool                      `json:"underlineEnabled"`
}

type extractRequest struct {
	Text string `json:"text"`
	// Categories optionally narrows extraction to some of the enabled categories
	Categories []string `json:"categories"`
}

type extractResponse struct {
	Items []links.Item `json:"items"`
}

type spanResponse struct {
	Category     links.Category `json:"category"`
	Start        int            `json:"start"`
	End          int            `json:"end"`
	Text         string         `json:"text"`
	Color        string         `json:"color"`
	PressedColor string         `json:"pressedColor"`
	DrawColor    string         `json:"drawColor"`
	Underline    bool           `json:"underline"`
	Pressed      bool           `json:"pressed"`
}

type linksResponse struct {
	PostID string         `json:"postId"`
	Spans  []spanResponse `json:"spans"`
}

type gestureRequest struct {
	SessionID string       `json:"sessionId"`
	Phase     string       `json:"phase"`
	X         float32      `json:"x"`
	Y         float32      `json:"y"`
	Line      gesture.Rect `json:"line"`
	// Offset is omitted when the layout could not resolve a character
	Offset *int `json:"offset"`
}

type selectionResponse struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type clickResponse struct {
	Category links.Category `json:"category"`
	Label    string         `json:"label"`
	Text     string         `json:"text"`
}

type gestureResponse struct {
	Consumed  bool               `json:"consumed"`
	Pressed   *spanResponse      `json:"pressed"`
	Selection *selectionResponse `json:"selection"`
	Clicked   *clickResponse     `json:"clicked"`
}

type statsResponse struct {
	Clicks map[links.Category]int64 `json:"clicks"`
}

func newSpanResponse(s *span.Span) spanResponse {
	return spanResponse{
		Category:     s.Category,
		Start:        s.Start,
		End:          s.End,
		Text:         s.Text,
		Color:        formatColor(s.NormalColor),
		PressedColor: formatColor(s.PressedColor),
		DrawColor:    formatColor(s.DrawColor()),
		Underline:    s.Underline,
		Pressed:      s.Pressed(),
	}
}

// GetConfig returns how links are detected and styled
func (p *Plugin) GetConfig(w http.ResponseWriter, r *http.Request) {
	config := p.getConfiguration()

	colors := make(map[links.Category]string, len(links.Order))
	for _, category := range links.Order {
		colors[category] = formatColor(config.palette.Color(category))
	}

	categories := config.enabled.Categories()
	if categories == nil {
		categories = []links.Category{}
	}

	p.writeJSON(w, configResponse{
		Categories:       categories,
		Colors:           colors,
		SelectedColor:    formatColor(config.selected),
		UnderlineEnabled: config.UnderlineEnabled,
	})
}

// Extract returns the links found in an arbitrary text
func (p *Plugin) Extract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxExtractBodySize)

	var request extractRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			http.Error(w, "Text too long", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if links.UTF16Len(request.Text) > maxExtractTextLength {
		http.Error(w, "Text too long", http.StatusRequestEntityTooLarge)
		return
	}

	enabled := p.getConfiguration().enabled
	if len(request.Categories) > 0 {
		requested, err := parseCategories(request.Categories)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		enabled = enabled.Intersect(requested)
	}

	items := links.Extract(request.Text, enabled)
	if items == nil {
		items = []links.Item{}
	}

	p.writeJSON(w, extractResponse{Items: items})
}

// GetPostLinks returns the styled link spans of a post
func (p *Plugin) GetPostLinks(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("Mattermost-User-ID")
	postID := mux.Vars(r)["postId"]

	if status, ok := p.checkPostAccess(userID, postID); !ok {
		http.Error(w, http.StatusText(status), status)
		return
	}

	spans, err := p.linkProcessor.SpansForPost(postID, p.getConfiguration())
	if err != nil {
		p.API.LogError("Failed to get post links", "postID", postID, "error", err.Error())
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := linksResponse{PostID: postID, Spans: make([]spanResponse, 0, len(spans))}
	for _, s := range spans {
		response.Spans = append(response.Spans, newSpanResponse(s))
	}

	p.writeJSON(w, response)
}

// HandleGesture feeds one pointer event of a webapp widget to its gesture session
func (p *Plugin) HandleGesture(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("Mattermost-User-ID")
	postID := mux.Vars(r)["postId"]

	var request gestureRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if request.SessionID == "" {
		http.Error(w, "Session ID is required", http.StatusBadRequest)
		return
	}

	if status, ok := p.checkPostAccess(userID, postID); !ok {
		http.Error(w, http.StatusText(status), status)
		return
	}

	offset := -1
	if request.Offset != nil {
		offset = *request.Offset
	}
	event := gesture.Event{
		Phase:  gesture.ParsePhase(request.Phase),
		X:      request.X,
		Y:      request.Y,
		Line:   request.Line,
		Offset: offset,
	}

	key := SessionKey{UserID: userID, PostID: postID, SessionID: request.SessionID}
	result, err := p.gestureSessions.Handle(key, event, func() (span.Set, error) {
		return p.linkProcessor.SpansForPost(postID, p.getConfiguration())
	})
	if err != nil {
		p.API.LogError("Failed to start gesture session", "postID", postID, "error", err.Error())
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := gestureResponse{Consumed: result.Consumed}
	if result.Pressed != nil {
		pressed := newSpanResponse(result.Pressed)
		response.Pressed = &pressed
	}
	if result.Selection != nil {
		response.Selection = &selectionResponse{Start: result.Selection.Start, End: result.Selection.End}
	}
	if result.Click != nil {
		response.Clicked = &clickResponse{
			Category: result.Click.Category,
			Label:    result.Click.Category.Label(),
			Text:     result.Click.Text,
		}
		if err := p.clickNotifier.Notify(*result.Click); err != nil {
			p.API.LogError("Failed to notify link click", "postID", postID, "error", err.Error())
		}
	}

	p.writeJSON(w, response)
}

// GetStats returns the number of clicks per category (admin only)
func (p *Plugin) GetStats(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("Mattermost-User-ID")

	// Check if user is system admin
	user, appErr := p.API.GetUser(userID)
	if appErr != nil || !user.IsInRole(model.SystemAdminRoleId) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	counts, err := p.kvstore.GetClickCounts()
	if err != nil {
		p.API.LogError("Failed to get click counts", "error", err.Error())
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	p.writeJSON(w, statsResponse{Clicks: counts})
}

// parseCategories decodes category names, rejecting unknown and repeated ones
func parseCategories(names []string) (links.Set, error) {
	var set links.Set
	for _, name := range names {
		category, err := links.ParseCategory(name)
		if err != nil {
			return links.Set{}, err
		}
		if err := set.Add(category); err != nil {
			return links.Set{}, err
		}
	}
	return set, nil
}

// checkPostAccess verifies that the user can read the channel of a post
func (p *Plugin) checkPostAccess(userID, postID string) (int, bool) {
	if postID == "" {
		return http.StatusBadRequest, false
	}

	post, appErr := p.API.GetPost(postID)
	if appErr != nil {
		return http.StatusNotFound, false
	}

	channel, appErr := p.API.GetChannel(post.ChannelId)
	if appErr != nil {
		return http.StatusNotFound, false
	}

	// Private, direct and group channels require membership
	if !channel.IsOpen() {
		member, appErr := p.API.GetChannelMember(post.ChannelId, userID)
		if appErr != nil || member == nil {
			return http.StatusForbidden, false
		}
	}

	return http.StatusOK, true
}

func (p *Plugin) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		p.API.LogError("Failed to encode response", "error", err.Error())
	}
}
