package controllers

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/blogsphere/blogsphere/internal/app/services"
	"github.com/blogsphere/blogsphere/internal/middleware"
)

const rssItemLimit = 20

// RSSController serves the public RSS feed of approved posts
type RSSController struct {
	postService services.PostService
	siteURL     string
	logger      zerolog.Logger
}

// NewRSSController creates a new RSSController
func NewRSSController(postService services.PostService, siteURL string, logger zerolog.Logger) *RSSController {
	return &RSSController{
		postService: postService,
		siteURL:     siteURL,
		logger:      logger,
	}
}

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Author      string `xml:"author,omitempty"`
	GUID        string `xml:"guid"`
	PubDate     string `xml:"pubDate"`
}

// Feed serves the RSS 2.0 feed of the newest approved posts
// @Summary RSS feed
// @Description Returns the newest approved posts as RSS 2.0
// @Tags feed
// @Produce xml
// @Success 200 {string} string "RSS XML"
// @Router /rss.xml [get]
func (c *RSSController) Feed(ctx *gin.Context) {
	posts, err := c.postService.ListRecent(ctx.Request.Context(), rssItemLimit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	feed := rssFeed{
		Version: "2.0",
		Channel: rssChannel{
			Title:       "BlogSphere",
			Link:        c.siteURL,
			Description: "Latest posts from BlogSphere",
			Items:       make([]rssItem, 0, len(posts)),
		},
	}

	for _, post := range posts {
		link := fmt.Sprintf("%s/posts/%d", c.siteURL, post.ID)
		description := post.Content
		if len(description) > 500 {
			description = description[:500] + "..."
		}
		feed.Channel.Items = append(feed.Channel.Items, rssItem{
			Title:       post.Title,
			Link:        link,
			Description: description,
			Author:      post.Author.Username,
			GUID:        link,
			PubDate:     post.CreatedAt.Format(time.RFC1123Z),
		})
	}

	ctx.XML(http.StatusOK, feed)
}
