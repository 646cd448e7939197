// Package telegraph imports blog posts from Telegraph pages
// (telegra.ph), which have no API worth the name, so the page HTML is
// fetched and the article content extracted.
package telegraph

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

var ErrNoArticle = errors.New("page has no article content")

// Page is the extracted content of a Telegraph page.
type Page struct {
	Title       string
	ContentHTML string
}

// Client fetches and parses Telegraph pages.
type Client struct {
	http *http.Client
	log  *zap.Logger
}

func NewClient(log *zap.Logger) *Client {
	return &Client{
		http: &http.Client{Timeout: 15 * time.Second},
		log:  log,
	}
}

// Fetch downloads url and extracts the article title and body HTML.
func (c *Client) Fetch(ctx context.Context, url string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page HTML: %w", err)
	}

	article := findNode(doc, "article")
	if article == nil {
		return nil, ErrNoArticle
	}

	page := &Page{}
	if h1 := findNode(article, "h1"); h1 != nil {
		page.Title = strings.TrimSpace(textContent(h1))
	}
	if page.Title == "" {
		if t := findNode(doc, "title"); t != nil {
			page.Title = strings.TrimSpace(textContent(t))
		}
	}

	var buf bytes.Buffer
	for child := article.FirstChild; child != nil; child = child.NextSibling {
		// The h1 becomes the post title; don't duplicate it in the body
		if child.Type == html.ElementNode && child.Data == "h1" {
			continue
		}
		if err := html.Render(&buf, child); err != nil {
			return nil, fmt.Errorf("failed to render article HTML: %w", err)
		}
	}
	page.ContentHTML = strings.TrimSpace(buf.String())

	c.log.Info("imported telegraph page",
		zap.String("url", url),
		zap.String("title", page.Title),
		zap.Int("content_bytes", len(page.ContentHTML)),
	)

	return page, nil
}

func findNode(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findNode(child, tag); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		sb.WriteString(textContent(child))
	}
	return sb.String()
}
