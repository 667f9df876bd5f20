// ABOUTME: Content extraction service reducing a bookmarked page to plain main text
// ABOUTME: Uses goquery region selectors with go-readability and full-body fallbacks

package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"bookmarkcast-api/core/domain"
	"bookmarkcast-api/core/errors"
	"bookmarkcast-api/core/interfaces"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

const (
	// MinContentLength is the shortest normalized text accepted as content
	MinContentLength = 50

	// regionMinLength is how long a candidate region must be to win over the fallbacks
	regionMinLength = 100

	maxBodyBytes = 5 * 1024 * 1024
	cachePrefix  = "content:"
)

// contentSelectors are tried in order; the first long enough region wins
var contentSelectors = []string{
	"article",
	"[role='main']",
	"main",
	"[itemprop='articleBody']",
	".post-content",
	".entry-content",
	".article-content",
	".article-body",
	"#content",
	".content",
	"#main",
}

// noiseSelector matches sub-elements that never carry article text. Class
// selectors match whole class tokens, so wrappers such as "has-comments" survive.
const noiseSelector = "script, style, noscript, template, svg, iframe, form, nav, header, footer, aside, " +
	".ad, .ads, .advert, .advertisement, .sponsor, .sponsored, " +
	".comments, #comments, .comment, .comment-list, .comments-area, " +
	".social, .social-share, .share, .sharing, .share-buttons"

var (
	punctuationNoise = regexp.MustCompile(`[^\p{L}\p{N}\s.,!?;:'"()%$&/\-]+`)
	repeatedPunct    = regexp.MustCompile(`([.,!?;:\-])[.,!?;:\-]{2,}`)
	whitespace       = regexp.MustCompile(`\s+`)
)

// Service implements interfaces.ContentExtractor
type Service struct {
	client   interfaces.HTTPClient
	cache    interfaces.Cache
	cacheTTL time.Duration
	logger   interfaces.Logger
}

// NewService creates an extractor. deps.Cache may be nil to disable caching.
func NewService(deps interfaces.Dependencies, cacheTTL time.Duration) *Service {
	return &Service{
		client:   deps.HTTPClient,
		cache:    deps.Cache,
		cacheTTL: cacheTTL,
		logger:   deps.Logger,
	}
}

// Extract fetches url and returns its readable content. Fetch failures are
// *errors.FetchError; pages with too little text are *errors.ExtractionError.
func (s *Service) Extract(ctx context.Context, url string) (*domain.ExtractedContent, error) {
	if cached := s.fromCache(ctx, url); cached != nil {
		return cached, nil
	}

	resp, err := s.client.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body().Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body(), maxBodyBytes))
	if err != nil {
		return nil, &errors.FetchError{URL: url, Attempts: 1, StatusCode: resp.StatusCode(), Err: err}
	}

	content, err := s.parse(url, body)
	if err != nil {
		return nil, err
	}

	s.store(ctx, content)
	return content, nil
}

func (s *Service) parse(pageURL string, body []byte) (*domain.ExtractedContent, error) {
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, &errors.ExtractionError{URL: pageURL, Min: MinContentLength}
	}
	doc := goquery.NewDocumentFromNode(root)

	title := pageTitle(doc)
	doc.Find(noiseSelector).Remove()

	text := ""
	for _, selector := range contentSelectors {
		candidate := normalize(doc.Find(selector).First().Text())
		if utf8.RuneCountInString(candidate) > regionMinLength {
			text = candidate
			s.logger.Debug("Content region selected", map[string]interface{}{
				"url":      pageURL,
				"selector": selector,
			})
			break
		}
	}

	if text == "" {
		article, readErr := readArticle(pageURL, body)
		if readErr == nil {
			if candidate := normalize(article.TextContent); utf8.RuneCountInString(candidate) > regionMinLength {
				text = candidate
			}
			if title == "" {
				title = strings.TrimSpace(article.Title)
			}
		}
	}

	if text == "" {
		text = normalize(doc.Find("body").Text())
	}

	if n := utf8.RuneCountInString(text); n < MinContentLength {
		return nil, &errors.ExtractionError{URL: pageURL, Length: n, Min: MinContentLength}
	}

	return &domain.ExtractedContent{URL: pageURL, Title: title, Text: text}, nil
}

func readArticle(pageURL string, body []byte) (readability.Article, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return readability.Article{}, err
	}
	return readability.FromReader(bytes.NewReader(body), parsed)
}

func pageTitle(doc *goquery.Document) string {
	if og, ok := doc.Find("meta[property='og:title']").Attr("content"); ok && strings.TrimSpace(og) != "" {
		return strings.TrimSpace(og)
	}
	return whitespace.ReplaceAllString(strings.TrimSpace(doc.Find("title").First().Text()), " ")
}

// normalize collapses whitespace and strips punctuation noise
func normalize(text string) string {
	text = punctuationNoise.ReplaceAllString(text, " ")
	text = repeatedPunct.ReplaceAllString(text, "$1")
	text = whitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func (s *Service) fromCache(ctx context.Context, url string) *domain.ExtractedContent {
	if s.cache == nil {
		return nil
	}

	data, err := s.cache.Get(ctx, cachePrefix+url)
	if err != nil {
		return nil
	}

	var content domain.ExtractedContent
	if err := json.Unmarshal(data, &content); err != nil {
		s.logger.Warn("Discarding unreadable cached content", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return nil
	}

	s.logger.Debug("Content cache hit", map[string]interface{}{"url": url})
	return &content
}

// store caches successful extractions only so failures are always refetched
func (s *Service) store(ctx context.Context, content *domain.ExtractedContent) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(content)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cachePrefix+content.URL, data, s.cacheTTL); err != nil {
		s.logger.Warn("Failed to cache extracted content", map[string]interface{}{
			"url":   content.URL,
			"error": err.Error(),
		})
	}
}
