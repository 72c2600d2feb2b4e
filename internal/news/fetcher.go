package news

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const (
	defaultSearchURL = "https://html.duckduckgo.com/html/"
	browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	maxHeadlines     = 8
)

// Sentinel bodies returned instead of errors. The prompt stage treats news as
// best-effort context, so a failed or empty fetch degrades to text the model
// can reason about rather than aborting the analysis.
const (
	SentinelNoResults   = "No specific news found for this topic."
	SentinelFetchFailed = "Could not fetch live news context."
)

// Fetcher scrapes recent headlines for an instrument or topic from the
// DuckDuckGo HTML endpoint, optionally restricted to a set of source domains.
type Fetcher struct {
	client    *resty.Client
	searchURL string
}

func NewFetcher() *Fetcher {
	client := resty.New().
		SetHeader("User-Agent", browserUserAgent).
		SetTimeout(10 * time.Second)
	return &Fetcher{client: client, searchURL: defaultSearchURL}
}

// FetchNews returns headline lines of the form "- [source] title: snippet",
// newest-ranked first, capped at eight. It never returns an error; failures
// collapse into sentinel text.
func (f *Fetcher) FetchNews(ctx context.Context, topic string, sources []string) string {
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParam("q", buildQuery(topic, sources)).
		Get(f.searchURL)
	if err != nil {
		log.Printf("news: search request failed: %v", err)
		return SentinelFetchFailed
	}
	if resp.IsError() {
		log.Printf("news: search returned status %d", resp.StatusCode())
		return SentinelFetchFailed
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		log.Printf("news: result page parse failed: %v", err)
		return SentinelFetchFailed
	}

	var lines []string
	doc.Find("div.result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Find("a.result__a").Text())
		if title == "" {
			return true
		}
		snippet := strings.TrimSpace(sel.Find(".result__snippet").Text())
		source := strings.TrimSpace(sel.Find(".result__url").Text())
		if source == "" {
			source = "web"
		}
		line := fmt.Sprintf("- [%s] %s", source, title)
		if snippet != "" {
			line += ": " + snippet
		}
		lines = append(lines, line)
		return len(lines) < maxHeadlines
	})

	if len(lines) == 0 {
		return SentinelNoResults
	}
	return strings.Join(lines, "\n")
}

// buildQuery combines the topic with a site-restriction clause when source
// domains were requested, e.g. `XAUUSD news (site:investing.com OR
// site:forexfactory.com)`.
func buildQuery(topic string, sources []string) string {
	query := topic + " news"
	if len(sources) == 0 {
		return query
	}
	clauses := make([]string, 0, len(sources))
	for _, s := range sources {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		clauses = append(clauses, "site:"+s)
	}
	if len(clauses) == 0 {
		return query
	}
	return query + " (" + strings.Join(clauses, " OR ") + ")"
}
