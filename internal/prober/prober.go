package prober

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// ErrFetchFailed wraps any probe-side failure: network error, timeout, or
// a non-2xx response from the listing page.
var ErrFetchFailed = errors.New("fetch failed")

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Result is the outcome of one probe. PageText and Titles are kept for
// diagnostics only; nothing is persisted between probes.
type Result struct {
	Found        bool
	MatchedTitle string
	Titles       []string
	PageText     string
	CheckedAt    time.Time
}

type Prober struct {
	resty         *resty.Client
	titleSelector string
	logger        zerolog.Logger
}

// New builds a Prober. titleSelector is the goquery selector for listing
// title nodes; when it matches nothing the probe falls back to searching
// the whole document text.
func New(timeout time.Duration, titleSelector string, logger zerolog.Logger) *Prober {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	return &Prober{resty: client, titleSelector: titleSelector, logger: logger}
}

// Check fetches url once and reports whether movieName appears in the
// listing. Matching is case-insensitive substring containment. Every call
// performs a fresh fetch; errors are returned, never retried here.
func (p *Prober) Check(url, movieName string) (Result, error) {
	res := Result{CheckedAt: time.Now()}

	p.logger.Info().Str("url", url).Msg("checking movie availability")

	resp, err := p.resty.R().Get(url)
	if err != nil {
		return res, fmt.Errorf("%w: GET %s: %v", ErrFetchFailed, url, err)
	}
	if !resp.IsSuccess() {
		return res, fmt.Errorf("%w: GET %s: status %s", ErrFetchFailed, url, resp.Status())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return res, fmt.Errorf("%w: parsing %s: %v", ErrFetchFailed, url, err)
	}

	res.PageText = doc.Text()
	needle := strings.ToLower(movieName)

	doc.Find(p.titleSelector).Each(func(_ int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Text())
		if title == "" {
			return
		}
		res.Titles = append(res.Titles, title)
		if !res.Found && strings.Contains(strings.ToLower(title), needle) {
			res.Found = true
			res.MatchedTitle = title
		}
	})

	if len(res.Titles) == 0 {
		// Page structure drift: the title selector matched nothing, so
		// fall back to the full document text.
		p.logger.Warn().Str("selector", p.titleSelector).
			Msg("no listing titles found, falling back to page text search")
		res.Found = strings.Contains(strings.ToLower(res.PageText), needle)
		if res.Found {
			res.MatchedTitle = movieName
		}
		return res, nil
	}

	if res.Found {
		p.logger.Info().Str("title", res.MatchedTitle).Msg("found target movie")
	} else {
		p.logger.Info().
			Str("movie", movieName).
			Int("listed", len(res.Titles)).
			Str("sample", strings.Join(firstN(res.Titles, 5), ", ")).
			Msg("movie not listed")
	}
	return res, nil
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
