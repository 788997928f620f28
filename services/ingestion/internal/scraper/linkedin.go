package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"jobtagger/common/errors"
	"jobtagger/common/models"
	"jobtagger/common/telemetry"
)

var tracer = telemetry.GetTracer("jobtagger/ingestion/scraper")

const (
	linkedInSearchURL = "https://www.linkedin.com/jobs/search/"
	// fieldTimeout bounds each per-card element read, in milliseconds.
	fieldTimeout = 2000
)

type Options struct {
	Headless        bool
	PageLoadTimeout time.Duration
	SettleDelay     time.Duration
	ScrollDelay     time.Duration
}

// LinkedInScraper drives a headless Chromium through the public LinkedIn job
// search. One search runs at a time.
type LinkedInScraper struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	opts    Options
	logger  *zap.Logger
	now     func() time.Time
}

func NewLinkedInScraper(logger *zap.Logger, opts Options) (*LinkedInScraper, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, errors.Unavailable("starting playwright", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args: []string{
			"--start-maximized",
			"--disable-blink-features=AutomationControlled",
		},
	})
	if err != nil {
		_ = pw.Stop()
		return nil, errors.Unavailable("launching chromium", err)
	}

	return &LinkedInScraper{
		pw:      pw,
		browser: browser,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
	}, nil
}

func searchURL(q Query) string {
	v := url.Values{}
	v.Set("keywords", q.Keywords)
	v.Set("location", q.Location)
	return linkedInSearchURL + "?" + v.Encode()
}

func (s *LinkedInScraper) Search(ctx context.Context, q Query) ([]models.Record, error) {
	_, span := tracer.Start(ctx, "LinkedInScraper.Search")
	defer span.End()

	target := searchURL(q)
	span.SetAttributes(telemetry.String("http.url", target))
	s.logger.Info("searching jobs", zap.String("url", target))

	page, err := s.browser.NewPage()
	if err != nil {
		span.RecordError(err)
		return nil, errors.Internal("opening page", err)
	}
	defer page.Close()

	page.SetDefaultNavigationTimeout(float64(s.opts.PageLoadTimeout.Milliseconds()))

	if _, err := page.Goto(target, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		span.RecordError(err)
		return nil, errors.Unavailable("loading search page", err)
	}
	page.WaitForTimeout(float64(s.opts.SettleDelay.Milliseconds()))

	if _, err := page.Evaluate("window.scrollTo(0, document.body.scrollHeight)"); err != nil {
		s.logger.Warn("failed to scroll search page", zap.Error(err))
	}
	page.WaitForTimeout(float64(s.opts.ScrollDelay.Milliseconds()))

	cards, selector := findCards(page)
	if len(cards) == 0 {
		s.logger.Warn("no job cards found with any selector")
		return nil, nil
	}
	s.logger.Info("found job cards",
		zap.Int("count", len(cards)),
		zap.String("selector", selector))

	if q.MaxJobs > 0 && len(cards) > q.MaxJobs {
		cards = cards[:q.MaxJobs]
	}

	now := s.now()
	var records []models.Record
	for i, loc := range cards {
		r, ok := buildRecord(locatorCard{loc: loc}, i+1, now)
		if !ok {
			s.logger.Debug("skipping job card: missing title or company", zap.Int("index", i+1))
			continue
		}
		s.logger.Debug("scraped job",
			zap.String("title", r.String(models.FieldTitle)),
			zap.String("company", r.String(models.FieldCompany)))
		records = append(records, r)
	}

	span.SetAttributes(telemetry.Int("jobs.count", len(records)))
	return records, nil
}

func findCards(page playwright.Page) ([]playwright.Locator, string) {
	for _, sel := range cardSelectors {
		cards, err := page.Locator(sel).All()
		if err != nil || len(cards) == 0 {
			continue
		}
		return cards, sel
	}
	return nil, ""
}

func (s *LinkedInScraper) Close() error {
	var errs []string
	if err := s.browser.Close(); err != nil {
		errs = append(errs, err.Error())
	}
	if err := s.pw.Stop(); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("closing scraper: %s", strings.Join(errs, "; "))
	}
	return nil
}

// locatorCard reads card fields without waiting on elements that are absent.
type locatorCard struct {
	loc playwright.Locator
}

func (c locatorCard) first(selector string) (playwright.Locator, error) {
	el := c.loc.Locator(selector).First()
	n, err := el.Count()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("no element matches %q", selector)
	}
	return el, nil
}

func (c locatorCard) Text(selector string) (string, error) {
	el, err := c.first(selector)
	if err != nil {
		return "", err
	}
	return el.InnerText(playwright.LocatorInnerTextOptions{Timeout: playwright.Float(fieldTimeout)})
}

func (c locatorCard) Attr(selector, name string) (string, error) {
	el, err := c.first(selector)
	if err != nil {
		return "", err
	}
	return el.GetAttribute(name, playwright.LocatorGetAttributeOptions{Timeout: playwright.Float(fieldTimeout)})
}
