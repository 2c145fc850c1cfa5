package service

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/kaviyashree6/chatbot/internal/config"
	"github.com/kaviyashree6/chatbot/internal/domain"
)

// builtinQuotes is the offline rotation shown when no remote quote is
// available.
var builtinQuotes = []domain.Quote{
	{Text: "The only way to do great work is to love what you do.", Author: "Steve Jobs"},
	{Text: "Happiness is not something ready-made. It comes from your own actions.", Author: "Dalai Lama"},
	{Text: "You are never too old to set another goal or to dream a new dream.", Author: "C.S. Lewis"},
	{Text: "The future belongs to those who believe in the beauty of their dreams.", Author: "Eleanor Roosevelt"},
	{Text: "It is during our darkest moments that we must focus to see the light.", Author: "Aristotle"},
	{Text: "Believe you can and you're halfway there.", Author: "Theodore Roosevelt"},
	{Text: "The best time to plant a tree was 20 years ago. The second best time is now.", Author: "Chinese Proverb"},
	{Text: "Great things never come from comfort zones.", Author: "Unknown"},
	{Text: "The harder you work for something, the greater you'll feel when you achieve it.", Author: "Unknown"},
	{Text: "Wake up with determination. Go to bed with satisfaction.", Author: "Unknown"},
	{Text: "Do something today that your future self will thank you for.", Author: "Unknown"},
	{Text: "Little things make big days.", Author: "Unknown"},
	{Text: "It's going to be hard, but hard does not mean impossible.", Author: "Unknown"},
	{Text: "Sometimes we're tested not to show our weaknesses, but to discover our strengths.", Author: "Unknown"},
	{Text: "You don't have to be great to start, but you have to start to be great.", Author: "Zig Ziglar"},
	{Text: "Be kind to yourself. You're doing the best you can.", Author: "Unknown"},
	{Text: "Every day is a new beginning. Take a deep breath, smile, and start again.", Author: "Unknown"},
	{Text: "Your mental health is a priority. Your happiness is essential. Your self-care is a necessity.", Author: "Unknown"},
}

// QuoteStore is the durable storage slice behind saved quotes.
type QuoteStore interface {
	InsertSavedQuote(ctx context.Context, userID uuid.UUID, quote, author string) (*domain.SavedQuote, error)
	ListSavedQuotes(ctx context.Context, userID uuid.UUID) ([]domain.SavedQuote, error)
	DeleteSavedQuote(ctx context.Context, id uuid.UUID) error
}

// QuoteService serves motivational quotes: a built-in rotation, a scraped
// remote feed, and the user's saved collection.
type QuoteService struct {
	store      QuoteStore
	feedURL    string
	httpClient *http.Client
	cache      *quoteCache
}

func NewQuoteService(store QuoteStore, feedURL string) *QuoteService {
	return &QuoteService{
		store:      store,
		feedURL:    feedURL,
		httpClient: &http.Client{Timeout: config.FetchTimeout},
		cache:      newQuoteCache(config.QuoteCacheDuration),
	}
}

// Daily returns the built-in quote of the day, stable within a calendar
// day.
func (s *QuoteService) Daily() domain.Quote {
	day := time.Now().Format("Mon Jan 02 2006")
	sum := 0
	for _, b := range []byte(day) {
		sum += int(b)
	}
	return builtinQuotes[sum%len(builtinQuotes)]
}

// Random returns a random built-in quote.
func (s *QuoteService) Random() domain.Quote {
	return builtinQuotes[rand.Intn(len(builtinQuotes))]
}

// FetchRemote scrapes a fresh quote from the configured feed, caching the
// result. Falls back to the daily built-in quote on any failure.
func (s *QuoteService) FetchRemote(ctx context.Context) domain.Quote {
	if cached := s.cache.Get(); cached != nil {
		return *cached
	}

	req, err := http.NewRequestWithContext(ctx, "GET", s.feedURL, nil)
	if err != nil {
		return s.Daily()
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return s.Daily()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return s.Daily()
	}

	quotes, err := parseQuoteFeed(resp.Body)
	if err != nil || len(quotes) == 0 {
		return s.Daily()
	}

	q := quotes[rand.Intn(len(quotes))]
	s.cache.Set(&q)
	return q
}

// parseQuoteFeed extracts quotes from an HTML page: blockquote bodies with
// an optional footer or cite naming the author.
func parseQuoteFeed(r io.Reader) ([]domain.Quote, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse quote feed: %w", err)
	}

	var quotes []domain.Quote
	doc.Find("blockquote").Each(func(_ int, sel *goquery.Selection) {
		author := strings.TrimSpace(sel.Find("footer, cite").First().Text())
		text := strings.TrimSpace(sel.Find("p").First().Text())
		if text == "" {
			clone := sel.Clone()
			clone.Find("footer, cite").Remove()
			text = strings.TrimSpace(clone.Text())
		}
		if text == "" {
			return
		}
		text = strings.Trim(text, "“”\"")
		if author == "" {
			author = "Unknown"
		}
		quotes = append(quotes, domain.Quote{Text: text, Author: author})
	})
	return quotes, nil
}

// Save adds a quote to the user's collection, refusing duplicates.
func (s *QuoteService) Save(ctx context.Context, userID uuid.UUID, q domain.Quote) (*domain.SavedQuote, error) {
	saved, err := s.store.ListSavedQuotes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved quotes: %w", err)
	}
	for _, existing := range saved {
		if existing.Quote == q.Text {
			return nil, domain.ErrQuoteAlreadySaved
		}
	}
	return s.store.InsertSavedQuote(ctx, userID, q.Text, q.Author)
}

func (s *QuoteService) ListSaved(ctx context.Context, userID uuid.UUID) ([]domain.SavedQuote, error) {
	return s.store.ListSavedQuotes(ctx, userID)
}

func (s *QuoteService) DeleteSaved(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteSavedQuote(ctx, id)
}
