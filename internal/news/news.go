// Package news fetches technology headlines on the host side of the bridge.
package news

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

const (
	// DefaultEndpoint is the top-headlines API.
	DefaultEndpoint = "https://newsapi.org/v2/top-headlines"

	// Country, Category and PageSize are the fixed query.
	Country  = "us"
	Category = "technology"
	PageSize = 10

	// APITimeout bounds a single fetch.
	APITimeout = 10 * time.Second

	// NoDescription replaces a missing article description.
	NoDescription = "No description available"

	// maxBody caps the response size read from the API.
	maxBody = 4 << 20
)

// Source names the publisher of an article.
type Source struct {
	Name string `json:"name"`
}

// Article is one headline.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PublishedAt string `json:"publishedAt"`
	Source      Source `json:"source"`
	URL         string `json:"url"`
}

// Summary returns the description or a fallback when it is missing.
func (a Article) Summary() string {
	if a.Description == "" {
		return NoDescription
	}
	return a.Description
}

// Date formats PublishedAt as a US locale date (1/2/2006).
// Unparsable values are returned as-is.
func (a Article) Date() string {
	t, err := time.Parse(time.RFC3339, a.PublishedAt)
	if err != nil {
		return a.PublishedAt
	}
	return t.Local().Format("1/2/2006")
}

// Response is what FetchNews hands back to the UI.
// Articles is never nil.
type Response struct {
	Articles []Article `json:"articles"`
}

// Empty returns a response with no articles.
func Empty() Response {
	return Response{Articles: []Article{}}
}

// Fetcher returns headlines. Implementations never fail: any problem
// yields an empty article list.
type Fetcher interface {
	Fetch(ctx context.Context) Response
}

// Service fetches headlines from the top-headlines API.
type Service struct {
	endpoint string
	client   *http.Client
	hasKey   bool
	log      *log.Logger
}

// Options configures a Service.
type Options struct {
	// APIKey authenticates against the API. Without one every fetch is empty.
	APIKey string

	// Endpoint overrides DefaultEndpoint.
	Endpoint string

	// HTTPClient is the base client (for testing). Defaults to http.DefaultClient.
	HTTPClient *http.Client

	Logger *log.Logger
}

// New creates a Service. The key travels in the Authorization header, not the URL.
func New(opts Options) *Service {
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	base := opts.HTTPClient
	if base == nil {
		base = http.DefaultClient
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}

	client := &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.APIKey}),
			Base:   base.Transport,
		},
		Timeout: base.Timeout,
	}

	return &Service{
		endpoint: endpoint,
		client:   client,
		hasKey:   opts.APIKey != "",
		log:      logger,
	}
}

// Fetch performs one GET for the fixed query.
func (s *Service) Fetch(ctx context.Context) Response {
	if !s.hasKey {
		s.log.Debug("news: no api key configured")
		return Empty()
	}

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	resp, err := s.fetch(ctx)
	if err != nil {
		s.log.WithError(err).Warn("news: fetch failed")
		return Empty()
	}
	return resp
}

func (s *Service) fetch(ctx context.Context) (Response, error) {
	u, err := url.Parse(s.endpoint)
	if err != nil {
		return Response{}, err
	}
	q := u.Query()
	q.Set("country", Country)
	q.Set("category", Category)
	q.Set("pageSize", strconv.Itoa(PageSize))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer res.Body.Close()

	if err := googleapi.CheckResponse(res); err != nil {
		return Response{}, err
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBody))
	if err != nil {
		return Response{}, err
	}
	return Decode(body)
}

// Decode parses an API response body. A body without an articles array
// decodes to an empty list.
func Decode(body []byte) (Response, error) {
	var r Response
	if err := sonic.Unmarshal(body, &r); err != nil {
		return Response{}, err
	}
	if r.Articles == nil {
		r.Articles = []Article{}
	}
	return r, nil
}
