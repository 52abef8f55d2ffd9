package msrc

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"github.com/aquasecurity/patch-tuesday/cvrf"
	"github.com/aquasecurity/patch-tuesday/utils"
)

const (
	cvrfURL     = "https://api.msrc.microsoft.com/cvrf/v2.0/cvrf/"
	concurrency = 12
)

// ErrNoUpdate matches the errors returned for periods MSRC has no Security Update for.
var ErrNoUpdate = xerrors.New("no security update found")

// NoUpdateError is returned when MSRC answers a period with a non-success status,
// e.g. a month that has not been published yet.
type NoUpdateError struct {
	Period     string
	StatusCode int
}

func (e *NoUpdateError) Error() string {
	return fmt.Sprintf("No Security Update found for %s", e.Period)
}

func (e *NoUpdateError) Is(target error) bool {
	return target == ErrNoUpdate
}

type Config struct {
	*options
}

type option func(*options)

type options struct {
	url         string
	apiKey      string
	concurrency int
	progressBar bool
}

func WithURL(url string) option {
	return func(opts *options) { opts.url = url }
}

func WithAPIKey(apiKey string) option {
	return func(opts *options) { opts.apiKey = apiKey }
}

// WithConcurrency sets the maximum number of requests in flight in FetchYears.
func WithConcurrency(n int) option {
	return func(opts *options) {
		if n > 0 {
			opts.concurrency = n
		}
	}
}

func WithProgressBar(enabled bool) option {
	return func(opts *options) { opts.progressBar = enabled }
}

func NewConfig(opts ...option) Config {
	o := &options{
		url:         cvrfURL,
		concurrency: concurrency,
		progressBar: true,
	}

	for _, opt := range opts {
		opt(o)
	}

	return Config{
		options: o,
	}
}

// Result holds what FetchYears could gather. Errors has one entry per period that
// could not be fetched or decoded, and is nil if every period succeeded.
type Result struct {
	Vulnerabilities []Vulnerability
	Errors          *multierror.Error
}

// Fetch retrieves the Security Update of a single period, e.g. "2021-Jan".
// A non-success status is reported as an error matching ErrNoUpdate.
func (c Config) Fetch(period string) ([]Vulnerability, error) {
	doc, err := c.fetchDocument(period)
	if err != nil {
		return nil, err
	}
	return FromDocument(doc), nil
}

// FetchYears retrieves the twelve monthly Security Updates of every year. Failed
// periods are logged and skipped. Vulnerabilities are grouped by month, in no
// particular month order.
func (c Config) FetchYears(years []int) Result {
	periods := YearPeriods(years)

	var bar *pb.ProgressBar
	if c.progressBar {
		bar = pb.StartNew(len(periods))
		defer bar.Finish()
	}

	var (
		mu     sync.Mutex
		result Result
		g      errgroup.Group
	)
	g.SetLimit(c.concurrency)
	for _, period := range periods {
		period := period
		g.Go(func() error {
			if bar != nil {
				defer bar.Increment()
			}

			doc, err := c.fetchDocument(period)
			if err != nil {
				log.Printf("WARN: %s", err)
				mu.Lock()
				result.Errors = multierror.Append(result.Errors, err)
				mu.Unlock()
				return nil
			}

			vulns := FromDocument(doc)
			mu.Lock()
			result.Vulnerabilities = append(result.Vulnerabilities, vulns...)
			mu.Unlock()
			return nil
		})
	}
	// tasks never return an error
	_ = g.Wait()

	return result
}

func (c Config) fetchDocument(period string) (*cvrf.Document, error) {
	url := strings.TrimSuffix(c.url, "/") + "/" + period
	b, err := utils.FetchURL(url, c.apiKey)
	if err != nil {
		var statusErr *utils.StatusError
		if xerrors.As(err, &statusErr) {
			return nil, &NoUpdateError{Period: period, StatusCode: statusErr.StatusCode}
		}
		return nil, xerrors.Errorf("failed to fetch the %s Security Update: %w", period, err)
	}

	doc, err := cvrf.Unmarshal(b)
	if err != nil {
		return nil, xerrors.Errorf("failed to decode the %s Security Update: %w", period, err)
	}
	return doc, nil
}
