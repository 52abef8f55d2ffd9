package utils

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/parnurzeal/gorequest"
	"golang.org/x/xerrors"
)

const appName = "patch-tuesday"

// StatusError is returned by FetchURL when the server answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error. status code: %d, url: %s", e.StatusCode, e.URL)
}

func ConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	return filepath.Join(configDir, appName)
}

// FetchURL returns the JSON body served at url. The request is attempted once.
func FetchURL(url, apikey string) ([]byte, error) {
	req := gorequest.New().Get(url).Set("Accept", "application/json")
	if apikey != "" {
		req.Set("api-key", apikey)
	}
	resp, body, errs := req.EndBytes()
	if len(errs) > 0 {
		return nil, xerrors.Errorf("HTTP error. url: %s, err: %w", url, errs[0])
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}
	return body, nil
}

func LookupEnv(key, defaultValue string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultValue
}
