package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/kenny-evitt/bmx-fogbugz/internal/fogbugz"
)

type commandContext struct {
	deps   Dependencies
	global *GlobalOptions
}

// resolveCredentials fills the base URL, email and password from
// flags, then the FOGBUGZ_* environment, then the stored auth file.
// The reported source names where the last missing field came from.
func (c *commandContext) resolveCredentials() (fogbugz.Credentials, string, error) {
	creds := fogbugz.Credentials{
		BaseURL:  c.global.URL,
		Email:    c.global.Email,
		Password: c.global.Password,
	}
	source := "flag"

	if !credentialsComplete(creds) {
		if creds.BaseURL == "" {
			creds.BaseURL = os.Getenv("FOGBUGZ_URL")
		}
		if creds.Email == "" {
			creds.Email = os.Getenv("FOGBUGZ_EMAIL")
		}
		if creds.Password == "" {
			creds.Password = os.Getenv("FOGBUGZ_PASSWORD")
		}
		source = "env"
	}

	if !credentialsComplete(creds) && c.deps.AuthStore != nil {
		data, ok, err := c.deps.AuthStore.Load()
		if err != nil {
			return fogbugz.Credentials{}, "", err
		}
		if ok {
			if creds.BaseURL == "" {
				creds.BaseURL = data.BaseURL
			}
			if creds.Email == "" {
				creds.Email = data.Email
			}
			if creds.Password == "" {
				creds.Password = data.Password
			}
			source = "file"
		}
	}

	if !credentialsComplete(creds) {
		return fogbugz.Credentials{}, "", errors.New(
			"no FogBugz credentials found; run 'fogbugz auth login' or set FOGBUGZ_URL, FOGBUGZ_EMAIL and FOGBUGZ_PASSWORD")
	}
	return creds, source, nil
}

func credentialsComplete(creds fogbugz.Credentials) bool {
	return creds.BaseURL != "" && creds.Email != "" && creds.Password != ""
}

func (c *commandContext) apiClient() (fogbugz.API, error) {
	creds, _, err := c.resolveCredentials()
	if err != nil {
		return nil, err
	}
	if c.deps.NewClient == nil {
		return nil, fmt.Errorf("no API client configured")
	}
	return c.deps.NewClient(creds, c.global.Timeout), nil
}

// categoryFilter turns the optional --category flag into the filter
// list the connector operations take.
func categoryFilter(category string) []string {
	if category == "" {
		return nil
	}
	return []string{category}
}
