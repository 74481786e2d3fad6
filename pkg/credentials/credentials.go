// Package credentials resolves the Jira username/password pair, either
// from a netrc file or from an explicit user:pass argument.
package credentials

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jdxcode/netrc"
)

// Credentials is a resolved username/password pair.
type Credentials struct {
	Username string
	Password string
}

// FromNetrc reads the credentials for host from a netrc file.
// A leading "~" in path is expanded against the user home directory.
func FromNetrc(path, host string) (Credentials, error) {
	expanded, err := expandHome(path)
	if err != nil {
		return Credentials{}, err
	}
	rc, err := netrc.Parse(expanded)
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to read netrc file %s: %w", expanded, err)
	}
	machine := rc.Machine(host)
	if machine == nil {
		return Credentials{}, fmt.Errorf("no netrc entry for host %s in %s", host, expanded)
	}
	creds := Credentials{
		Username: machine.Get("login"),
		Password: machine.Get("password"),
	}
	if creds.Username == "" || creds.Password == "" {
		return Credentials{}, fmt.Errorf("incomplete netrc entry for host %s in %s", host, expanded)
	}
	return creds, nil
}

// FromUserPassword splits an explicit "user:pass" argument on the first
// colon. A missing separator is an error; the run must halt before any
// authenticated call is made with undefined credentials.
func FromUserPassword(s string) (Credentials, error) {
	user, pass, found := strings.Cut(s, ":")
	if !found {
		return Credentials{}, fmt.Errorf("failed to parse user:password")
	}
	if user == "" {
		return Credentials{}, fmt.Errorf("empty username in user:password")
	}
	return Credentials{Username: user, Password: pass}, nil
}

func expandHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
