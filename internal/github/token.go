package github

import (
	"context"
	"errors"
	"net/url"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/samber/lo"
)

type AuthTokenSource string

const (
	AuthTokenSourceNone     AuthTokenSource = ""
	AuthTokenSourceExplicit AuthTokenSource = "explicit"
	AuthTokenSourceEnv      AuthTokenSource = "env:GITHUB_TOKEN"
	AuthTokenSourceGHEnv    AuthTokenSource = "env:GH_TOKEN"
	AuthTokenSourceGitHubCL AuthTokenSource = "gh"
)

const defaultHost = "github.com"

// ghTimeout bounds `gh auth token` when the caller has no deadline of its own.
const ghTimeout = 5 * time.Second

// Credential is the optional bearer token attached to contents API calls.
// The zero value means anonymous access.
type Credential struct {
	Token  string
	Source AuthTokenSource
}

func (c Credential) Present() bool { return c.Token != "" }

// envCredentials are consulted in order after an explicit token.
var envCredentials = []struct {
	name   string
	source AuthTokenSource
}{
	{"GITHUB_TOKEN", AuthTokenSourceEnv},
	{"GH_TOKEN", AuthTokenSourceGHEnv},
}

// ResolveAuthToken picks the credential for the repository client: provided,
// then GITHUB_TOKEN, then GH_TOKEN, then `gh auth token` for the host behind
// apiURL (github.com when apiURL is empty or the public API).
//
// Finding nothing is not an error. The token is never logged.
func ResolveAuthToken(ctx context.Context, provided, apiURL string) (Credential, error) {
	if tok := strings.TrimSpace(provided); tok != "" {
		return Credential{Token: tok, Source: AuthTokenSourceExplicit}, nil
	}
	for _, env := range envCredentials {
		if tok := strings.TrimSpace(os.Getenv(env.name)); tok != "" {
			return Credential{Token: tok, Source: env.source}, nil
		}
	}

	tok, err := tokenFromGitHubCLI(ctx, cliHost(apiURL))
	if err != nil || tok == "" {
		return Credential{}, err
	}
	return Credential{Token: tok, Source: AuthTokenSourceGitHubCL}, nil
}

// cliHost maps a REST API base URL to the host name gh stores credentials
// under: https://ghe.example.com/api/v3/ -> ghe.example.com.
func cliHost(apiURL string) string {
	u, err := url.Parse(strings.TrimSpace(apiURL))
	if err != nil || u.Hostname() == "" {
		return defaultHost
	}
	host := u.Hostname()
	if host == "api.github.com" {
		return defaultHost
	}
	return host
}

func tokenFromGitHubCLI(ctx context.Context, host string) (string, error) {
	if _, err := exec.LookPath("gh"); err != nil {
		return "", nil
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ghTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "gh", "auth", "token", "-h", host)
	cmd.Env = append(lo.Reject(os.Environ(), func(kv string, _ int) bool {
		return strings.HasPrefix(kv, "GH_PAGER=")
	}), "GH_PAGER=cat")

	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		// Logged out or no credential for host: anonymous access.
		return "", nil
	}
	return parseCLIToken(out)
}

func parseCLIToken(out []byte) (string, error) {
	tok := strings.TrimSpace(string(out))
	if strings.ContainsAny(tok, " \t\n\r") {
		return "", errors.New("invalid token returned by gh: contains whitespace")
	}
	return tok, nil
}
