package remote

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gokturk078/cektakip/internal/common"
	"github.com/gokturk078/cektakip/internal/logging"
)

// GitHubStore keeps the snapshot as a single file in a repository, using
// the contents API. The file blob SHA is the version token; PUT requests
// carry it so concurrent edits from another session are rejected upstream.
type GitHubStore struct {
	owner    string
	repo     string
	branch   string
	filePath string
	token    string
	client   *http.Client
	log      logging.Logger

	apiBase string // test seam
	rawBase string
}

type GitHubOptions struct {
	Owner    string
	Repo     string
	Branch   string
	FilePath string
	Token    string
	Timeout  time.Duration
}

func NewGitHubStore(opts GitHubOptions, log logging.Logger) *GitHubStore {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &GitHubStore{
		owner:    opts.Owner,
		repo:     opts.Repo,
		branch:   opts.Branch,
		filePath: opts.FilePath,
		token:    opts.Token,
		client:   &http.Client{Timeout: timeout},
		log:      log,
		apiBase:  "https://api.github.com",
		rawBase:  "https://raw.githubusercontent.com",
	}
}

func (g *GitHubStore) contentsURL() string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", g.apiBase, g.owner, g.repo, g.filePath)
}

func (g *GitHubStore) rawURL() string {
	return fmt.Sprintf("%s/%s/%s/%s/%s?t=%d",
		g.rawBase, g.owner, g.repo, g.branch, g.filePath, time.Now().UnixNano())
}

// contentsResponse is the subset of the contents API payload we use.
type contentsResponse struct {
	SHA     string `json:"sha"`
	Content string `json:"content"`
}

// Fetch reads the document. Without a token it falls back to the public
// raw path, which yields the content but no version token.
func (g *GitHubStore) Fetch(ctx context.Context) (*Document, error) {
	if g.token == "" {
		return g.fetchRaw(ctx)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.contentsURL(), nil)
	if err != nil {
		return nil, err
	}
	g.setHeaders(req)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRemote, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, g.apiError(resp)
	}

	var cr contentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("%w: decoding contents response: %v", common.ErrRemote, err)
	}

	// The API base64-encodes file content with embedded newlines.
	content, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(cr.Content, "\n", ""))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding file content: %v", common.ErrRemote, err)
	}

	return &Document{Content: content, Token: cr.SHA}, nil
}

func (g *GitHubStore) fetchRaw(ctx context.Context) (*Document, error) {
	g.log.Debug(ctx, "no token configured, reading public raw path")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.rawURL(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRemote, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: raw fetch status %s", common.ErrRemote, resp.Status)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRemote, err)
	}

	return &Document{Content: content}, nil
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
	SHA     string `json:"sha,omitempty"`
}

type putResponse struct {
	Content struct {
		SHA string `json:"sha"`
	} `json:"content"`
}

// Put writes the document conditioned on token. Writing requires a
// configured credential; the public raw path is read-only.
func (g *GitHubStore) Put(ctx context.Context, content []byte, token string) (string, error) {
	if g.token == "" {
		return "", common.ErrNoCredential
	}

	body := putRequest{
		Message: fmt.Sprintf("update checks snapshot %s", time.Now().UTC().Format(time.RFC3339)),
		Content: base64.StdEncoding.EncodeToString(content),
		Branch:  g.branch,
		SHA:     token,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, g.contentsURL(), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	g.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrRemote, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", g.apiError(resp)
	}

	var pr putResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return "", fmt.Errorf("%w: decoding put response: %v", common.ErrRemote, err)
	}
	if pr.Content.SHA == "" {
		return "", fmt.Errorf("%w: put response missing content sha", common.ErrRemote)
	}

	return pr.Content.SHA, nil
}

func (g *GitHubStore) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "token "+g.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
}

func (g *GitHubStore) apiError(resp *http.Response) error {
	var apiErr struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&apiErr)

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", common.ErrNoCredential, resp.Status)
	case http.StatusConflict, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s %s", common.ErrVersionConflict, resp.Status, apiErr.Message)
	default:
		return fmt.Errorf("%w: %s %s", common.ErrRemote, resp.Status, apiErr.Message)
	}
}
