package hashnode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Bota-ApexV2/n-updater/blog/domain"
	"github.com/hashicorp/go-retryablehttp"
)

const pageSize = 50

const postsQuery = `query Publication($host: String!, $first: Int!, $after: String) {
  publication(host: $host) {
    posts(first: $first, after: $after) {
      edges {
        node { id title brief slug updatedAt publishedAt }
      }
      pageInfo { hasNextPage endCursor }
    }
  }
}`

// Client is an implementation of domain.PostSource backed by a Hashnode-style
// GraphQL publication API.
type Client struct {
	endpoint string
	host     string
	timeout  time.Duration
	http     *http.Client
}

// NewClient creates a Client for the given GraphQL endpoint and publication
// host. Each page request is retried a small number of times and bounded by
// the given timeout.
func NewClient(endpoint string, host string, timeout time.Duration) *Client {
	r := retryablehttp.NewClient()
	r.RetryMax = 2
	r.Logger = nil
	r.HTTPClient.Timeout = timeout

	return &Client{
		endpoint: endpoint,
		host:     host,
		timeout:  timeout,
		http:     r.StandardClient(),
	}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type postsResponse struct {
	Data struct {
		Publication struct {
			Posts struct {
				Edges []struct {
					Node struct {
						ID          string `json:"id"`
						Title       string `json:"title"`
						Brief       string `json:"brief"`
						Slug        string `json:"slug"`
						UpdatedAt   string `json:"updatedAt"`
						PublishedAt string `json:"publishedAt"`
					} `json:"node"`
				} `json:"edges"`
				PageInfo struct {
					HasNextPage bool   `json:"hasNextPage"`
					EndCursor   string `json:"endCursor"`
				} `json:"pageInfo"`
			} `json:"posts"`
		} `json:"publication"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// FetchAllPosts retrieves every post from the publication, following
// pagination cursors until the upstream reports no further pages. Pages are
// accumulated eagerly; any failed page aborts the whole fetch.
func (c *Client) FetchAllPosts(ctx context.Context) ([]domain.Post, error) {
	var all []domain.Post
	cursor := ""

	for {
		page, err := c.fetchPage(ctx, cursor)
		if err != nil {
			return nil, err
		}

		for _, edge := range page.Data.Publication.Posts.Edges {
			node := edge.Node
			all = append(all, domain.Post{
				ID:        node.ID,
				Slug:      node.Slug,
				Title:     node.Title,
				Brief:     node.Brief,
				UpdatedAt: parseTimestamp(node.UpdatedAt, node.PublishedAt),
				Visible:   true,
			})
		}

		info := page.Data.Publication.Posts.PageInfo
		if !info.HasNextPage {
			break
		}
		cursor = info.EndCursor
	}

	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, cursor string) (*postsResponse, error) {
	op := "fetching posts page"
	if cursor != "" {
		op = fmt.Sprintf("fetching posts page after cursor %s", cursor)
	}

	variables := map[string]any{
		"host":  c.host,
		"first": pageSize,
	}
	if cursor != "" {
		variables["after"] = cursor
	}

	body, err := json.Marshal(graphqlRequest{Query: postsQuery, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("hashnode: %s failed to encode request: %w", op, err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("hashnode: %s failed to build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hashnode: %s failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hashnode: %s failed with status %d", op, resp.StatusCode)
	}

	var page postsResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("hashnode: %s failed to decode response: %w", op, err)
	}

	if len(page.Errors) > 0 {
		return nil, fmt.Errorf("hashnode: %s rejected by upstream: %s", op, page.Errors[0].Message)
	}

	return &page, nil
}

// parseTimestamp resolves a post's effective timestamp: updatedAt when
// present, falling back to publishedAt, else the zero time meaning "no date".
func parseTimestamp(updatedAt string, publishedAt string) time.Time {
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, publishedAt); err == nil {
		return t
	}
	return time.Time{}
}
