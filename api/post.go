package api

// PostSummary is the outward projection of a cached post used by the
// latest-posts and paginated list endpoints.
type PostSummary struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Date    string `json:"date"`
	URL     string `json:"url"`
}

// Pagination describes the position of one page within the full post list.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalPosts  int `json:"totalPosts"`
}

// PostPage is the paginated list response body.
type PostPage struct {
	Posts      []PostSummary `json:"posts"`
	Pagination Pagination    `json:"pagination"`
}
