package leetcode

// graphqlRequest is the POST body for the LeetCode GraphQL endpoint.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// graphqlResponse wraps the recentAcSubmissionList query result.
type graphqlResponse struct {
	Data struct {
		RecentAcSubmissionList []apiSubmission `json:"recentAcSubmissionList"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// apiSubmission is one accepted submission as returned by the API.
// Timestamp is unix seconds encoded as a string.
type apiSubmission struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	TitleSlug string `json:"titleSlug"`
	Timestamp string `json:"timestamp"`
	Lang      string `json:"lang"`
}
