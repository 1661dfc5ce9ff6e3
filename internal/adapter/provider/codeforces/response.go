package codeforces

// apiResponse wraps every Codeforces API reply. Status is "OK" or "FAILED";
// on failure Comment carries the reason.
type apiResponse struct {
	Status  string          `json:"status"`
	Comment string          `json:"comment"`
	Result  []apiSubmission `json:"result"`
}

// apiSubmission is one entry from user.status.
type apiSubmission struct {
	ID                  int64      `json:"id"`
	CreationTimeSeconds int64      `json:"creationTimeSeconds"`
	ProgrammingLanguage string     `json:"programmingLanguage"`
	Verdict             string     `json:"verdict"`
	Problem             apiProblem `json:"problem"`
}

// apiProblem identifies the problem a submission targets. ContestID plus
// Index ("A", "B1", …) form the stable problem identifier.
type apiProblem struct {
	ContestID int      `json:"contestId"`
	Index     string   `json:"index"`
	Name      string   `json:"name"`
	Rating    int      `json:"rating"`
	Tags      []string `json:"tags"`
}
