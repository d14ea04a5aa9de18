package types

// RequestCredentials mirrors the credential fields a host may send per execution.
// Empty fields fall back to the process defaults.
type RequestCredentials struct {
	BaseURL          string `json:"baseUrl"`
	APIKey           string `json:"apiKey"`
	DefaultSessionID string `json:"defaultSessionId"`
}

type RequestItem struct {
	JSON       map[string]any `json:"json"`
	Parameters map[string]any `json:"parameters"`
}

// RequestExecute is one action run over a batch of items. Item parameters
// override the shared Parameters key by key.
type RequestExecute struct {
	Credentials    *RequestCredentials `json:"credentials"`
	ContinueOnFail bool                `json:"continueOnFail"`
	Parameters     map[string]any      `json:"parameters"`
	Items          []RequestItem       `json:"items"`
}

type RequestCredentialTest struct {
	Credentials *RequestCredentials `json:"credentials"`
}

type RequestIssueHostToken struct {
	HostID string `json:"host_id"`
	TTL    string `json:"ttl"`
}
