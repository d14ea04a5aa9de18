package types

type PairedItem struct {
	Item int `json:"item"`
}

type ResponseItem struct {
	JSON       map[string]any `json:"json"`
	PairedItem PairedItem     `json:"pairedItem"`
}

type ResponseExecute struct {
	Items []ResponseItem `json:"items"`
}

// ResponseExecuteFailed carries what was produced before the run aborted.
type ResponseExecuteFailed struct {
	Items     []ResponseItem `json:"items"`
	ItemIndex int            `json:"itemIndex"`
	Code      string         `json:"code,omitempty"`
}

type ResponseCredentialTest struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ResponseHostToken struct {
	HostID    string `json:"host_id"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at,omitempty"`
}
