package backend

import "time"

const (
	providerName       = "backend"
	rosterPath         = "/csv/roster"
	defaultBaseURL     = "http://localhost:8000"
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBody       = 4 << 10
	maxRosterBody      = 8 << 20
)
