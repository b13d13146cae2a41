package parsequery

import "tourist-guide/internal/parser"

type Input struct {
	Query string `json:"query"`
}

// Output exposes hasLocation so process gateways can branch without
// inspecting the nested location.
type Output struct {
	ParsedQuery parser.ParsedQuery `json:"parsedQuery"`
	HasLocation bool               `json:"hasLocation"`
}

const inputSchema = `{
	"type": "object",
	"properties": {
		"query": {"type": "string", "minLength": 1, "maxLength": 500}
	},
	"required": ["query"]
}`
