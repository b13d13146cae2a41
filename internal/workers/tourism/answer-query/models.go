package answerquery

type Input struct {
	Query string `json:"query"`
}

// inputSchema validates the job variables before the query is answered.
// Other process variables are allowed and ignored.
const inputSchema = `{
	"type": "object",
	"properties": {
		"query": {"type": "string", "minLength": 1, "maxLength": 500}
	},
	"required": ["query"]
}`
