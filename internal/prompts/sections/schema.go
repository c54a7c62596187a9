package sections

import "encoding/json"

// OutputSchema describes the shape of a sections response.
var OutputSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"sections": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"section_type": {"type": "string"},
					"heading": {"type": "string"},
					"content": {"type": "string"}
				},
				"required": ["section_type", "content"]
			}
		}
	},
	"required": ["sections"]
}`)
