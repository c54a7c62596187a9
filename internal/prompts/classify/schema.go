package classify

import "encoding/json"

// OutputSchema describes the shape of a classification response. Counts,
// vocabulary membership and lengths are left to the validator so that
// violations come back as readable rule messages instead of schema errors.
var OutputSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"tags": {"type": "array", "items": {"type": "string"}},
		"amenities": {"type": "array", "items": {"type": "string"}},
		"features": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"title": {"type": "string"},
					"description": {"type": "string"}
				},
				"required": ["title", "description"]
			}
		},
		"tips": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"category": {"type": "string"},
					"tip": {"type": "string"}
				},
				"required": ["category", "tip"]
			}
		},
		"field_data": {
			"type": "object",
			"properties": {
				"best_time": {"type": "string"},
				"parking_details": {"type": "string"},
				"safety_info": {"type": "string"},
				"access_label": {"type": "string"}
			}
		}
	}
}`)
