// Package docs registers the hand-authored swagger spec for the
// reconstruction API — the same artifact `swag init` would generate from
// the handlers' doc comments, checked in directly since there is no build
// step running swag in this module.
package docs

import "github.com/swaggo/swag"

const doc = `{
    "swagger": "2.0",
    "info": {
        "title": "Blaseball Reconstruction API",
        "description": "Replays a game's feed through the deterministic state machine and reports the resulting documents.",
        "version": "1.0"
    },
    "basePath": "{{.BasePath}}",
    "paths": {
        "/games/{id}/reconstruct": {
            "get": {
                "tags": ["reconstruct"],
                "summary": "Reconstruct a game",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"},
                    "422": {"description": "Reconstruction failed"}
                }
            }
        },
        "/games/{id}/events/{play_count}": {
            "get": {
                "tags": ["reconstruct"],
                "summary": "Get the stored snapshot at one tick",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "play_count", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    }
}`

type swaggerInfo struct {
	swag.Spec
}

// SwaggerInfo holds the spec metadata routes mutate before registration
// (BasePath in particular), matching the teacher's swag-generated shape.
var SwaggerInfo = &swaggerInfo{
	Spec: swag.Spec{
		Version:     "1.0",
		Title:       "Blaseball Reconstruction API",
		InfoInstanceName: "swagger",
		SwaggerTemplate: doc,
	},
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
