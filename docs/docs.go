// Package docs registers the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["Health"],
                "summary": "Root",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Check if the API is healthy",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check",
                "responses": {
                    "200": {"description": "API is healthy", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/live": {
            "get": {
                "description": "Check if the API is alive",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness Check",
                "responses": {
                    "200": {"description": "API is alive", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/ready": {
            "get": {
                "description": "Check if the API is ready to serve traffic",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check",
                "responses": {
                    "200": {"description": "API is ready", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/process": {
            "post": {
                "description": "Classifies the directive and answers it on the fast or deep tier.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Directive"],
                "summary": "Process a directive",
                "parameters": [
                    {
                        "description": "Directive",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.processReq"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.processResp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/system-prompt/reload": {
            "post": {
                "description": "Re-reads the configured system prompt file. The previous prompt is kept on failure.",
                "produces": ["application/json"],
                "tags": ["Directive"],
                "summary": "Reload the system prompt",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.reloadResp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        }
    },
    "definitions": {
        "http.processReq": {
            "type": "object",
            "required": ["input"],
            "properties": {
                "input": {"type": "string"}
            }
        },
        "http.processResp": {
            "type": "object",
            "properties": {
                "intent": {"type": "string", "enum": ["QuickAction", "Strategy", "Unknown"]},
                "system": {"type": "string", "enum": ["cortex", "deep_mind", "cortex_fallback"]},
                "content": {"type": "string"},
                "reasoning_trace": {"type": "string", "x-nullable": true},
                "latency_ms": {"type": "integer"},
                "degraded": {"type": "boolean"}
            }
        },
        "http.reloadResp": {
            "type": "object",
            "properties": {
                "path": {"type": "string"},
                "bytes": {"type": "integer"}
            }
        },
        "response.Resp": {
            "type": "object",
            "properties": {
                "error_code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {},
                "errors": {}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1",
	Host:             "localhost:8080",
	BasePath:         "",
	Schemes:          []string{"http"},
	Title:            "aegnt directive router API",
	Description:      "Classifies directives and dispatches them to the cortex or deep_mind tier.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
