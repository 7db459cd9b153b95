// Package docs Together As One API.
//
// Поиск точек водоснабжения (скважины, резервуары) во время отключений воды.
// Regenerate with: swag init -g cmd/api/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {"name": "Together As One"},
        "license": {"name": "MIT", "url": "https://opensource.org/licenses/MIT"},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/health": {
            "get": {"tags": ["System"], "summary": "Dependency health", "responses": {"200": {"description": "OK"}, "503": {"description": "Degraded"}}}
        },
        "/api/v1/water-points": {
            "get": {
                "tags": ["WaterPoints"],
                "summary": "Find water points",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "number", "name": "lat", "in": "query"},
                    {"type": "number", "name": "lng", "in": "query"},
                    {"type": "number", "name": "custom_lat", "in": "query"},
                    {"type": "number", "name": "custom_lng", "in": "query"},
                    {"type": "integer", "default": 10, "name": "max_distance", "in": "query"},
                    {"type": "boolean", "name": "available_now", "in": "query"},
                    {"type": "string", "name": "area", "in": "query"},
                    {"type": "string", "name": "sub_area", "in": "query"},
                    {"type": "string", "name": "days", "in": "query"},
                    {"type": "string", "name": "time_slot", "in": "query"},
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "integer", "default": 1, "name": "page", "in": "query"},
                    {"type": "integer", "name": "viewport_width", "in": "query"},
                    {"type": "string", "name": "geolocation_error", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "503": {"description": "Service Unavailable"}}
            }
        },
        "/api/v1/water-points/{id}": {
            "get": {"tags": ["WaterPoints"], "summary": "Get a water point", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/api/v1/areas": {
            "get": {"tags": ["WaterPoints"], "summary": "List areas and sub-areas", "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/sessions": {
            "post": {"tags": ["Sessions"], "summary": "Start a finder session", "responses": {"201": {"description": "Created"}}}
        },
        "/api/v1/sessions/{id}": {
            "get": {"tags": ["Sessions"], "summary": "Session snapshot", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"type": "integer", "name": "page", "in": "query"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["Sessions"], "summary": "Close a session", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/api/v1/sessions/{id}/filters": {
            "patch": {"tags": ["Sessions"], "summary": "Change session filters", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/sessions/{id}/search": {
            "put": {"tags": ["Sessions"], "summary": "Set search text", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/sessions/{id}/location": {
            "put": {"tags": ["Sessions"], "summary": "Report the detected location", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/sessions/{id}/custom-location": {
            "put": {"tags": ["Sessions"], "summary": "Pick a location on the map", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Sessions"], "summary": "Forget the map-picked location", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/sessions/{id}/viewport": {
            "put": {"tags": ["Sessions"], "summary": "Report the client width", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/sessions/{id}/reset": {
            "post": {"tags": ["Sessions"], "summary": "Reset filters", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/sessions/{id}/retry": {
            "post": {"tags": ["Sessions"], "summary": "Reload after a failure", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/registrations": {
            "post": {"tags": ["Registrations"], "summary": "Share a borehole or tank", "responses": {"202": {"description": "Accepted"}, "400": {"description": "Bad Request"}}}
        },
        "/api/v1/subscriptions": {
            "post": {"tags": ["Subscriptions"], "summary": "Subscribe to outage updates", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Together As One API",
	Description:      "Finds boreholes and water tanks shared by neighbours during municipal water outages.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
