// Package docs registers the OpenAPI description served at /swagger.
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
        "/api/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/api/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userResponse"}}}
            }
        },
        "/api/auth/update-profile": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Update own profile",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.updateProfileRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userResponse"}}}
            }
        },
        "/api/auth/update-manager": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Change own manager",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.updateManagerRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userResponse"}}}
            }
        },
        "/api/team": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "List team members",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.userResponse"}}}}
            }
        },
        "/api/managers": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "List managers",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.userResponse"}}}}
            }
        },
        "/api/users/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Get a user",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userResponse"}}}
            }
        },
        "/api/request-feedback": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Request feedback from manager",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.requestFeedbackResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/api/feedback": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["feedback"],
                "summary": "List feedback",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.feedbackResponse"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["feedback"],
                "summary": "Give feedback",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createFeedbackRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.feedbackResponse"}}}
            }
        },
        "/api/feedback/received": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["feedback"],
                "summary": "Feedback received",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.feedbackResponse"}}}}
            }
        },
        "/api/feedback/given": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["feedback"],
                "summary": "Peer feedback given",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.feedbackResponse"}}}}
            }
        },
        "/api/feedback/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["feedback"],
                "summary": "Edit feedback",
                "parameters": [
                    {"type": "string", "in": "path", "name": "id", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.updateFeedbackRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.feedbackResponse"}}}
            }
        },
        "/api/feedback/{id}/acknowledge": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["feedback"],
                "summary": "Acknowledge feedback",
                "parameters": [
                    {"type": "string", "in": "path", "name": "id", "required": true},
                    {"in": "body", "name": "body", "schema": {"$ref": "#/definitions/handler.acknowledgeRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}}}
            }
        },
        "/api/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["feedback"],
                "summary": "Feedback statistics",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.managerStatsResponse"}}}
            }
        }
    },
    "definitions": {
        "handler.registerRequest": {
            "type": "object",
            "required": ["email", "password", "full_name", "role"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "full_name": {"type": "string"},
                "role": {"type": "string", "enum": ["manager", "employee"]},
                "manager_id": {"type": "string"}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.updateProfileRequest": {
            "type": "object",
            "properties": {"full_name": {"type": "string"}, "email": {"type": "string"}}
        },
        "handler.updateManagerRequest": {
            "type": "object",
            "properties": {"manager_id": {"type": "string"}}
        },
        "handler.createFeedbackRequest": {
            "type": "object",
            "required": ["employee_id", "strengths", "improvements", "sentiment"],
            "properties": {
                "employee_id": {"type": "string"},
                "strengths": {"type": "string"},
                "improvements": {"type": "string"},
                "sentiment": {"type": "string", "enum": ["positive", "neutral", "constructive"]},
                "tags": {"type": "array", "items": {"type": "string"}},
                "anonymous": {"type": "boolean"}
            }
        },
        "handler.updateFeedbackRequest": {
            "type": "object",
            "properties": {
                "employee_id": {"type": "string"},
                "strengths": {"type": "string"},
                "improvements": {"type": "string"},
                "sentiment": {"type": "string", "enum": ["positive", "neutral", "constructive"]},
                "tags": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.acknowledgeRequest": {
            "type": "object",
            "properties": {"comment": {"type": "string"}}
        },
        "handler.userResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "full_name": {"type": "string"},
                "role": {"type": "string"},
                "manager_id": {"type": "string"}
            }
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string"},
                "user": {"$ref": "#/definitions/handler.userResponse"}
            }
        },
        "handler.feedbackResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "giver_id": {"type": "string"},
                "receiver_id": {"type": "string"},
                "manager_id": {"type": "string"},
                "employee_id": {"type": "string"},
                "giver_name": {"type": "string"},
                "receiver_name": {"type": "string"},
                "giver_role": {"type": "string"},
                "strengths": {"type": "string"},
                "improvements": {"type": "string"},
                "sentiment": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "anonymous": {"type": "boolean"},
                "acknowledged": {"type": "boolean"},
                "acknowledged_at": {"type": "string"},
                "acknowledgment_comment": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "handler.managerStatsResponse": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "positive": {"type": "integer"},
                "neutral": {"type": "integer"},
                "constructive": {"type": "integer"},
                "acknowledged": {"type": "integer"}
            }
        },
        "handler.requestFeedbackResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "manager_name": {"type": "string"},
                "manager_email": {"type": "string"}
            }
        },
        "handler.messageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Feedback API",
	Description:      "Manager and peer feedback tracking.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
