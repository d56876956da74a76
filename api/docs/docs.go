// Package docs holds the OpenAPI description served at /swagger/. Kept by
// hand until doc generation is wired into the build.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Login Endpoint",
                "description": "Verify a username and password and issue a signed session token.",
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "username": {"type": "string"},
                                "password": {"type": "string"}
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "token",
                        "schema": {
                            "type": "object",
                            "properties": {"token": {"type": "string"}}
                        }
                    },
                    "401": {"description": "invalid credentials", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/v1/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Registration Endpoint",
                "description": "Create a new account. The first account becomes the owner; later registrations need a valid unclaimed invite token.",
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "username": {"type": "string"},
                                "password": {"type": "string"},
                                "invite_token": {"type": "string"}
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "username",
                        "schema": {
                            "type": "object",
                            "properties": {"username": {"type": "string"}}
                        }
                    },
                    "401": {"description": "no valid invite token", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "409": {"description": "username taken", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/v1/auth/whoami": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Whoami Endpoint",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {
                        "description": "profile summary",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "username": {"type": "string"},
                                "roles": {"type": "array", "items": {"type": "string"}},
                                "picture": {"type": "string"}
                            }
                        }
                    },
                    "401": {"description": "unauthenticated", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/v1/auth/admin_exists": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Admin Exists Endpoint",
                "responses": {
                    "200": {
                        "description": "exists",
                        "schema": {
                            "type": "object",
                            "properties": {"exists": {"type": "boolean"}}
                        }
                    }
                }
            }
        },
        "/api/v1/auth/invites": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Invitations"],
                "summary": "Invite Listing Endpoint",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {
                        "description": "invite rows",
                        "schema": {
                            "type": "array",
                            "items": {
                                "type": "object",
                                "properties": {
                                    "id": {"type": "string"},
                                    "created": {"type": "string"},
                                    "claimed_by": {"type": "string"}
                                }
                            }
                        }
                    },
                    "403": {"description": "insufficient role", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/v1/auth/new_invite": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Invitations"],
                "summary": "Invite Creation Endpoint",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {
                        "description": "token",
                        "schema": {
                            "type": "object",
                            "properties": {"token": {"type": "string"}}
                        }
                    },
                    "403": {"description": "insufficient role", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/v1/auth/token/{token}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["Invitations"],
                "summary": "Invite Deletion Endpoint",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "deleted"},
                    "404": {"description": "not found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "409": {"description": "invite claimed", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/v1/auth/password": {
            "patch": {
                "consumes": ["application/json"],
                "tags": ["User"],
                "summary": "Password Change Endpoint",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "old_password": {"type": "string"},
                                "new_password": {"type": "string"}
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {"description": "changed"},
                    "401": {"description": "wrong current password", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/v1/auth/username": {
            "patch": {
                "consumes": ["application/json"],
                "tags": ["User"],
                "summary": "Username Change Endpoint",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {"new_username": {"type": "string"}}
                        }
                    }
                ],
                "responses": {
                    "200": {"description": "renamed"},
                    "409": {"description": "username taken", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/v1/user/delete": {
            "delete": {
                "consumes": ["application/json"],
                "tags": ["User"],
                "summary": "Account Deletion Endpoint",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {"password": {"type": "string"}}
                        }
                    }
                ],
                "responses": {
                    "200": {"description": "deleted"},
                    "401": {"description": "wrong password", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/v1/user/avatar": {
            "post": {
                "consumes": ["multipart/form-data"],
                "tags": ["User"],
                "summary": "Avatar Upload Endpoint",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "200": {"description": "uploaded"},
                    "400": {"description": "unsupported file", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/v1/auth/forward": {
            "get": {
                "tags": ["Auth"],
                "summary": "Forwarded Auth Endpoint",
                "description": "Log in the identity asserted by the reverse proxy's X-Forwarded-User header, then redirect to / with the session token cookie set.",
                "responses": {
                    "302": {"description": "redirect with session cookie"},
                    "403": {"description": "forward auth disabled", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/livez": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime"}
                }
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check Endpoint",
                "responses": {
                    "200": {"description": "ready"},
                    "503": {"description": "not ready"}
                }
            }
        }
    },
    "definitions": {
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "error_description": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "JWT session token. Format: \"Bearer {token}\"."
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Beam Identity Service API",
	Description:      "Identity subsystem for the Beam media server: login, invite-gated registration with first-owner bootstrap, forwarded-auth bridging and self-service account management.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
