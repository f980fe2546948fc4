// Package docs holds the OpenAPI description served at /v1/swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/register": {
            "post": {
                "description": "Register a new user account and receive a bearer token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "User registration",
                "parameters": [
                    {"description": "Registration request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/server.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/server.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "description": "Authenticate with email and password and receive a bearer token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "User login",
                "parameters": [
                    {"description": "Login credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/server.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.UserResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/bucketlists": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["bucketlists"],
                "summary": "List the caller's bucketlists",
                "parameters": [
                    {"type": "string", "description": "Case-insensitive title filter", "name": "q", "in": "query"},
                    {"type": "integer", "description": "Page number (1-based)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.ListResponse-models_Bucketlist"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bucketlists"],
                "summary": "Create a bucketlist",
                "parameters": [
                    {"description": "Bucketlist", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/server.BucketlistRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/server.BucketlistResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/bucketlists/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["bucketlists"],
                "summary": "Get a bucketlist",
                "parameters": [
                    {"type": "integer", "description": "Bucketlist ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.BucketlistResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bucketlists"],
                "summary": "Rename a bucketlist",
                "parameters": [
                    {"type": "integer", "description": "Bucketlist ID", "name": "id", "in": "path", "required": true},
                    {"description": "Bucketlist", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/server.BucketlistRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.BucketlistResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["bucketlists"],
                "summary": "Delete a bucketlist and its items",
                "parameters": [
                    {"type": "integer", "description": "Bucketlist ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/bucketlists/{id}/items": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "List the items of a bucketlist",
                "parameters": [
                    {"type": "integer", "description": "Bucketlist ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Case-insensitive name filter", "name": "q", "in": "query"},
                    {"type": "integer", "description": "Page number (1-based)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.ListResponse-models_Item"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Add an item to a bucketlist",
                "parameters": [
                    {"type": "integer", "description": "Bucketlist ID", "name": "id", "in": "path", "required": true},
                    {"description": "Item", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/server.CreateItemRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/server.ItemResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/bucketlists/{id}/items/{itemId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Get an item",
                "parameters": [
                    {"type": "integer", "description": "Bucketlist ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Item ID", "name": "itemId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.ItemResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "Rename an item or toggle its done flag",
                "parameters": [
                    {"type": "integer", "description": "Bucketlist ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Item ID", "name": "itemId", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/server.UpdateItemRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.ItemResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["items"],
                "summary": "Delete an item",
                "parameters": [
                    {"type": "integer", "description": "Bucketlist ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Item ID", "name": "itemId", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "email": {"type": "string"},
                "first_name": {"type": "string"},
                "id": {"type": "integer"},
                "is_admin": {"type": "boolean"},
                "last_name": {"type": "string"},
                "updated_at": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "models.Bucketlist": {
            "type": "object",
            "properties": {
                "date_created": {"type": "string"},
                "date_modified": {"type": "string"},
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "users_email": {"type": "string"}
            }
        },
        "models.Item": {
            "type": "object",
            "properties": {
                "bucketlist_id": {"type": "integer"},
                "date_created": {"type": "string"},
                "date_modified": {"type": "string"},
                "done": {"type": "boolean"},
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "models.PageMeta": {
            "type": "object",
            "properties": {
                "limit": {"type": "integer"},
                "page": {"type": "integer"},
                "pages": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "server.RegisterRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "server.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "server.AuthResponse": {
            "type": "object",
            "properties": {
                "auth_token": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "string"},
                "user": {"$ref": "#/definitions/models.User"}
            }
        },
        "server.UserResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "user": {"$ref": "#/definitions/models.User"}
            }
        },
        "server.BucketlistRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"}
            }
        },
        "server.BucketlistResponse": {
            "type": "object",
            "properties": {
                "bucketlist": {"$ref": "#/definitions/models.Bucketlist"},
                "message": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "server.CreateItemRequest": {
            "type": "object",
            "properties": {
                "done": {"type": "boolean"},
                "name": {"type": "string"}
            }
        },
        "server.UpdateItemRequest": {
            "type": "object",
            "properties": {
                "done": {"type": "boolean"},
                "name": {"type": "string"}
            }
        },
        "server.ItemResponse": {
            "type": "object",
            "properties": {
                "item": {"$ref": "#/definitions/models.Item"},
                "message": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "server.ListResponse-models_Bucketlist": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/models.Bucketlist"}},
                "meta": {"$ref": "#/definitions/models.PageMeta"},
                "next": {"type": "string"},
                "prev": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "server.ListResponse-models_Item": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/models.Item"}},
                "meta": {"$ref": "#/definitions/models.PageMeta"},
                "next": {"type": "string"},
                "prev": {"type": "string"},
                "status": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Bucketlist API",
	Description:      "Multi-user bucketlist tracker with bearer-token authentication",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
