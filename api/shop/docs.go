// Package shop registers the Swagger document of the reference backend.
// It mirrors the annotations in internal/backend; regenerate with
// `swag init -g router.go -d internal/backend -o api/shop` after changing
// them.
package shop

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {"post": {"tags": ["Auth"], "summary": "Log in", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/backend.loginBody"}}], "responses": {"200": {"description": "data is the raw credential", "schema": {"$ref": "#/definitions/httpx.Envelope"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httpx.Envelope"}}, "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/httpx.Envelope"}}}}},
        "/auth/signup": {"post": {"tags": ["Auth"], "summary": "Sign up", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/backend.signupBody"}}], "responses": {"201": {"description": "data is the created user", "schema": {"$ref": "#/definitions/httpx.Envelope"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httpx.Envelope"}}}}},
        "/product": {"get": {"tags": ["Catalog"], "summary": "List products", "responses": {"200": {"description": "data is []Product", "schema": {"$ref": "#/definitions/httpx.Envelope"}}}}},
        "/product/{slug}": {"get": {"tags": ["Catalog"], "summary": "Get product", "parameters": [{"type": "string", "in": "path", "name": "slug", "required": true}], "responses": {"200": {"description": "data is Product", "schema": {"$ref": "#/definitions/httpx.Envelope"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.Envelope"}}}}},
        "/cart": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Cart"], "summary": "Get cart", "responses": {"200": {"description": "data is Cart", "schema": {"$ref": "#/definitions/httpx.Envelope"}}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Cart"], "summary": "Add to cart", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/backend.addToCartBody"}}], "responses": {"200": {"description": "data is Cart", "schema": {"$ref": "#/definitions/httpx.Envelope"}}}}
        },
        "/cart/remove": {"post": {"security": [{"BearerAuth": []}], "tags": ["Cart"], "summary": "Remove from cart", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/backend.removeFromCartBody"}}], "responses": {"200": {"description": "data is Cart", "schema": {"$ref": "#/definitions/httpx.Envelope"}}}}},
        "/cart/clear": {"delete": {"security": [{"BearerAuth": []}], "tags": ["Cart"], "summary": "Clear cart", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/httpx.Envelope"}}}}},
        "/order": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Orders"], "summary": "List my orders", "responses": {"200": {"description": "data is []Order", "schema": {"$ref": "#/definitions/httpx.Envelope"}}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Orders"], "summary": "Place order", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/backend.createOrderBody"}}], "responses": {"201": {"description": "data is Order", "schema": {"$ref": "#/definitions/httpx.Envelope"}}}}
        },
        "/order/all": {"get": {"security": [{"BearerAuth": []}], "tags": ["Orders"], "summary": "List all orders", "responses": {"200": {"description": "data is []Order", "schema": {"$ref": "#/definitions/httpx.Envelope"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/httpx.Envelope"}}}}},
        "/order/stats": {"get": {"security": [{"BearerAuth": []}], "tags": ["Orders"], "summary": "Order statistics", "responses": {"200": {"description": "data is OrderStats", "schema": {"$ref": "#/definitions/httpx.Envelope"}}}}},
        "/order/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Orders"], "summary": "Get order", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "data is Order", "schema": {"$ref": "#/definitions/httpx.Envelope"}}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["Orders"], "summary": "Update order", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/backend.updateOrderBody"}}], "responses": {"200": {"description": "data is Order", "schema": {"$ref": "#/definitions/httpx.Envelope"}}}}
        },
        "/order/{id}/cancel": {"put": {"security": [{"BearerAuth": []}], "tags": ["Orders"], "summary": "Cancel order", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "data is Order", "schema": {"$ref": "#/definitions/httpx.Envelope"}}}}},
        "/order/{id}/status": {"put": {"security": [{"BearerAuth": []}], "tags": ["Orders"], "summary": "Set order status", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/backend.updateStatusBody"}}], "responses": {"200": {"description": "data is Order", "schema": {"$ref": "#/definitions/httpx.Envelope"}}}}},
        "/user/": {"get": {"security": [{"BearerAuth": []}], "tags": ["Users"], "summary": "List users", "responses": {"200": {"description": "data is []User", "schema": {"$ref": "#/definitions/httpx.Envelope"}}}}},
        "/user/me/profile": {"get": {"security": [{"BearerAuth": []}], "tags": ["Users"], "summary": "My profile", "responses": {"200": {"description": "data is User", "schema": {"$ref": "#/definitions/httpx.Envelope"}}}}},
        "/user/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Users"], "summary": "Get user", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "data is User", "schema": {"$ref": "#/definitions/httpx.Envelope"}}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["Users"], "summary": "Update user", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/backend.updateUserBody"}}], "responses": {"200": {"description": "data is User", "schema": {"$ref": "#/definitions/httpx.Envelope"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Users"], "summary": "Delete user", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/httpx.Envelope"}}}}
        },
        "/user/{id}/password": {"put": {"security": [{"BearerAuth": []}], "tags": ["Users"], "summary": "Change password", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/backend.updatePasswordBody"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/httpx.Envelope"}}}}},
        "/livez": {"get": {"tags": ["Health"], "summary": "Liveness Check Endpoint", "responses": {"200": {"description": "status, uptime, version", "schema": {"$ref": "#/definitions/httpx.Envelope"}}}}}
    },
    "definitions": {
        "httpx.Envelope": {"type": "object", "properties": {"message": {"type": "string"}, "data": {}, "error": {"type": "string"}}},
        "backend.loginBody": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "backend.signupBody": {"type": "object", "required": ["email", "password"], "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string", "minLength": 6}}},
        "backend.addToCartBody": {"type": "object", "properties": {"name": {"type": "string"}, "quantity": {"type": "integer"}}},
        "backend.removeFromCartBody": {"type": "object", "properties": {"name": {"type": "string"}}},
        "backend.createOrderBody": {"type": "object", "properties": {"address": {"type": "string"}, "phonenumber": {"type": "string"}}},
        "backend.updateOrderBody": {"type": "object", "properties": {"address": {"type": "string"}, "phonenumber": {"type": "string"}}},
        "backend.updateStatusBody": {"type": "object", "required": ["status"], "properties": {"status": {"type": "string", "enum": ["pending", "shipped", "delivered", "canceled", "rejected"]}}},
        "backend.updateUserBody": {"type": "object", "properties": {"name": {"type": "string"}, "email": {"type": "string"}}},
        "backend.updatePasswordBody": {"type": "object", "required": ["currentPassword", "newPassword", "confirmPassword"], "properties": {"currentPassword": {"type": "string"}, "newPassword": {"type": "string", "minLength": 6}, "confirmPassword": {"type": "string"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"description": "Credential from /auth/login. Format: \"Bearer {token}\".", "type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Shopfront Reference Backend API",
	Description:      "In-memory storefront backend. Every body is {message, data}.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
