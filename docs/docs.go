// Package docs holds the OpenAPI document served at /swagger. Regenerate it
// with `swag init -g cmd/api/main.go` after changing handler annotations.
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
		"/api/auth/signup": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Sign up",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.signupRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.authResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"429": {
						"description": "Too Many Requests",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/api/auth/login": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Log in",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.loginRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.authResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"429": {
						"description": "Too Many Requests",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/api/auth/check-eligibility": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Check signup eligibility",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.eligibilityRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.successResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"429": {
						"description": "Too Many Requests",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/api/auth/me": {
			"get": {
				"tags": [
					"auth"
				],
				"summary": "Current user",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.successResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/api/auth/logout": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Log out",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.successResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/api/auth/password": {
			"put": {
				"tags": [
					"auth"
				],
				"summary": "Change password",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.changePasswordRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.successResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/api/sessions": {
			"get": {
				"tags": [
					"sessions"
				],
				"summary": "List sessions",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.successResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			},
			"post": {
				"tags": [
					"sessions"
				],
				"summary": "Create a session",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.createSessionRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.successResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/api/sessions/stats": {
			"get": {
				"tags": [
					"sessions"
				],
				"summary": "Session counts by status",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.successResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/api/sessions/{id}": {
			"get": {
				"tags": [
					"sessions"
				],
				"summary": "Get a session",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Resource ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.successResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			},
			"put": {
				"tags": [
					"sessions"
				],
				"summary": "Update a session",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Resource ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.updateSessionRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.successResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			},
			"delete": {
				"tags": [
					"sessions"
				],
				"summary": "Delete a session",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Resource ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/api/sessions/{id}/join": {
			"post": {
				"tags": [
					"sessions"
				],
				"summary": "Join a session",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Resource ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.successResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/api/sessions/{id}/leave": {
			"post": {
				"tags": [
					"sessions"
				],
				"summary": "Leave a session",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Resource ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.successResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/api/submissions": {
			"get": {
				"tags": [
					"submissions"
				],
				"summary": "List submissions",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.successResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			},
			"post": {
				"tags": [
					"submissions"
				],
				"summary": "Create a submission",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.createSubmissionRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.successResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/api/submissions/{id}": {
			"get": {
				"tags": [
					"submissions"
				],
				"summary": "Get a submission",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Resource ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.successResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			},
			"put": {
				"tags": [
					"submissions"
				],
				"summary": "Review a submission",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Resource ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.reviewRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.successResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/api/placements": {
			"get": {
				"tags": [
					"placements"
				],
				"summary": "List placements",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.successResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			},
			"post": {
				"tags": [
					"placements"
				],
				"summary": "Record a placement or internship",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.createPlacementRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.successResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/api/placements/{id}": {
			"get": {
				"tags": [
					"placements"
				],
				"summary": "Get a placement",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Resource ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.successResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			},
			"put": {
				"tags": [
					"placements"
				],
				"summary": "Review a placement",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Resource ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.reviewRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.successResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			},
			"delete": {
				"tags": [
					"placements"
				],
				"summary": "Delete a placement",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Resource ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/api/notifications": {
			"get": {
				"tags": [
					"notifications"
				],
				"summary": "List my notifications",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.successResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/api/notifications/read-all": {
			"put": {
				"tags": [
					"notifications"
				],
				"summary": "Mark all notifications as read",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.successResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/api/notifications/{id}/read": {
			"put": {
				"tags": [
					"notifications"
				],
				"summary": "Mark a notification as read",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Resource ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/api/users/me": {
			"put": {
				"tags": [
					"users"
				],
				"summary": "Update my profile",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.updateProfileRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.successResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/api/admin/users": {
			"get": {
				"tags": [
					"admin"
				],
				"summary": "List users",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.successResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/api/admin/users/{id}/activate": {
			"put": {
				"tags": [
					"admin"
				],
				"summary": "Reactivate a user",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Resource ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.successResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/api/admin/users/{id}/deactivate": {
			"put": {
				"tags": [
					"admin"
				],
				"summary": "Deactivate a user",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Resource ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.successResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/api/admin/pre-registrations": {
			"get": {
				"tags": [
					"admin"
				],
				"summary": "List pre-registrations",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.successResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			},
			"post": {
				"tags": [
					"admin"
				],
				"summary": "Pre-register a person",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.preRegistrationRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.successResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"handler.errorResponse": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string"
				},
				"message": {
					"type": "string"
				}
			}
		},
		"handler.successResponse": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string"
				},
				"message": {
					"type": "string"
				},
				"results": {
					"type": "integer"
				},
				"data": {}
			}
		},
		"handler.authResponse": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string"
				},
				"token": {
					"type": "string"
				},
				"data": {
					"type": "object",
					"properties": {
						"user": {
							"$ref": "#/definitions/domain.User"
						}
					}
				}
			}
		},
		"domain.User": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"fullName": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"role": {
					"type": "string"
				},
				"studentId": {
					"type": "string"
				},
				"department": {
					"type": "string"
				},
				"yearOfStudy": {
					"type": "string"
				},
				"facultyId": {
					"type": "string"
				},
				"designation": {
					"type": "string"
				},
				"adminId": {
					"type": "string"
				},
				"alumniId": {
					"type": "string"
				},
				"graduationYear": {
					"type": "string"
				},
				"phoneNumber": {
					"type": "string"
				},
				"isActive": {
					"type": "boolean"
				},
				"createdAt": {
					"type": "string"
				},
				"updatedAt": {
					"type": "string"
				}
			}
		},
		"handler.signupRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				},
				"role": {
					"type": "string"
				},
				"studentId": {
					"type": "string"
				},
				"department": {
					"type": "string"
				},
				"yearOfStudy": {
					"type": "string"
				},
				"facultyId": {
					"type": "string"
				},
				"designation": {
					"type": "string"
				},
				"adminId": {
					"type": "string"
				},
				"alumniId": {
					"type": "string"
				},
				"graduationYear": {
					"type": "string"
				}
			},
			"required": [
				"email",
				"password",
				"role"
			]
		},
		"handler.loginRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			},
			"required": [
				"email",
				"password"
			]
		},
		"handler.eligibilityRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"role": {
					"type": "string"
				}
			},
			"required": [
				"email",
				"role"
			]
		},
		"handler.changePasswordRequest": {
			"type": "object",
			"properties": {
				"currentPassword": {
					"type": "string"
				},
				"newPassword": {
					"type": "string"
				}
			},
			"required": [
				"currentPassword",
				"newPassword"
			]
		},
		"handler.createSessionRequest": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"date": {
					"type": "string"
				},
				"time": {
					"type": "string"
				},
				"venue": {
					"type": "string"
				},
				"sessionHead": {
					"type": "string"
				},
				"maxParticipants": {
					"type": "integer"
				},
				"meetingLink": {
					"type": "string"
				},
				"feedbackFormLink": {
					"type": "string"
				}
			},
			"required": [
				"title",
				"date",
				"time",
				"venue"
			]
		},
		"handler.updateSessionRequest": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"date": {
					"type": "string"
				},
				"time": {
					"type": "string"
				},
				"venue": {
					"type": "string"
				},
				"sessionHead": {
					"type": "string"
				},
				"maxParticipants": {
					"type": "integer"
				},
				"meetingLink": {
					"type": "string"
				},
				"feedbackFormLink": {
					"type": "string"
				},
				"status": {
					"type": "string"
				}
			}
		},
		"handler.createSubmissionRequest": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"category": {
					"type": "string"
				},
				"additionalInfo": {
					"type": "string"
				}
			},
			"required": [
				"title",
				"description",
				"category"
			]
		},
		"handler.createPlacementRequest": {
			"type": "object",
			"properties": {
				"company": {
					"type": "string"
				},
				"position": {
					"type": "string"
				},
				"type": {
					"type": "string"
				},
				"package": {
					"type": "string"
				},
				"location": {
					"type": "string"
				},
				"startDate": {
					"type": "string"
				}
			},
			"required": [
				"company",
				"position",
				"type"
			]
		},
		"handler.reviewRequest": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string"
				},
				"reviewNote": {
					"type": "string"
				}
			},
			"required": [
				"status"
			]
		},
		"handler.updateProfileRequest": {
			"type": "object",
			"properties": {
				"fullName": {
					"type": "string"
				},
				"phoneNumber": {
					"type": "string"
				},
				"designation": {
					"type": "string"
				}
			}
		},
		"handler.preRegistrationRequest": {
			"type": "object",
			"properties": {
				"fullName": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"role": {
					"type": "string"
				},
				"phoneNumber": {
					"type": "string"
				},
				"studentId": {
					"type": "string"
				},
				"department": {
					"type": "string"
				},
				"yearOfStudy": {
					"type": "string"
				},
				"facultyId": {
					"type": "string"
				},
				"designation": {
					"type": "string"
				},
				"adminId": {
					"type": "string"
				},
				"alumniId": {
					"type": "string"
				},
				"graduationYear": {
					"type": "string"
				}
			},
			"required": [
				"fullName",
				"email",
				"role"
			]
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"description": "Type \"Bearer\" followed by a space and the token.",
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Campus Connect API",
	Description:      "Alumni, faculty and student portal: pre-registration gated signup, mentoring sessions, submissions and placements.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
