package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "StaffDesk API Documentation",
        "title": "StaffDesk API",
        "version": "1.0"
    },
    "host": "localhost:8000",
    "basePath": "/api/v1",
    "schemes": ["http"],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health Check",
                "description": "Check if server is running",
                "responses": {
                    "200": {
                        "description": "Server is healthy"
                    }
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "User Login",
                "description": "Login with email and password",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "credentials",
                        "description": "Login credentials",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "email": {
                                    "type": "string",
                                    "example": "admin@staffdesk.local"
                                },
                                "password": {
                                    "type": "string",
                                    "example": "admin123"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Login successful"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/api/v1/employees": {
            "get": {
                "tags": ["Employees"],
                "summary": "List employees",
                "description": "Search and paginate the employee directory",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "query", "name": "search", "type": "string", "description": "Match on name, email or role"},
                    {"in": "query", "name": "page", "type": "integer", "description": "1-indexed page number"},
                    {"in": "query", "name": "page_size", "type": "integer", "description": "Items per page (default 8)"}
                ],
                "responses": {
                    "200": {
                        "description": "One page of results"
                    }
                },
                "security": [{"BearerAuth": []}]
            }
        },
        "/api/v1/employees/{id}/suggestions": {
            "get": {
                "tags": ["Suggestions"],
                "summary": "AI task suggestions",
                "description": "Current tasks plus advisor-generated next-task suggestions",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "Suggestion report"
                    },
                    "404": {
                        "description": "Employee not found"
                    }
                },
                "security": [{"BearerAuth": []}]
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer' followed by a space and JWT token"
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "StaffDesk API",
	Description:      "StaffDesk API Documentation",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
