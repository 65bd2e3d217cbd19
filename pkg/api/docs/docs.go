// Package docs registers the OpenAPI document served under /swagger. Keep it
// in step with the godoc annotations on the handlers.
package docs

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
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log in",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Token and user", "schema": {"$ref": "#/definitions/models.AuthResponse"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "429": {"description": "Too many attempts", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Auth"],
                "summary": "Revoke the current token",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Logged out", "schema": {"$ref": "#/definitions/models.MessageResponse"}},
                    "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Auth"],
                "summary": "Current user",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Current user", "schema": {"$ref": "#/definitions/models.UserInfo"}},
                    "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/leads": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Filters are query parameters named <field>_<operator>, e.g. status_in=new,won or created_at_after=2024-01-01. Employees only see leads assigned to them.",
                "tags": ["Leads"],
                "summary": "List leads",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Items per page", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Page of leads", "schema": {"$ref": "#/definitions/models.LeadListResponse"}},
                    "400": {"description": "Invalid filter or pagination", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Leads created by an employee are assigned to that employee.",
                "tags": ["Leads"],
                "summary": "Create a lead",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.CreateLeadRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created lead", "schema": {"$ref": "#/definitions/models.LeadResponse"}},
                    "400": {"description": "Invalid lead", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "403": {"description": "Assignment not allowed", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/leads/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Accepts the same filters as the lead list.",
                "tags": ["Leads"],
                "summary": "Lead count and value per status",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Per-status totals", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.StatusStat"}}},
                    "400": {"description": "Invalid filter", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/leads/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Leads"],
                "summary": "Get a lead",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Lead ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Lead", "schema": {"$ref": "#/definitions/models.LeadResponse"}},
                    "403": {"description": "Not your lead", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Lead not found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Absent fields keep their stored value.",
                "tags": ["Leads"],
                "summary": "Update a lead",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Lead ID", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.UpdateLeadRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated lead", "schema": {"$ref": "#/definitions/models.LeadResponse"}},
                    "400": {"description": "Invalid lead", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "403": {"description": "Not your lead", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Lead not found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Leads"],
                "summary": "Delete a lead",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Lead ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Lead deleted", "schema": {"$ref": "#/definitions/models.MessageResponse"}},
                    "403": {"description": "Not your lead", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Lead not found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/admin/employees": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Admin"],
                "summary": "List employees",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Employees", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.UserInfo"}}},
                    "403": {"description": "Admin access required", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Admin"],
                "summary": "Create an employee",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.CreateEmployeeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created employee", "schema": {"$ref": "#/definitions/models.UserInfo"}},
                    "400": {"description": "Invalid employee or email taken", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "403": {"description": "Admin access required", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/admin/employees/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["Admin"],
                "summary": "Update an employee",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Employee ID", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.UpdateEmployeeRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated employee", "schema": {"$ref": "#/definitions/models.UserInfo"}},
                    "400": {"description": "Invalid employee", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Employee not found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Admin"],
                "summary": "Delete an employee",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Employee ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Employee deleted", "schema": {"$ref": "#/definitions/models.MessageResponse"}},
                    "404": {"description": "Employee not found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/admin/lead-sources": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Admin"],
                "summary": "List lead sources",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Lead sources", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.LeadSourceResponse"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Admin"],
                "summary": "Create a lead source",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.LeadSourceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created lead source", "schema": {"$ref": "#/definitions/models.LeadSourceResponse"}},
                    "400": {"description": "Invalid or duplicate name", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/admin/lead-sources/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["Admin"],
                "summary": "Update a lead source",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Lead source ID", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.LeadSourceRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated lead source", "schema": {"$ref": "#/definitions/models.LeadSourceResponse"}},
                    "404": {"description": "Lead source not found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Admin"],
                "summary": "Delete a lead source",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Lead source ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Lead source deleted", "schema": {"$ref": "#/definitions/models.MessageResponse"}},
                    "404": {"description": "Lead source not found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/admin/leads/bulk": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "The first row names the columns. Any invalid row rejects the whole file.",
                "tags": ["Admin"],
                "summary": "Import leads from CSV or XLSX",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [{"type": "file", "description": ".csv or .xlsx file", "name": "file", "in": "formData", "required": true}],
                "responses": {
                    "201": {"description": "Leads imported", "schema": {"$ref": "#/definitions/models.ImportResponse"}},
                    "400": {"description": "Invalid file or rows", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/admin/leads/{id}/assign": {
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "A null assigned_to unassigns the lead.",
                "tags": ["Admin"],
                "summary": "Assign a lead",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Lead ID", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.AssignLeadRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated lead", "schema": {"$ref": "#/definitions/models.LeadResponse"}},
                    "400": {"description": "Unknown assignee", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Lead not found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"},
                "value": {"type": "string"}
            }
        },
        "domain.StatusStat": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["new", "contacted", "qualified", "lost", "won"]},
                "count": {"type": "integer"},
                "totalValue": {"type": "number"}
            }
        },
        "models.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "models.AuthResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/models.UserInfo"}
            }
        },
        "models.UserInfo": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "role": {"type": "string", "enum": ["admin", "employee"]},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "models.UserRef": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"}
            }
        },
        "models.CreateLeadRequest": {
            "type": "object",
            "required": ["first_name", "last_name", "email"],
            "properties": {
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "company": {"type": "string"},
                "city": {"type": "string"},
                "state": {"type": "string"},
                "source": {"type": "string", "enum": ["website", "facebook_ads", "google_ads", "referral", "events", "other"]},
                "status": {"type": "string", "enum": ["new", "contacted", "qualified", "lost", "won"]},
                "score": {"type": "number", "minimum": 0, "maximum": 100},
                "lead_value": {"type": "number", "minimum": 0},
                "last_activity_at": {"type": "string", "format": "date-time"},
                "is_qualified": {"type": "boolean"},
                "assigned_to": {"type": "string"}
            }
        },
        "models.UpdateLeadRequest": {
            "type": "object",
            "properties": {
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "company": {"type": "string"},
                "city": {"type": "string"},
                "state": {"type": "string"},
                "source": {"type": "string"},
                "status": {"type": "string"},
                "score": {"type": "number"},
                "lead_value": {"type": "number"},
                "last_activity_at": {"type": "string", "format": "date-time"},
                "is_qualified": {"type": "boolean"},
                "assigned_to": {"type": "string"}
            }
        },
        "models.AssignLeadRequest": {
            "type": "object",
            "properties": {
                "assigned_to": {"type": "string"}
            }
        },
        "models.LeadResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "company": {"type": "string"},
                "city": {"type": "string"},
                "state": {"type": "string"},
                "source": {"type": "string"},
                "status": {"type": "string"},
                "score": {"type": "number"},
                "lead_value": {"type": "number"},
                "last_activity_at": {"type": "string", "format": "date-time"},
                "is_qualified": {"type": "boolean"},
                "assigned_to": {"$ref": "#/definitions/models.UserRef"},
                "created_by": {"$ref": "#/definitions/models.UserRef"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "models.LeadListResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/models.LeadResponse"}},
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "total": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        },
        "models.CreateEmployeeRequest": {
            "type": "object",
            "required": ["email", "password", "first_name", "last_name"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6},
                "first_name": {"type": "string", "maxLength": 100},
                "last_name": {"type": "string", "maxLength": 100}
            }
        },
        "models.UpdateEmployeeRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6},
                "first_name": {"type": "string", "maxLength": 100},
                "last_name": {"type": "string", "maxLength": 100}
            }
        },
        "models.LeadSourceRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "maxLength": 100},
                "description": {"type": "string", "maxLength": 500},
                "is_active": {"type": "boolean"}
            }
        },
        "models.LeadSourceResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "is_active": {"type": "boolean"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "models.ImportResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "count": {"type": "integer"}
            }
        },
        "models.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"},
                "field": {"type": "string"},
                "value": {"type": "string"},
                "details": {"type": "array", "items": {"$ref": "#/definitions/domain.FieldError"}}
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
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "LeadDesk API",
	Description:      "Lead management backend: filtered lead lists, pipeline stats and an admin surface.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
