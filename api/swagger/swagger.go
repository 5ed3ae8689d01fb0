package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Student Report API",
        "description": "Student report CRUD and company/daysorder lookups over a pooled SQL connection",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "report", "description": "Student report rows"},
        {"name": "lookup", "description": "Read-only company and daysorder lookups"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check including a database round trip",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unavailable"}
                }
            }
        },
        "/report": {
            "get": {
                "tags": ["report"],
                "summary": "Returns list of all the student reports",
                "responses": {
                    "200": {"description": "The list of the student reports", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "500": {"description": "Could not get student reports", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["report"],
                "summary": "Inserting Student Report Information",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateReportRequest"}}
                ],
                "responses": {
                    "200": {"description": "Succesfully inserted", "schema": {"$ref": "#/definitions/OutcomeEnvelope"}},
                    "422": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "500": {"description": "Could not insert", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["report"],
                "summary": "Updating Reports",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateReportGradeRequest"}}
                ],
                "responses": {
                    "200": {"description": "Succesfully updated", "schema": {"$ref": "#/definitions/OutcomeEnvelope"}},
                    "422": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "500": {"description": "Could not update", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports": {
            "patch": {
                "tags": ["report"],
                "summary": "Updating Report Info",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateReportSemesterRequest"}}
                ],
                "responses": {
                    "200": {"description": "Succesfully updated", "schema": {"$ref": "#/definitions/OutcomeEnvelope"}},
                    "422": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "500": {"description": "Could not update", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/{id}": {
            "delete": {
                "tags": ["report"],
                "summary": "Deleting a student report",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer", "description": "ROLLID that needs to be deleted"}
                ],
                "responses": {
                    "200": {"description": "Succesfully deleted", "schema": {"$ref": "#/definitions/OutcomeEnvelope"}},
                    "422": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "500": {"description": "Report not deleted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/company": {
            "get": {
                "tags": ["lookup"],
                "summary": "List companies",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "500": {"description": "Query failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/company/{id}": {
            "get": {
                "tags": ["lookup"],
                "summary": "Get company rows by COMPANY_ID",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Matching rows, empty when none", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "500": {"description": "Query failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/daysorder": {
            "get": {
                "tags": ["lookup"],
                "summary": "List daysorder rows for an agent",
                "parameters": [
                    {"name": "code", "in": "query", "required": true, "type": "string", "description": "AGENT_CODE"}
                ],
                "responses": {
                    "200": {"description": "Matching rows, empty when none", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Missing code", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "500": {"description": "Query failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CreateReportRequest": {
            "type": "object",
            "required": ["CLASS", "SECTION", "ROLLID", "GRADE", "SEMISTER", "CLASS_ATTENDED"],
            "properties": {
                "CLASS": {"type": "string", "example": "VII"},
                "SECTION": {"type": "string", "example": "C"},
                "ROLLID": {"type": "integer", "example": 99},
                "GRADE": {"type": "string", "example": "B"},
                "SEMISTER": {"type": "string", "example": "3Rd"},
                "CLASS_ATTENDED": {"type": "integer", "example": 90}
            }
        },
        "UpdateReportGradeRequest": {
            "type": "object",
            "required": ["GRADE", "SECTION", "ROLLID"],
            "properties": {
                "GRADE": {"type": "string", "example": "B++"},
                "SECTION": {"type": "string", "example": "D"},
                "ROLLID": {"type": "integer", "example": 99}
            }
        },
        "UpdateReportSemesterRequest": {
            "type": "object",
            "required": ["SEMISTER", "SECTION", "ROLLID"],
            "properties": {
                "SEMISTER": {"type": "string", "example": "4Th"},
                "SECTION": {"type": "string", "example": "E"},
                "ROLLID": {"type": "integer", "example": 99}
            }
        },
        "Outcome": {
            "type": "object",
            "properties": {
                "affectedRows": {"type": "integer"},
                "insertId": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "OutcomeEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/Outcome"},
                "error": {"$ref": "#/definitions/APIError"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"type": "object"}},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
