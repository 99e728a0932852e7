// Package docs registra el documento Swagger que se sirve en /swagger/.
// Mantener en sync con las anotaciones godoc de los handlers.
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
                "description": "Nombre del servicio, estado y versión.",
                "produces": ["application/json"],
                "tags": ["status"],
                "summary": "Estado del servicio",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.statusResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Siempre 200 mientras el proceso está arriba.",
                "produces": ["application/json"],
                "tags": ["status"],
                "summary": "Liveness",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.healthResponse"}}
                }
            }
        },
        "/echo": {
            "post": {
                "description": "Devuelve el body recibido sin cambios, incluidos campos desconocidos y nulls. Endpoint de práctica: no valida tipos ni rangos. Solo falla si el body no es un objeto JSON.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["practice"],
                "summary": "Eco de un reporte de síntomas",
                "parameters": [
                    {"description": "Reporte de síntomas", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/diagnosis.diagnoseRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "422": {"description": "JSON malformado", "schema": {"$ref": "#/definitions/apierror.Response"}}
                }
            }
        },
        "/diagnose": {
            "post": {
                "description": "Valida el reporte, asigna un tier (emergency, severe, moderate, mild) y guarda el registro en el historial. Se reportan todas las violaciones juntas.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["diagnosis"],
                "summary": "Clasificar un reporte de síntomas",
                "parameters": [
                    {"description": "Reporte de síntomas", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/diagnosis.diagnoseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/diagnosis.recordResponse"}},
                    "422": {"description": "errores de validación, uno por campo", "schema": {"$ref": "#/definitions/apierror.Response"}},
                    "500": {"description": "error interno", "schema": {"$ref": "#/definitions/apierror.Response"}}
                }
            }
        },
        "/history": {
            "get": {
                "description": "Todos los registros guardados, del más viejo al más nuevo. Array vacío si no hay nada.",
                "produces": ["application/json"],
                "tags": ["diagnosis"],
                "summary": "Listar historial de diagnósticos",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/diagnosis.recordResponse"}}},
                    "500": {"description": "error interno", "schema": {"$ref": "#/definitions/apierror.Response"}}
                }
            },
            "delete": {
                "description": "Borra todos los registros y devuelve cuántos se borraron.",
                "produces": ["application/json"],
                "tags": ["diagnosis"],
                "summary": "Vaciar historial de diagnósticos",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/diagnosis.clearResponse"}},
                    "500": {"description": "error interno", "schema": {"$ref": "#/definitions/apierror.Response"}}
                }
            }
        }
    },
    "definitions": {
        "apierror.Response": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "validation_error"},
                "message": {"type": "string"},
                "details": {"type": "array", "items": {"$ref": "#/definitions/diagnosis.FieldError"}},
                "path": {"type": "string", "example": "/diagnose"}
            }
        },
        "diagnosis.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string", "example": "symptoms"},
                "reason": {"type": "string", "example": "too short: 12 < 20 chars"}
            }
        },
        "diagnosis.diagnoseRequest": {
            "type": "object",
            "properties": {
                "symptoms": {"type": "string", "example": "I have a persistent headache and feel dizzy when standing up"},
                "duration": {"type": "string", "enum": ["hours", "1 day", "2-3 days", "week+"], "example": "2-3 days"},
                "severity": {"type": "integer", "minimum": 1, "maximum": 10, "example": 6},
                "age": {"type": "integer", "minimum": 1, "maximum": 120, "example": 35}
            }
        },
        "diagnosis.recordResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "symptoms": {"type": "string"},
                "duration": {"type": "string", "enum": ["hours", "1 day", "2-3 days", "week+"]},
                "severity": {"type": "integer"},
                "age": {"type": "integer"},
                "tier": {"type": "string", "enum": ["emergency", "severe", "moderate", "mild"]},
                "recommendation": {"type": "string"},
                "confidence": {"type": "number"},
                "matched_keyword": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "diagnosis.clearResponse": {
            "type": "object",
            "properties": {
                "cleared": {"type": "integer"}
            }
        },
        "router.statusResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "status": {"type": "string", "example": "running"},
                "version": {"type": "string", "example": "0.1.0"}
            }
        },
        "router.healthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "healthy"},
                "service": {"type": "string", "example": "asclepius-api"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Asclepius API",
	Description:      "Chequeo de síntomas: valida un reporte, lo clasifica en un tier de severidad y mantiene un historial en memoria.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
