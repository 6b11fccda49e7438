package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SAD Notificaciones API",
        "description": "Registro de docentes, publicación de resoluciones y acuses de notificación",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Autenticación del administrador"},
        {"name": "Docentes", "description": "Registro de docentes por DNI"},
        {"name": "Resoluciones", "description": "Publicación de resoluciones"},
        {"name": "Vinculos", "description": "Vínculos resolución-docente"},
        {"name": "Acuses", "description": "Registro legal de acuses"},
        {"name": "Público", "description": "Consulta pública por DNI"}
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
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Iniciar sesión",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "401": {"description": "Credenciales inválidas", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/public/buscar": {
            "get": {
                "tags": ["Público"],
                "summary": "Buscar resoluciones por DNI",
                "parameters": [
                    {"name": "dni", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LookupResult"}},
                    "400": {"description": "DNI inválido", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "503": {"description": "Servicio no disponible", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/public/acuse": {
            "post": {
                "tags": ["Acuses"],
                "summary": "Registrar un acuse de notificación",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecordAcuseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Creado"},
                    "400": {"description": "Datos inválidos", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Resolución no encontrada", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/admin/docentes": {
            "get": {
                "tags": ["Docentes"],
                "summary": "Listar docentes",
                "parameters": [
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Docentes"],
                "summary": "Alta o actualización de un docente",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpsertDocenteRequest"}}
                ],
                "responses": {
                    "200": {"description": "Actualizado o sin cambios"},
                    "201": {"description": "Creado"}
                }
            }
        },
        "/api/admin/docentes/bulk": {
            "post": {
                "tags": ["Docentes"],
                "summary": "Carga masiva de docentes",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkUpsertRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/admin/docentes/{dni}": {
            "delete": {
                "tags": ["Docentes"],
                "summary": "Eliminar un docente",
                "parameters": [
                    {"name": "dni", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "No encontrado", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/admin/resoluciones": {
            "get": {
                "tags": ["Resoluciones"],
                "summary": "Listar resoluciones",
                "parameters": [
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Resoluciones"],
                "summary": "Publicar una resolución",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateResolucionRequest"}}
                ],
                "responses": {
                    "200": {"description": "Ya existía"},
                    "201": {"description": "Creada"}
                }
            }
        },
        "/api/admin/resoluciones/{id}": {
            "patch": {
                "tags": ["Resoluciones"],
                "summary": "Editar una resolución",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateResolucionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "No encontrada", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["Resoluciones"],
                "summary": "Eliminar una resolución",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "No encontrada", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/admin/resoluciones/{id}/acuses": {
            "get": {
                "tags": ["Acuses"],
                "summary": "Listar acuses de una resolución",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/admin/vinculos": {
            "post": {
                "tags": ["Vinculos"],
                "summary": "Vincular docentes a una resolución",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LinkManyRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Resolución no encontrada", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["Vinculos"],
                "summary": "Desvincular un docente",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UnlinkRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/admin/vinculos/{resolucionId}": {
            "get": {
                "tags": ["Vinculos"],
                "summary": "Listar vínculos de una resolución",
                "parameters": [
                    {"name": "resolucionId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/admin/acuses": {
            "get": {
                "tags": ["Acuses"],
                "summary": "Listar acuses",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/admin/acuses/export": {
            "get": {
                "tags": ["Acuses"],
                "summary": "Exportar el registro de acuses",
                "parameters": [
                    {"name": "formato", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Archivo"},
                    "400": {"description": "Formato desconocido", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "UpsertDocenteRequest": {
            "type": "object",
            "properties": {
                "dni": {"type": "string"},
                "nombre": {"type": "string"}
            },
            "required": ["dni", "nombre"]
        },
        "BulkUpsertRequest": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/UpsertDocenteRequest"}
                }
            },
            "required": ["items"]
        },
        "CreateResolucionRequest": {
            "type": "object",
            "properties": {
                "docenteDni": {"type": "string"},
                "titulo": {"type": "string"},
                "driveUrl": {"type": "string"},
                "expediente": {"type": "string"},
                "nivel": {"type": "string"}
            },
            "required": ["titulo", "driveUrl"]
        },
        "UpdateResolucionRequest": {
            "type": "object",
            "properties": {
                "titulo": {"type": "string"},
                "driveUrl": {"type": "string"},
                "expediente": {"type": "string"},
                "nivel": {"type": "string"}
            }
        },
        "LinkManyRequest": {
            "type": "object",
            "properties": {
                "resolucionId": {"type": "string"},
                "dnis": {
                    "type": "array",
                    "items": {"type": "string"}
                }
            },
            "required": ["resolucionId", "dnis"]
        },
        "UnlinkRequest": {
            "type": "object",
            "properties": {
                "resolucionId": {"type": "string"},
                "docenteDni": {"type": "string"}
            },
            "required": ["resolucionId", "docenteDni"]
        },
        "RecordAcuseRequest": {
            "type": "object",
            "properties": {
                "docenteDni": {"type": "string"},
                "resolucionId": {"type": "string"},
                "nombreCompleto": {"type": "string"},
                "email": {"type": "string"},
                "acepto": {"type": "boolean"},
                "textoLegal": {"type": "string"}
            },
            "required": ["docenteDni", "resolucionId", "nombreCompleto", "email", "acepto", "textoLegal"]
        },
        "LookupResult": {
            "type": "object",
            "properties": {
                "nombre": {"type": "string"},
                "dni": {"type": "string"},
                "resoluciones": {
                    "type": "array",
                    "items": {"type": "object"}
                }
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
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
