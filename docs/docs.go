// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package docs registers the OpenAPI document served at /swagger/doc.json.
// Regenerate with `swag init -g cmd/server/docs.go -o docs` after changing
// handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "GitHub Repository",
            "url": "https://github.com/tomtom215/marquee/issues"
        },
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/releases/months/{month}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Releases"],
                "summary": "Count releases by month",
                "parameters": [{"type": "string", "example": "enero", "description": "Month name in Spanish", "name": "month", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "400": {"description": "Unknown month", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "503": {"description": "Catalog not loaded", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/api/v1/releases/weekdays/{weekday}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Releases"],
                "summary": "Count releases by weekday",
                "parameters": [{"type": "string", "example": "lunes", "description": "Weekday name in Spanish", "name": "weekday", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "400": {"description": "Unknown weekday", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "503": {"description": "Catalog not loaded", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/api/v1/movies/{title}/score": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Movies"],
                "summary": "Movie score",
                "parameters": [{"type": "string", "description": "Movie title", "name": "title", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "404": {"description": "No such title", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/api/v1/movies/{title}/votes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Movies"],
                "summary": "Movie votes",
                "parameters": [{"type": "string", "description": "Movie title", "name": "title", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "404": {"description": "No such title", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/api/v1/actors/{name}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["People"],
                "summary": "Actor statistics",
                "parameters": [{"type": "string", "description": "Actor name or fragment", "name": "name", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "404": {"description": "No cast entry matched", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/api/v1/directors/{name}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["People"],
                "summary": "Director statistics",
                "parameters": [{"type": "string", "description": "Director name or fragment", "name": "name", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "404": {"description": "No crew entry matched", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/api/v1/catalog": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Catalog"],
                "summary": "Catalog snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "503": {"description": "Catalog not loaded", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/api/v1/catalog/reload": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Catalog"],
                "summary": "Reload the catalog",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "500": {"description": "Reload failed", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "503": {"description": "Reload not available", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/api/v1/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Get system health status",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.APIResponse"}}}
            }
        },
        "/api/v1/health/live": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Kubernetes liveness probe",
                "responses": {"200": {"description": "Service is alive", "schema": {"$ref": "#/definitions/models.APIResponse"}}}
            }
        },
        "/api/v1/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Kubernetes readiness probe",
                "responses": {
                    "200": {"description": "Service is ready", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "503": {"description": "Service is not ready", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/cantidad_filmaciones_mes/{mes}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Legacy"],
                "summary": "Releases in a month (legacy)",
                "parameters": [{"type": "string", "description": "Mes en español", "name": "mes", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.LegacyMessage"}}}
            }
        },
        "/cantidad_filmaciones_dia/{dia}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Legacy"],
                "summary": "Releases on a weekday (legacy)",
                "parameters": [{"type": "string", "description": "Día en español", "name": "dia", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.LegacyMessage"}}}
            }
        },
        "/score_titulo/{titulo}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Legacy"],
                "summary": "Movie score (legacy)",
                "parameters": [{"type": "string", "description": "Título de la filmación", "name": "titulo", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.LegacyMessage"}}}
            }
        },
        "/votos_titulo/{titulo}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Legacy"],
                "summary": "Movie votes (legacy)",
                "parameters": [{"type": "string", "description": "Título de la filmación", "name": "titulo", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.LegacyMessage"}}}
            }
        },
        "/get_actor/{nombre}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Legacy"],
                "summary": "Actor statistics (legacy)",
                "parameters": [{"type": "string", "description": "Nombre del actor", "name": "nombre", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.LegacyMessage"}}}
            }
        },
        "/get_director/{nombre}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Legacy"],
                "summary": "Director statistics (legacy)",
                "parameters": [{"type": "string", "description": "Nombre del director", "name": "nombre", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.LegacyDirector"}}}
            }
        }
    },
    "definitions": {
        "models.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true}
            }
        },
        "models.Metadata": {
            "type": "object",
            "properties": {
                "timestamp": {"type": "string"},
                "query_time_ms": {"type": "integer"},
                "cached": {"type": "boolean"}
            }
        },
        "models.APIResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "data": {},
                "metadata": {"$ref": "#/definitions/models.Metadata"},
                "error": {"$ref": "#/definitions/models.APIError"}
            }
        },
        "models.LegacyMessage": {
            "type": "object",
            "properties": {
                "mensaje": {"type": "string"}
            }
        },
        "models.LegacyFilm": {
            "type": "object",
            "properties": {
                "titulo": {"type": "string"},
                "fecha_lanzamiento": {"type": "string"},
                "retorno": {"type": "number"},
                "costo": {"type": "number"},
                "ganancia": {"type": "number"}
            }
        },
        "models.LegacyDirector": {
            "type": "object",
            "properties": {
                "mensaje": {"type": "string"},
                "peliculas": {"type": "array", "items": {"$ref": "#/definitions/models.LegacyFilm"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Marquee API",
	Description:      "Query API over a movies and credits catalog: release counts by month and weekday, title scores and votes, actor and director statistics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
