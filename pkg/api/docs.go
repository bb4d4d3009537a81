package api

import "github.com/swaggo/swag"

// docsInstanceName is the name the OpenAPI document is registered under
const docsInstanceName = "swagger"

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
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "X-API-Key",
            "in": "header"
        }
    },
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/records/encode": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "summary": "Encode a record",
                "description": "Encodes the record and returns it as hex or base64 JSON, or as raw bytes with format=raw.",
                "consumes": ["application/json"],
                "produces": ["application/json", "application/octet-stream"],
                "parameters": [
                    {"type": "string", "enum": ["hex", "base64", "raw"], "name": "format", "in": "query"},
                    {"name": "record", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.RecordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.EncodeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/records/size": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "summary": "Size a record",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "record", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.RecordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.SizeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "error": {"type": "string"}
            }
        },
        "api.RecordRequest": {
            "type": "object",
            "properties": {
                "attributes": {"type": "integer"},
                "offset": {"type": "integer"},
                "timestamp": {"type": "integer"},
                "sequence": {"type": "integer"},
                "key": {"type": "string", "x-nullable": true},
                "value": {"type": "string", "x-nullable": true},
                "key_encoding": {"type": "string", "enum": ["utf8", "hex", "base64"]},
                "value_encoding": {"type": "string", "enum": ["utf8", "hex", "base64"]},
                "generate_key": {"type": "boolean"}
            }
        },
        "api.EncodeResponse": {
            "type": "object",
            "properties": {
                "body_length": {"type": "integer"},
                "encoded_length": {"type": "integer"},
                "encoding": {"type": "string"},
                "data": {"type": "string"},
                "generated_key": {"type": "string"}
            }
        },
        "api.SizeResponse": {
            "type": "object",
            "properties": {
                "body_length": {"type": "integer"},
                "encoded_length": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "brokercore record API",
	Description:      "Encodes broker log records into their varint-framed binary form.",
	InfoInstanceName: docsInstanceName,
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
