// Package docs registers the generated OpenAPI description with swag.
// Code generated by swag init; edits belong in the controller annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "TrashMob Support",
            "url": "https://www.trashmob.eco",
            "email": "info@trashmob.eco"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/adoptions": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["adoptions"],
                "summary": "Submit an adoption application",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/adoptions/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["adoptions"],
                "summary": "Get adoption by ID",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/adoptions/{id}/approve": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["adoptions"],
                "summary": "Approve an adoption application",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/adoptions/{id}/reject": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["adoptions"],
                "summary": "Reject an adoption application",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/adoptions/{id}/events": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["ledger"],
                "summary": "List an adoption's linked events",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["ledger"],
                "summary": "Link a cleanup event to an adoption",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/adoptions/team/{teamId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["adoptions"],
                "summary": "List a team's adoptions",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/adoptions/team/{teamId}/active": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["ledger"],
                "summary": "List a team's active adoption contracts",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/adoptions/area/{areaId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["adoptions"],
                "summary": "List an area's adoptions",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/adoption-events/{linkId}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["ledger"],
                "summary": "Unlink a cleanup event from an adoption",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/communities/{communityId}/areas": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["areas"],
                "summary": "List a community's adoptable areas",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/communities/{communityId}/areas/name-check": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["areas"],
                "summary": "Check area name availability",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/communities/{communityId}/adoptions/pending": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["adoptions"],
                "summary": "List a community's pending applications",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/communities/{communityId}/adoptions/approved": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["adoptions"],
                "summary": "List a community's approved adoptions",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/communities/{communityId}/adoptions/delinquent": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["adoptions"],
                "summary": "List a community's delinquent adoptions",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/communities/{communityId}/adoptions/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["adoptions"],
                "summary": "Community compliance statistics",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/communities/{communityId}/adoptions/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["adoptions"],
                "summary": "Export a community's approved adoptions as CSV",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/events/{eventId}/adoptions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["ledger"],
                "summary": "List adoptions an event is linked to",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/events/{eventId}/adoptions/linked": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["ledger"],
                "summary": "Check whether an event is linked to an adoption",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT token for authorization",
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
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Area Adoption & Compliance API",
	Description:      "API for volunteer teams adopting cleanup areas: applications, approval workflow, event ledger and compliance tracking.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
