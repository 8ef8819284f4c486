// Package docs registers the HisaabKeeper OpenAPI description with swag.
// Regenerate with `swag init -g cmd/server/main.go` after changing handler annotations.
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
        "/dashboard": {"get": {"tags": ["dashboard"], "summary": "Sales totals and latest invoices", "responses": {"200": {"description": "OK"}}}},
        "/profile": {
            "get": {"tags": ["profile"], "summary": "Get seller profile", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}},
            "put": {"tags": ["profile"], "summary": "Create or replace the seller profile", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/customers": {
            "get": {"tags": ["customers"], "summary": "List customers", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["customers"], "summary": "Create customer", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/customers/import": {"post": {"tags": ["customers"], "summary": "Import customers from an Excel workbook", "consumes": ["multipart/form-data"], "responses": {"200": {"description": "OK"}}}},
        "/customers/export": {"get": {"tags": ["customers"], "summary": "Export customers as an Excel workbook", "responses": {"200": {"description": "OK"}}}},
        "/customers/template": {"get": {"tags": ["customers"], "summary": "Download the empty customer import template", "responses": {"200": {"description": "OK"}}}},
        "/customers/{id}": {
            "get": {"tags": ["customers"], "summary": "Get customer", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["customers"], "summary": "Update customer", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["customers"], "summary": "Delete customer", "responses": {"200": {"description": "OK"}}}
        },
        "/customers/{id}/ledger": {"get": {"tags": ["ledger"], "summary": "Customer ledger", "responses": {"200": {"description": "OK"}}}},
        "/items": {
            "get": {"tags": ["items"], "summary": "List items", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["items"], "summary": "Create item", "responses": {"201": {"description": "Created"}}}
        },
        "/items/{id}": {
            "get": {"tags": ["items"], "summary": "Get item", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["items"], "summary": "Update item", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["items"], "summary": "Delete item", "responses": {"200": {"description": "OK"}}}
        },
        "/invoices": {
            "get": {"tags": ["invoices"], "summary": "List invoices", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["invoices"], "summary": "Generate invoice", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/invoices/preview": {"post": {"tags": ["invoices"], "summary": "Preview invoice PDF", "produces": ["application/pdf"], "responses": {"200": {"description": "OK"}}}},
        "/invoices/next-number": {"get": {"tags": ["invoices"], "summary": "Suggest the next invoice number", "responses": {"200": {"description": "OK"}}}},
        "/invoices/export": {"get": {"tags": ["invoices"], "summary": "Export the invoice register as CSV", "produces": ["text/csv"], "responses": {"200": {"description": "OK"}}}},
        "/invoices/{id}": {"get": {"tags": ["invoices"], "summary": "Get invoice", "responses": {"200": {"description": "OK"}}}},
        "/invoices/{id}/pdf": {"get": {"tags": ["invoices"], "summary": "Download invoice PDF", "responses": {"302": {"description": "Found"}}}},
        "/invoices/{id}/share": {"post": {"tags": ["invoices"], "summary": "Create fresh share links for an invoice", "responses": {"200": {"description": "OK"}}}},
        "/receipts": {"post": {"tags": ["ledger"], "summary": "Record a payment received", "responses": {"201": {"description": "Created"}}}},
        "/ledger/balances": {"get": {"tags": ["ledger"], "summary": "Pending balance of every customer", "responses": {"200": {"description": "OK"}}}},
        "/inward": {
            "get": {"tags": ["inward"], "summary": "List inward supplies", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["inward"], "summary": "Record an inward supply", "responses": {"201": {"description": "Created"}}}
        },
        "/inward/export": {"get": {"tags": ["inward"], "summary": "Export inward supplies as CSV", "produces": ["text/csv"], "responses": {"200": {"description": "OK"}}}},
        "/inward/{id}": {"delete": {"tags": ["inward"], "summary": "Delete an inward supply", "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "HisaabKeeper API",
	Description:      "GST invoicing for small Indian businesses: customers, items, invoices, ledger and purchases.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
