// Package docs は swag が読み込む OpenAPI テンプレート。
// ルートの godoc アノテーションを変えたら swag init で再生成すること。
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
        "/products": {
            "get": {"tags": ["Products"], "summary": "List products", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Products"], "summary": "Create a new product", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/products/{product_id}": {
            "get": {"tags": ["Products"], "summary": "Get a product with attribute values and pricing", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["Products"], "summary": "Update a product", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Products"], "summary": "Delete a product", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/products/{product_id}/attribute-values": {
            "post": {"tags": ["Products"], "summary": "Assign an attribute value to a product", "responses": {"201": {"description": "Created"}}}
        },
        "/products/{product_id}/attribute-values/{attribute_value_id}": {
            "delete": {"tags": ["Products"], "summary": "Remove an attribute value from a product", "responses": {"200": {"description": "OK"}}}
        },
        "/attributes": {
            "get": {"tags": ["Attributes"], "summary": "List attributes", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Attributes"], "summary": "Create a new attribute", "responses": {"201": {"description": "Created"}}}
        },
        "/attributes/{attribute_id}": {
            "get": {"tags": ["Attributes"], "summary": "Get an attribute with its values", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Attributes"], "summary": "Update an attribute", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Attributes"], "summary": "Delete an attribute", "responses": {"200": {"description": "OK"}}}
        },
        "/attribute-values": {
            "get": {"tags": ["Attribute Values"], "summary": "List attribute values", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Attribute Values"], "summary": "Create a new attribute value", "responses": {"201": {"description": "Created"}}}
        },
        "/attribute-values/{value_id}": {
            "get": {"tags": ["Attribute Values"], "summary": "Get an attribute value", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Attribute Values"], "summary": "Update an attribute value", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Attribute Values"], "summary": "Delete an attribute value", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/regions": {
            "get": {"tags": ["Regions"], "summary": "List regions", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Regions"], "summary": "Create a new region", "responses": {"201": {"description": "Created"}}}
        },
        "/regions/{region_id}": {
            "get": {"tags": ["Regions"], "summary": "Get a region with its pricing", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Regions"], "summary": "Update a region", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Regions"], "summary": "Delete a region", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/rental-periods": {
            "get": {"tags": ["Rental Periods"], "summary": "List rental periods", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Rental Periods"], "summary": "Create a new rental period", "responses": {"201": {"description": "Created"}}}
        },
        "/rental-periods/{period_id}": {
            "get": {"tags": ["Rental Periods"], "summary": "Get a rental period", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Rental Periods"], "summary": "Update a rental period", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Rental Periods"], "summary": "Delete a rental period", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/pricing": {
            "get": {"tags": ["Pricing"], "summary": "List pricing rows", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Pricing"], "summary": "Create a pricing row", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/pricing/{pricing_id}": {
            "get": {"tags": ["Pricing"], "summary": "Get a pricing row with referent summaries", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Pricing"], "summary": "Update a pricing row", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Pricing"], "summary": "Delete a pricing row", "responses": {"200": {"description": "OK"}}}
        },
        "/rental-transactions": {
            "get": {"tags": ["Rental Transactions"], "summary": "List rental transactions", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Rental Transactions"], "summary": "Create a rental transaction", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/rental-transactions/{transaction_id}": {
            "get": {"tags": ["Rental Transactions"], "summary": "Get a rental transaction by id or rental_ulid", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Rental Transactions"], "summary": "Update a rental transaction", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}},
            "delete": {"tags": ["Rental Transactions"], "summary": "Delete a rental transaction", "responses": {"200": {"description": "OK"}}}
        },
        "/rental-transactions/{transaction_id}/status": {
            "put": {"tags": ["Rental Transactions"], "summary": "Set a rental transaction status", "responses": {"200": {"description": "OK"}}}
        },
        "/check-rental": {
            "post": {"tags": ["Rental Transactions"], "summary": "Check whether a product is available for rent", "responses": {"200": {"description": "OK"}}}
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "RENTA Product Rental API",
	Description:      "Product rentals with regional pricing: catalog, pricing and rental transaction management.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
