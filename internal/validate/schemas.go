package validate

import "github.com/xeipuuv/gojsonschema"

// Field-shape rules live in JSON schemas; cross-field invariants are checked
// in Go (see validate.go).

const accountSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name", "type", "currency"],
  "properties": {
    "name": {"type": "string", "minLength": 1, "maxLength": 100},
    "type": {"enum": ["bank", "mobile_money", "cash", "other"]},
    "currency": {"enum": ["USD", "EUR", "GBP", "JPY"]},
    "balance": {"type": "number", "minimum": 0, "maximum": 1000000000},
    "description": {"type": "string", "maxLength": 500}
  }
}`

const transactionSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["type", "amount", "account_id", "category_id"],
  "properties": {
    "type": {"enum": ["income", "expense"]},
    "amount": {"type": "number", "exclusiveMinimum": 0, "maximum": 1000000000},
    "description": {"type": "string", "maxLength": 500},
    "account_id": {"type": "integer", "minimum": 1},
    "category_id": {"type": "integer", "minimum": 1}
  }
}`

const categorySchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name", "type"],
  "properties": {
    "name": {"type": "string", "minLength": 2, "maxLength": 50},
    "type": {"enum": ["income", "expense"]},
    "description": {"type": "string", "maxLength": 500},
    "color": {"type": "string", "pattern": "^#[0-9a-fA-F]{6}$"},
    "parent_id": {"type": "integer", "minimum": 1}
  }
}`

const budgetSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["category_id", "amount", "notification_threshold"],
  "properties": {
    "category_id": {"type": "integer", "minimum": 1},
    "amount": {"type": "number", "exclusiveMinimum": 0, "maximum": 1000000000},
    "notification_threshold": {"type": "number", "exclusiveMinimum": 0, "maximum": 1}
  }
}`

const credentialsSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["email", "password"],
  "properties": {
    "email": {"type": "string", "format": "email"},
    "password": {"type": "string", "minLength": 1}
  }
}`

const registrationSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["email", "password", "full_name"],
  "properties": {
    "email": {"type": "string", "format": "email"},
    "password": {"type": "string", "minLength": 8},
    "full_name": {"type": "string", "minLength": 1, "maxLength": 100}
  }
}`

var (
	accountSchema      = mustSchema(accountSchemaJSON)
	transactionSchema  = mustSchema(transactionSchemaJSON)
	categorySchema     = mustSchema(categorySchemaJSON)
	budgetSchema       = mustSchema(budgetSchemaJSON)
	credentialsSchema  = mustSchema(credentialsSchemaJSON)
	registrationSchema = mustSchema(registrationSchemaJSON)
)

func mustSchema(raw string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	if err != nil {
		panic("invalid schema literal: " + err.Error())
	}
	return schema
}
