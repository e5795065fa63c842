package store

import "github.com/santhosh-tekuri/jsonschema/v5"

// listSchemaJSON describes the persisted document: a JSON array of
// {id, title, completed} objects. Anything else on disk is treated as
// malformed and falls back to an empty list.
const listSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "completed"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "title": {"type": "string"},
      "completed": {"type": "boolean"}
    }
  }
}`

var listSchema = jsonschema.MustCompileString("todos.schema.json", listSchemaJSON)
