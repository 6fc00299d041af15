// Package api embeds the OpenAPI document of the users backend this app consumes.
package api

import _ "embed"

// BackendPath is where the backend OpenAPI document is served.
const BackendPath = "/openapi/backend.json"

//go:embed backend.swagger.json
var BackendSpec []byte
