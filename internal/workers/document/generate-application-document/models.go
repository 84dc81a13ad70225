// internal/workers/document/generate-application-document/models.go
package generateapplicationdocument

// inputSchema describes the job variables this worker reads. Other process
// variables are allowed and ignored.
const inputSchema = `{
  "type": "object",
  "properties": {
    "applicationId": {
      "type": "string",
      "pattern": "^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$"
    },
    "baseUri": {"type": "string"}
  },
  "required": ["applicationId"]
}`

type Input struct {
	ApplicationID string `json:"applicationId"`
	BaseURI       string `json:"baseUri,omitempty"`
}

type Output struct {
	DocumentGenerated bool   `json:"documentGenerated"`
	DocumentKey       string `json:"documentKey,omitempty"`
	DocumentLocation  string `json:"documentLocation,omitempty"`
	DocumentSize      int    `json:"documentSize,omitempty"`
	DocumentPages     int    `json:"documentPages,omitempty"`
	ApplicationState  string `json:"applicationState,omitempty"`
	GeneratedAt       string `json:"generatedAt,omitempty"`
	EventMessageID    string `json:"eventMessageId,omitempty"`
}
