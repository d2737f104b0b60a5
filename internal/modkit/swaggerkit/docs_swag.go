//go:build swag

package swaggerkit

import (
	docs "snipjar/internal/services/api/docs"
)

// docReader serves the document generated by swag init into internal/services/api/docs
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }
