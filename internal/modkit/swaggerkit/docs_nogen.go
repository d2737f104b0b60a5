//go:build !swag

package swaggerkit

// docReader serves a skeleton when the binary is built without generated docs
var docReader = func() string {
	return `{"openapi":"3.0.3","info":{"title":"snipjar API","version":"0.0.0"},"paths":{}}`
}
