package rbac

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"

	PermDocumentsUpload = "documents:upload"
	PermModelsUpload    = "models:upload"
	PermModelsList      = "models:list"
	PermBooksWrite      = "books:write"
	PermEventsRead      = "events:read"
)

// Default policy. Readers never authenticate, so only content roles appear.
var RolePermissions = map[string][]string{
	RoleEditor: {
		PermDocumentsUpload,
		PermModelsUpload,
		PermModelsList,
		PermBooksWrite,
		PermEventsRead,
	},
	RoleAdmin: {
		"*", // everything
	},
}
