package credstore

import "embed"

// schemaFS embeds the credential schema fixture applied by the test
// helpers. The production database is created and migrated by the
// identity service itself.
//
//go:embed schema/*.sql
var schemaFS embed.FS
