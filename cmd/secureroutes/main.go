// Command secureroutes retrofits the admin gate onto a fixed list of route
// registration files. Only the RegisterAdminRoutes bodies are rewritten;
// the public registrations in the same files stay open. It is a one-shot
// development utility, not part of the running service. Running it twice is
// safe: already-gated files are skipped.
package main

import (
	"log"
	"os"

	"tireshop/internal/retrofit"
)

// The handler files that register privileged routes.
var targetFiles = []string{
	"internal/handlers/catalog_handler.go",
	"internal/handlers/product_handler.go",
	"internal/handlers/service_handler.go",
	"internal/handlers/appointment_handler.go",
	"internal/handlers/quote_handler.go",
	"internal/handlers/review_handler.go",
	"internal/handlers/checkout_handler.go",
}

func main() {
	tool := retrofit.New()
	summary := tool.Run(targetFiles)

	log.Printf("secureroutes: %d rewritten, %d skipped, %d missing, %d failed",
		summary.Rewritten, summary.Skipped, summary.Missing, summary.Failed)

	if summary.Failed > 0 {
		os.Exit(1)
	}
}
