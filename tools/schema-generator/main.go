// Generates schema/hooks.generated.schema.json from the config structs.
// Run via `go generate ./config`. The embedded schema used at runtime is
// maintained by hand; the generated file exists to diff against it when the
// config structs change.
package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/grovetools/hooks/config"
)

func main() {
	schemaBytes, err := config.GenerateSchema()
	if err != nil {
		log.Fatalf("Error generating schema: %v", err)
	}

	outputDir := "schema"
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Fatalf("Error creating schema directory: %v", err)
	}

	outputPath := filepath.Join(outputDir, "hooks.generated.schema.json")
	if err := os.WriteFile(outputPath, schemaBytes, 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Generated schema at %s", outputPath)
}
