package main

import (
	"log"
	"net/http"
	"os"

	"rutas_tracker/internal/config"
	"rutas_tracker/internal/importer"
	"rutas_tracker/internal/logger"
	"rutas_tracker/internal/middleware"
	"rutas_tracker/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database, migrate and seed
	config.InitDB()

	// Load rutas from the spreadsheet when it is present
	rutasPath := config.GetEnv("RUTAS_XLSX", "DB_Rutas.xlsx")
	if _, err := os.Stat(rutasPath); err == nil {
		result, err := importer.LoadRutas(config.DB, rutasPath)
		if err != nil {
			log.Printf("rutas import skipped: %v", err)
		} else {
			log.Printf("%d rutas cargadas desde %s (%d omitidas)", result.Imported, rutasPath, result.Skipped)
		}
	} else {
		log.Printf("archivo %s no encontrado, rutas sin cargar", rutasPath)
	}

	// Setup Gin router
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := "0.0.0.0:" + config.GetEnv("PORT", "8080")
	log.Printf("🚀 Server running at %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
