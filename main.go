package main

import (
	"log"
	"net/http"
	"os"

	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/cmd"
	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/configs"
	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/routes"
	"github.com/RudyReyes28/Laboratorio-TS2-2026/app/utils/sessions"
	"github.com/gorilla/csrf"
)

func main() {

	configs.LoadEnv()
	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	db, err := configs.OpenConnection()
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	log.Println("✅ Database connected.")

	keys, err := configs.LoadSessionKeysFromEnv()
	if err != nil {
		log.Fatal("Session keys failed:", err)
	}

	flash := sessions.NewFlashStore(keys.AuthKey, keys.EncKey)
	log.Println("✅ Session store initialized.")

	router := routes.NewRouter(db, flash)

	csrfProtect := csrf.Protect(
		keys.AuthKey,
		csrf.Secure(configs.LoadENV.AppEnv == "production"),
	)

	server := http.Server{
		Addr:    configs.LoadENV.Port,
		Handler: csrfProtect(router),
	}

	log.Printf("🚀 Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Println("failed to connecting to the server")
	}

}
