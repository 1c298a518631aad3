package main

import (
	"log"
	"net/http"

	"github.com/Gonyak-cell/LivePlan-sub002/internal/serverapp"
)

const addr = ":8473"

func main() {
	app, err := serverapp.New(serverapp.Options{
		DataDir:       "data",
		WatchSettings: true,
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}
	defer app.Close()

	log.Printf("liveplan listening on http://localhost%s", addr)
	log.Fatal(http.ListenAndServe(addr, app.Handler))
}
