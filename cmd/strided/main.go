package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/stride-app/stride/internal/config"
	"github.com/stride-app/stride/internal/server"
	"github.com/stride-app/stride/internal/store"
	"github.com/stride-app/stride/internal/util"
)

func main() {
	dataDir := util.DataDir(config.AppName)
	addr := flag.String("addr", config.DefaultListenAddr, "listen address")
	dbPath := flag.String("db", filepath.Join(dataDir, config.DBFileName), "path to the goal database")
	flag.Parse()

	util.MustSucceed("creating data directory", os.MkdirAll(filepath.Dir(*dbPath), 0o755))

	st, err := store.Open(context.Background(), *dbPath)
	util.MustSucceed("opening store", err)
	defer st.Close()

	srv := server.New(st)
	log.Printf("strided listening on %s (db %s)", *addr, *dbPath)
	util.MustSucceed("serving", http.ListenAndServe(*addr, srv.Handler()))
}
