package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/aviral07-code/Stateful-Network-file-server/server"
	"github.com/aviral07-code/Stateful-Network-file-server/service"
	"github.com/nnsgmsone/damrey/logger"
)

func main() {
	scfg := server.DefaultConfig()
	cfg := service.DefaultConfig()
	flag.StringVar(&scfg.Addr, "addr", scfg.Addr, "listen address")
	flag.StringVar(&cfg.ImagePath, "image", cfg.ImagePath, "path of the virtual disk image")
	flag.BoolVar(&cfg.SyncWrites, "sync", cfg.SyncWrites, "fsync the image after every write")
	flag.Parse()

	log := logger.New(cfg.LogWriter, "ssnfsd")
	svc := service.New(cfg)
	if err := svc.Init(); err != nil {
		log.Fatalf("failed to open image '%s': %v\n", cfg.ImagePath, err)
	}
	srv, err := server.New(scfg, svc, log)
	if err != nil {
		log.Fatalf("failed to register service: %v\n", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		srv.Close()
	}()
	if err := srv.ListenAndServe(); err != nil {
		svc.Close()
		log.Fatalf("failed to serve on '%s': %v\n", scfg.Addr, err)
	}
	if err := svc.Close(); err != nil {
		log.Fatalf("failed to close image: %v\n", err)
	}
}
