// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"net/http"
	_ "net/http/pprof"
	"time"

	log "github.com/sirupsen/logrus"

	"go.amzn.com/trainsim/railway/control"
)

func startHTTPServer(ctx context.Context, ipport string, rw control.Railway) {
	srv := &http.Server{
		Addr:    ipport,
		Handler: control.NewHTTPRouter(rw),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Infof("Control API listening on %s", ipport)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Error("Control API stopped")
	}
}

func startDebugServer(ipport string) {
	if err := http.ListenAndServe(ipport, http.DefaultServeMux); err != nil {
		log.WithError(err).Error("Failed to start debug server")
	}
}
