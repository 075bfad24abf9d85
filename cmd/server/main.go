/*
 * MIT License
 *
 * Copyright (c) 2026 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Command server runs the HTTP, gRPC, and muxed-TCP target surfaces against
// a shared replier.
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/sabouaram/ortgo/admin"
	httptransport "github.com/sabouaram/ortgo/transport/http"
	tcptransport "github.com/sabouaram/ortgo/transport/tcp"

	grpctransport "github.com/sabouaram/ortgo/transport/grpc"

	"github.com/sabouaram/ortgo/duration"
	"github.com/sabouaram/ortgo/logger"
	"github.com/sabouaram/ortgo/metrics"
	"github.com/sabouaram/ortgo/percentile"
	"github.com/sabouaram/ortgo/replier"
)

type serverFlags struct {
	grpcAddr        string
	httpAddr        string
	tcpAddr         string
	adminAddr       string
	responseLatency string
	logLevel        string
}

func main() {
	flags := &serverFlags{}

	cmd := &cobra.Command{
		Use:   "server",
		Short: "respond to load requests over HTTP, gRPC, and muxed TCP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.grpcAddr, "grpc-addr", ":8070", "gRPC bind address")
	f.StringVar(&flags.httpAddr, "http-addr", ":8080", "HTTP bind address")
	f.StringVar(&flags.tcpAddr, "tcp-addr", ":8090", "muxed TCP bind address")
	f.StringVar(&flags.adminAddr, "admin-addr", ":9090", "admin HTTP bind address")
	f.StringVar(&flags.responseLatency, "response-latency", "0", "server-side extra latency distribution")
	f.StringVar(&flags.logLevel, "log-level", "info", "log level (trace,debug,info,warn,error)")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(ctx context.Context, flags *serverFlags) error {
	logger.Banner(os.Stdout, "ortgo-server", flags.httpAddr)
	log := logger.New(logger.Options{Level: flags.logLevel, Component: "server"})
	logger.BridgeSPF13(log)

	latency, err := percentile.Parse[int64](flags.responseLatency, func(s string) (int64, error) {
		d, e := duration.Parse(s)
		if e != nil {
			return 0, e
		}
		return d.Time().Milliseconds(), nil
	})
	if err != nil {
		return fmt.Errorf("invalid --response-latency: %w", err)
	}

	impl := replier.New(latency)
	hist := metrics.New()

	drain := make(chan struct{})
	var wg sync.WaitGroup

	httpLn, err := net.Listen("tcp", flags.httpAddr)
	if err != nil {
		return fmt.Errorf("http bind failed: %w", err)
	}
	httpSrv := &http.Server{Handler: &httptransport.Handler{Impl: impl}}
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.WithField("addr", flags.httpAddr).Info("http target listening")
		if err := httpSrv.Serve(httpLn); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("http target stopped")
		}
	}()

	grpcLn, err := net.Listen("tcp", flags.grpcAddr)
	if err != nil {
		return fmt.Errorf("grpc bind failed: %w", err)
	}
	grpcSrv := grpc.NewServer()
	grpctransport.RegisterOrtServer(grpcSrv, grpctransport.NewServer(impl))
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.WithField("addr", flags.grpcAddr).Info("grpc target listening")
		if err := grpcSrv.Serve(grpcLn); err != nil {
			log.WithError(err).Error("grpc target stopped")
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.WithField("addr", flags.tcpAddr).Info("tcp target listening")
		if err := tcptransport.ListenAndServe(ctx, flags.tcpAddr, impl, 0, drain); err != nil {
			log.WithError(err).Error("tcp target stopped")
		}
	}()

	adminSrv := admin.New(hist, log)
	adminLn, err := net.Listen("tcp", flags.adminAddr)
	if err != nil {
		return fmt.Errorf("admin bind failed: %w", err)
	}
	adminHTTP := &http.Server{Handler: adminSrv.Handler()}
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.WithField("addr", flags.adminAddr).Info("admin server listening")
		if err := adminHTTP.Serve(adminLn); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("admin server stopped")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	close(drain)
	_ = httpSrv.Close()
	grpcSrv.GracefulStop()
	_ = adminHTTP.Close()

	wg.Wait()
	return nil
}
