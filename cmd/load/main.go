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

// Command load drives a configured request stream against an http://,
// grpc://, or tcp:// target.
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sabouaram/ortgo/admin"
	"github.com/sabouaram/ortgo/bench"
	"github.com/sabouaram/ortgo/clientware"
	"github.com/sabouaram/ortgo/duration"
	"github.com/sabouaram/ortgo/limit"
	"github.com/sabouaram/ortgo/logger"
	"github.com/sabouaram/ortgo/metrics"
	"github.com/sabouaram/ortgo/percentile"
	"github.com/sabouaram/ortgo/target"
)

type loadFlags struct {
	adminAddr      string
	clients        int
	totalRequests  int64
	requestTimeout time.Duration
	connectTimeout time.Duration

	concurrencyLimit       int64
	concurrencyLimitInit   int64
	concurrencyRampPeriod  time.Duration
	concurrencyRampStep    int64
	concurrencyRampReset   bool

	requestLimit      int64
	requestLimitInit  int64
	requestRampPeriod time.Duration
	requestRampStep   int64
	requestRampReset  bool
	requestLimitWindow time.Duration

	responseLatency string
	responseSize    string

	logLevel string
}

func main() {
	flags := &loadFlags{}

	cmd := &cobra.Command{
		Use:   "load <target>",
		Short: "issue a shaped request stream against a load target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd.Context(), flags, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.adminAddr, "admin-addr", "0.0.0.0:8000", "admin HTTP bind address")
	f.IntVar(&flags.clients, "clients", 0, "number of parallel client connections (0 = number of CPUs)")
	f.Int64Var(&flags.totalRequests, "total-requests", 0, "total requests across all clients (0 = unbounded)")
	f.DurationVar(&flags.requestTimeout, "request-timeout", 10*time.Second, "per-request timeout")
	f.DurationVar(&flags.connectTimeout, "connect-timeout", time.Second, "per-attempt connect timeout")

	f.Int64Var(&flags.concurrencyLimit, "concurrency-limit", 0, "maximum concurrent in-flight requests (0 = unbounded)")
	f.Int64Var(&flags.concurrencyLimitInit, "concurrency-limit-init", 0, "initial concurrency permits when ramping")
	f.DurationVar(&flags.concurrencyRampPeriod, "concurrency-limit-ramp-period", 0, "time to climb from init to concurrency-limit")
	f.Int64Var(&flags.concurrencyRampStep, "concurrency-limit-ramp-step", 1, "permits added per ramp tick")
	f.BoolVar(&flags.concurrencyRampReset, "concurrency-limit-ramp-reset", false, "reset concurrency to init after reaching the limit")

	f.Int64Var(&flags.requestLimit, "request-limit", 0, "maximum requests started per window (0 = unbounded)")
	f.Int64Var(&flags.requestLimitInit, "request-limit-init", 0, "initial request budget when ramping")
	f.DurationVar(&flags.requestRampPeriod, "request-limit-ramp-period", 0, "time to climb from init to request-limit")
	f.Int64Var(&flags.requestRampStep, "request-limit-ramp-step", 1, "budget added per ramp tick")
	f.BoolVar(&flags.requestRampReset, "request-limit-ramp-reset", false, "reset the request budget to init after reaching the limit")
	f.DurationVar(&flags.requestLimitWindow, "request-limit-window", time.Second, "window over which request-limit is enforced")

	f.StringVar(&flags.responseLatency, "response-latency", "0", "requested response latency distribution")
	f.StringVar(&flags.responseSize, "response-size", "0", "requested response size distribution")

	f.StringVar(&flags.logLevel, "log-level", "info", "log level (trace,debug,info,warn,error)")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runLoad(ctx context.Context, flags *loadFlags, targetURI string) error {
	logger.Banner(os.Stdout, "ortgo-load", targetURI)
	log := logger.New(logger.Options{Level: flags.logLevel, Component: "load"})
	logger.BridgeSPF13(log)

	tgt, err := target.Parse(targetURI)
	if err != nil {
		return fmt.Errorf("invalid target: %w", err)
	}

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

	size, err := percentile.Parse[uint64](flags.responseSize, func(s string) (uint64, error) {
		return strconv.ParseUint(s, 10, 64)
	})
	if err != nil {
		return fmt.Errorf("invalid --response-size: %w", err)
	}

	concurrency, err := buildConcurrencyLimiter(ctx, flags)
	if err != nil {
		return fmt.Errorf("invalid concurrency-limit configuration: %w", err)
	}

	requestRate, err := buildRequestLimiter(ctx, flags)
	if err != nil {
		return fmt.Errorf("invalid request-limit configuration: %w", err)
	}

	hist := metrics.New()

	factory := clientware.Stack(tgt.Factory(), clientware.StackConfig{
		RequestTimeout: flags.requestTimeout,
		Reconnect:      clientware.ReconnectConfig{ConnectTimeout: flags.connectTimeout},
		Histogram:      hist,
	})

	runner := bench.New(bench.Config{
		Factory:       factory,
		Limiter:       limit.Composite(concurrency, requestRate),
		Latency:       latency,
		Size:          size,
		Clients:       flags.clients,
		TotalRequests: flags.totalRequests,
	})

	adminSrv := admin.New(hist, log)
	ln, err := net.Listen("tcp", flags.adminAddr)
	if err != nil {
		return fmt.Errorf("admin bind failed: %w", err)
	}
	httpSrv := &http.Server{Handler: adminSrv.Handler()}
	go func() {
		log.WithField("addr", flags.adminAddr).Info("admin server listening")
		if err := httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("admin server stopped")
		}
	}()
	defer func() {
		sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer scancel()
		_ = httpSrv.Shutdown(sctx)
	}()

	log.WithField("target", targetURI).Info("starting load")
	runner.Run(ctx)
	if err := runner.DialErrors(); err != nil {
		log.WithError(err).Warn("one or more workers failed to connect")
	}
	log.Info("load complete")

	return nil
}

func buildConcurrencyLimiter(ctx context.Context, flags *loadFlags) (limit.Limiter, error) {
	if flags.concurrencyLimit <= 0 {
		return limit.PassThrough(), nil
	}
	if flags.concurrencyRampPeriod <= 0 {
		return limit.Fixed(flags.concurrencyLimit), nil
	}

	ramp := limit.Ramp{
		Min:    flags.concurrencyLimitInit,
		Max:    flags.concurrencyLimit,
		Step:   flags.concurrencyRampStep,
		Period: flags.concurrencyRampPeriod,
		Reset:  flags.concurrencyRampReset,
	}
	if err := ramp.Validate(); err != nil {
		return nil, err
	}
	return limit.NewRamp(ctx, ramp)
}

func buildRequestLimiter(ctx context.Context, flags *loadFlags) (limit.Limiter, error) {
	if flags.requestLimit <= 0 {
		return limit.PassThrough(), nil
	}

	var ramp *limit.Ramp
	if flags.requestRampPeriod > 0 {
		ramp = &limit.Ramp{
			Min:    flags.requestLimitInit,
			Max:    flags.requestLimit,
			Step:   flags.requestRampStep,
			Period: flags.requestRampPeriod,
			Reset:  flags.requestRampReset,
		}
		if err := ramp.Validate(); err != nil {
			return nil, err
		}
	}

	return limit.NewRate(ctx, flags.requestLimit, flags.requestLimitWindow, ramp)
}
