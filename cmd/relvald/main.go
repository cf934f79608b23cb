// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command relvald wires the batch engine core (pkg/batch) to its
// concrete collaborators: a sqlite-backed store, a NATS messaging pair,
// a gocron clock source, Prometheus metrics, and an optional gops
// diagnostics agent. Grounded on the teacher's cmd/cc-backend/main.go:
// flag parsing, .env-then-JSON config loading, signal-driven graceful
// shutdown coordinated by a sync.WaitGroup, and the log.Fatal idiom for
// unrecoverable startup errors.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime/debug"
	"sync"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/gops/agent"
	"github.com/nats-io/nats.go"

	"github.com/xapiens/RVPF-sub009/internal/metrics"
	"github.com/xapiens/RVPF-sub009/pkg/batch"
	"github.com/xapiens/RVPF-sub009/pkg/config"
	"github.com/xapiens/RVPF-sub009/pkg/log"
	"github.com/xapiens/RVPF-sub009/pkg/memtrack"
	"github.com/xapiens/RVPF-sub009/pkg/messaging"
	"github.com/xapiens/RVPF-sub009/pkg/store"
	"github.com/xapiens/RVPF-sub009/pkg/temporal"
)

func main() {
	var flagConfigFile, flagEnvFile, flagDB, flagNatsURL, flagSubject, flagMetricsAddr, flagGopsAddr string
	var flagClockInterval time.Duration
	flag.StringVar(&flagConfigFile, "config", "./config.json", "Keyed-group configuration file")
	flag.StringVar(&flagEnvFile, "env", "./.env", "Optional .env overlay loaded before -config")
	flag.StringVar(&flagDB, "db", "./var/relvald.db", "sqlite database file for the value store")
	flag.StringVar(&flagNatsURL, "nats", nats.DefaultURL, "NATS server URL for the messaging collaborator")
	flag.StringVar(&flagSubject, "subject", "relvald.values", "NATS subject carrying raw PointValues")
	flag.StringVar(&flagMetricsAddr, "metrics-addr", ":9090", "Prometheus /metrics listen address")
	flag.StringVar(&flagGopsAddr, "gops-addr", "", "Address for the gops diagnostics agent (empty disables it)")
	flag.DurationVar(&flagClockInterval, "clock-interval", time.Minute, "Period between NoticeClock ticks")
	flag.Parse()

	if flagGopsAddr != "" {
		if err := agent.Listen(agent.Options{Addr: flagGopsAddr}); err != nil {
			log.Errorf("relvald: gops agent did not start: %s", err.Error())
		} else {
			defer agent.Close()
		}
	}

	cfg, err := config.Load(flagConfigFile, flagEnvFile)
	if err != nil {
		log.Fatal(err)
	}

	zone := time.Local

	graph, filters, err := buildGraph(cfg, zone)
	if err != nil {
		log.Fatal(err)
	}

	st, err := store.Open(flagDB)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	conn, err := nats.Connect(flagNatsURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	sender := messaging.NewSender(conn, flagSubject)
	receiver, err := messaging.NewReceiver(conn, flagSubject, "")
	if err != nil {
		log.Fatal(err)
	}
	defer receiver.Unsubscribe()

	// runCtx is never cancelled here: the engine's own shutdown channel
	// (closed below, on signal) drives its graceful exit, and the final
	// commit after that signal still needs a live context for the store
	// and messaging calls it makes. lifecycleCtx instead bounds the
	// auxiliary goroutines (metrics server, memory tracker, notice pump)
	// that have no batch to finish.
	runCtx := context.Background()
	lifecycleCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.StartServer(lifecycleCtx, flagMetricsAddr)

	var memWg sync.WaitGroup
	memWg.Add(1)
	tracker := memtrack.NewTracker(time.Hour, memtrack.LogSink)
	go tracker.Run(lifecycleCtx, &memWg)

	source := newFanInSource(256)
	go source.pumpMessaging(lifecycleCtx.Done(), messaging.NewNoticeSource(receiver), 500)

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal(err)
	}
	if _, err := scheduler.NewJob(
		gocron.DurationJob(flagClockInterval),
		gocron.NewTask(func() {
			source.Push(batch.Notice{Kind: batch.NoticeClock, Stamp: temporal.FromTime(time.Now())})
		}),
	); err != nil {
		log.Fatal(err)
	}
	scheduler.Start()
	defer scheduler.Shutdown()

	engine := batch.NewEngine(batch.Config{
		Graph:     graph,
		Store:     st,
		Messaging: sender,
		Source:    source,
		Filters:   filters,
		Zone:      zone,
		Metrics:   metrics.Prometheus{},
	})

	engine.Recover(runCtx, temporal.FromTime(time.Now()))

	var wg sync.WaitGroup
	shutdown := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := engine.Run(runCtx, shutdown); err != nil {
			log.Errorf("relvald: engine stopped: %s", err.Error())
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-lifecycleCtx.Done()
		close(shutdown)
	}()

	if os.Getenv("GOGC") == "" {
		debug.SetGCPercent(25)
	}
	log.Info("relvald: running")
	wg.Wait()
	memWg.Wait()
	log.Info("relvald: graceful shutdown completed")
}
