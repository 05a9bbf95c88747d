package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"

	"PaintBoard/internal/config"
	"PaintBoard/internal/logging"
	boardnet "PaintBoard/internal/net"
	"PaintBoard/internal/state"
	"PaintBoard/internal/ui"
)

const AppID = "io.paintboard.app"

func main() {
	var (
		cfgPath = flag.String("config", "", "config file (default: user config dir)")
		host    = flag.Bool("host", false, "share this board with peers on the network")
		join    = flag.String("join", "", "join a shared board: paintboard://ip:port, ip:port, or \"auto\" to browse")
	)
	flag.Parse()

	// Launched through the URL scheme handler: the link is the only argument.
	if *join == "" && flag.NArg() > 0 && strings.HasPrefix(flag.Arg(0), config.URLScheme) {
		*join = flag.Arg(0)
	}

	if *cfgPath == "" {
		if p, err := config.DefaultPath(); err == nil {
			*cfgPath = p
		}
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	level, _ := logging.ParseLevel(cfg.LogLevel)
	log := logging.NewConsole(level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	board := ui.New(app.NewWithID(AppID), cfg, state.NewClock(), log)

	switch {
	case *host:
		runHost(ctx, cfg, board, logging.Component(log, "host"))
	case *join != "":
		go runClient(ctx, *join, board, logging.Component(log, "client"))
	default:
		log.Info().Msg("starting solo board")
	}

	board.ShowAndRun()
}

func runHost(ctx context.Context, cfg *config.Config, board *ui.App, log zerolog.Logger) {
	log.Info().Int("port", cfg.Share.Port).Msg("starting as host")

	hub := boardnet.NewHub(log)
	hub.OnOp = board.ApplyRemote
	hub.Snapshot = board.Snapshot
	board.Painter.OnOp = hub.Broadcast

	go func() {
		if err := hub.ListenAndServe(ctx, fmt.Sprintf(":%d", cfg.Share.Port)); err != nil {
			log.Error().Err(err).Msg("hub stopped")
			board.SetStatus("Sharing failed: " + err.Error())
		}
	}()

	if cfg.Share.Advertise {
		server, err := boardnet.Advertise(cfg.Share.Port)
		if err != nil {
			log.Warn().Err(err).Msg("mdns advertise failed")
		} else {
			context.AfterFunc(ctx, func() { _ = server.Shutdown() })
		}
	}

	ip, err := boardnet.GetOutgoingIP()
	if err != nil {
		log.Warn().Err(err).Msg("no LAN address, share link uses loopback")
	}
	// Still on the main goroutine before the window runs.
	board.Actions.Status("Share link: " + cfg.ShareLink(ip))
}

func runClient(ctx context.Context, link string, board *ui.App, log zerolog.Logger) {
	log.Info().Str("link", link).Msg("starting as client")

	addr := boardnet.HostAddr(link, config.URLScheme)
	if addr == "auto" {
		board.SetStatus("Looking for a board on the network...")
		found, err := boardnet.Browse(ctx, 5*time.Second)
		if err != nil {
			log.Warn().Err(err).Msg("browse failed")
			board.SetStatus("No board found: " + err.Error())
			return
		}
		addr = found
	}

	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := boardnet.Dial(dialCtx, addr)
	if err != nil {
		log.Error().Err(err).Msg("connect failed")
		board.SetStatus(fmt.Sprintf("Connection failed: %v", err))
		return
	}
	defer client.Close()

	board.OnLocalOp(func(op state.Op) {
		if err := client.Send(op); err != nil {
			log.Warn().Err(err).Msg("send failed")
		}
	})
	defer board.OnLocalOp(nil)
	board.SetStatus("Connected to host as " + client.LocalAddr())
	log.Info().Str("local", client.LocalAddr()).Msg("connected")

	if err := client.Listen(ctx, board.ApplyRemote); err != nil {
		log.Warn().Err(err).Msg("disconnected")
		board.SetStatus(fmt.Sprintf("Disconnected from host: %v", err))
		return
	}
	board.SetStatus("Host closed the board")
}
