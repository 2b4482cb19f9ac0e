package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mdekauwe/lunchbox-photosynthesis/config"
	"github.com/mdekauwe/lunchbox-photosynthesis/internal/csvlog"
	"github.com/mdekauwe/lunchbox-photosynthesis/internal/driver"
	"github.com/mdekauwe/lunchbox-photosynthesis/internal/event"
	"github.com/mdekauwe/lunchbox-photosynthesis/internal/flux"
	"github.com/mdekauwe/lunchbox-photosynthesis/internal/plotwin"
	"github.com/mdekauwe/lunchbox-photosynthesis/internal/service/interrupter"
	"github.com/mdekauwe/lunchbox-photosynthesis/internal/service/recorder"
	"github.com/mdekauwe/lunchbox-photosynthesis/internal/service/session"
	"github.com/mdekauwe/lunchbox-photosynthesis/internal/service/web"
	"github.com/mdekauwe/lunchbox-photosynthesis/pkg/app"
	"github.com/mdekauwe/lunchbox-photosynthesis/pkg/ebus"
)

var (
	cfg = config.Build()

	noPot      bool
	replayPath string
	logPath    string
	noLog      bool
	batchFile  string
	batchOut   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lunchbox",
		Short:         "Lunchbox gas-exchange monitor: CO2 drawdown to net assimilation rate",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	pf := rootCmd.PersistentFlags()
	pf.Float64Var(&cfg.Chamber.WidthCM, "width", cfg.Chamber.WidthCM, "enclosure width (cm)")
	pf.Float64Var(&cfg.Chamber.HeightCM, "height", cfg.Chamber.HeightCM, "enclosure height (cm)")
	pf.Float64Var(&cfg.Chamber.LengthCM, "length", cfg.Chamber.LengthCM, "enclosure length (cm)")
	pf.Float64Var(&cfg.Pot.TopWidthCM, "pot-top", cfg.Pot.TopWidthCM, "pot top width (cm)")
	pf.Float64Var(&cfg.Pot.BaseWidthCM, "pot-base", cfg.Pot.BaseWidthCM, "pot base width (cm)")
	pf.Float64Var(&cfg.Pot.HeightCM, "pot-height", cfg.Pot.HeightCM, "pot height (cm)")
	pf.BoolVar(&noPot, "no-pot", false, "no pot inside the enclosure")
	pf.Float64Var(&cfg.TempC, "temp", cfg.TempC, "enclosure temperature (deg C)")
	pf.Float64Var(&cfg.LeafAreaCM2, "leaf-area", cfg.LeafAreaCM2, "leaf area (cm2)")
	pf.BoolVar(&cfg.AreaBasis, "area-basis", false, "report flux per unit leaf area")
	pf.Float64Var(&cfg.SoilResp, "soil-resp", 0, "soil respiration correction flux")

	rootCmd.AddCommand(newLiveCmd(), newBatchCmd())
	return rootCmd
}

func newLiveCmd() *cobra.Command {
	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "Run a live session: acquire, buffer and serve the scrolling window",
		RunE:  runLive,
	}

	f := liveCmd.Flags()
	f.Float64Var(&cfg.WindowMin, "window-min", cfg.WindowMin, "display window span (minutes)")
	f.Float64Var(&cfg.IntervalS, "interval", cfg.IntervalS, "acquisition interval (seconds)")
	f.StringVar(&cfg.Web.Addr, "addr", cfg.Web.Addr, "listen address for the display server")
	f.StringVar(&replayPath, "replay", "", "replay a logged CSV instead of acquiring")
	f.StringVar(&logPath, "log", "", "datalog CSV path (default: auto-named in the log dir)")
	f.BoolVar(&noLog, "no-log", false, "disable the datalog")

	return liveCmd
}

func newBatchCmd() *cobra.Command {
	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Derive the flux series from a logged CSV and render it",
		RunE:  runBatch,
	}

	f := batchCmd.Flags()
	f.StringVar(&batchFile, "file", "", "datalog CSV (default: newest matching file in the log dir)")
	f.StringVar(&cfg.Log.Dir, "dir", cfg.Log.Dir, "directory searched for datalog files")
	f.StringVar(&cfg.Log.Prefix, "prefix", cfg.Log.Prefix, "datalog file name prefix")
	f.StringVar(&batchOut, "out", "anet.png", "output chart path")

	return batchCmd
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg.Pot.Enabled = !noPot

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	conv, err := cfg.Converter()
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	eBus := ebus.New()

	var (
		drv    driver.Driver
		source string
	)
	if replayPath != "" {
		samples, err := csvlog.Read(replayPath)
		if err != nil {
			return err
		}
		drv = driver.NewReplay(samples, conv)
		source = "replay:" + filepath.Base(replayPath)
	} else {
		drv = driver.NewSim(conv)
		source = "sim"
	}

	sess := session.New(drv, eBus, cfg.WindowMin, cfg.Interval())
	webSrv := web.New(cfg.Web.Addr)

	eBus.
		Subscribe(event.TickSkipped{}, ebus.LogAny).
		Subscribe(event.SessionReset{}, ebus.LogAny).
		Subscribe(event.WindowUpdated{}, ebus.Typed(webSrv.UpdateWindow))

	application := app.NewApp().
		WithService(sess).
		WithService(webSrv).
		WithService(interrupter.Interrupter{})

	if !noLog {
		if logPath == "" {
			name := cfg.Log.Prefix + time.Now().Format("20060102-150405") + ".csv"
			logPath = filepath.Join(cfg.Log.Dir, name)
		}
		rec, err := recorder.New(logPath, source)
		if err != nil {
			return err
		}
		eBus.Subscribe(event.SampleMeasured{}, ebus.Typed(rec.HandleSample))
		application = application.WithService(rec)
		log.Printf("logging to %s", logPath)
	}

	log.Printf("live session %s: volume %.3f l, %.0f min window on %s",
		sess.ID(), conv.VolumeLitres, cfg.WindowMin, cfg.Web.Addr)

	return application.Run(context.Background())
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg.Pot.Enabled = !noPot

	conv, err := cfg.Converter()
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	path := batchFile
	if path == "" {
		path, err = csvlog.LatestFile(cfg.Log.Dir, cfg.Log.Prefix)
		if err != nil {
			return err
		}
	}

	samples, err := csvlog.Read(path)
	if err != nil {
		return err
	}

	series := flux.Diff(samples, conv)
	defined := 0
	for _, fs := range series {
		if fs.Defined {
			defined++
		}
	}

	out, err := os.Create(batchOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", batchOut, err)
	}
	defer out.Close()

	if err := plotwin.RenderPNG(out, series, cfg.AreaBasis); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	log.Printf("%s: %d samples, %d with flux -> %s", path, len(series), defined, batchOut)
	return nil
}
