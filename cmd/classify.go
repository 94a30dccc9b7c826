// Package cmd implements CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"firestige.xyz/plipbox/internal/config"
	"firestige.xyz/plipbox/internal/core"
	"firestige.xyz/plipbox/internal/log"
	"firestige.xyz/plipbox/internal/metrics"
	"firestige.xyz/plipbox/internal/pipeline"
	"firestige.xyz/plipbox/internal/sink/console"
	"firestige.xyz/plipbox/internal/source"
	"firestige.xyz/plipbox/internal/source/afpacket"
	"firestige.xyz/plipbox/internal/source/file"
)

// classifyOptions holds flag overrides applied on top of the loaded config.
type classifyOptions struct {
	readFile     string
	iface        string
	mac          string
	noFilter     bool
	dump         bool
	kernelFilter bool
	format       string
}

var classifyOpts classifyOptions

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify frames from a capture file or a live interface",
	Long: `Read Ethernet frames, classify each one for the node address and print
one line per delivered frame:

  [<payload size>:0x<ethertype>,<src>-><dst>] <class>

A summary of all counters is printed when the source is exhausted or the
command is interrupted.

Examples:
  plipbox classify -r trace.pcapng
  plipbox classify -r trace.pcap --mac 02:00:00:00:00:01 --no-filter
  plipbox classify -i eth0 --kernel-filter --dump --format json`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := runClassify(ctx, cmd.OutOrStdout(), configFile, classifyOpts); err != nil {
			exitWithError("classify failed", err)
		}
	},
}

func init() {
	classifyCmd.Flags().StringVarP(&classifyOpts.readFile, "read", "r", "",
		"pcap or pcapng file to read")
	classifyCmd.Flags().StringVarP(&classifyOpts.iface, "interface", "i", "",
		"interface to capture from (linux only)")
	classifyCmd.Flags().StringVar(&classifyOpts.mac, "mac", "",
		"node hardware address, overrides node.mac_addr")
	classifyCmd.Flags().BoolVar(&classifyOpts.noFilter, "no-filter", false,
		"print not-for-me frames too")
	classifyCmd.Flags().BoolVar(&classifyOpts.dump, "dump", false,
		"log every decoded frame")
	classifyCmd.Flags().BoolVar(&classifyOpts.kernelFilter, "kernel-filter", false,
		"attach a BPF filter to the live socket")
	classifyCmd.Flags().StringVar(&classifyOpts.format, "format", console.FormatText,
		"output format: text or json")
	classifyCmd.MarkFlagsMutuallyExclusive("read", "interface")
}

func runClassify(ctx context.Context, out io.Writer, path string, opts classifyOptions) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := opts.apply(cfg); err != nil {
		return err
	}
	if err := cfg.Capture.ValidateSource(); err != nil {
		return err
	}

	sink, err := console.New(out, opts.format)
	if err != nil {
		return err
	}
	defer sink.Close()

	if err := log.Init(cfg.Log); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	src, err := openSource(cfg)
	if err != nil {
		return err
	}
	defer src.Close()

	if cfg.Metrics.Enabled {
		srv := metrics.NewServer(cfg.Metrics.Listen, cfg.Metrics.Path)
		if err := srv.Start(ctx); err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Stop(shutdownCtx); err != nil {
				slog.Error("error stopping metrics server", "error", err)
			}
		}()
	}

	p := pipeline.NewBuilder().
		FromConfig(cfg).
		WithSource(src).
		WithHandler(sink.Handle).
		Build()

	runErr := p.Run(ctx)
	printSummary(out, p.Stats())
	return runErr
}

// apply overlays command-line flags onto cfg.
func (o classifyOptions) apply(cfg *config.GlobalConfig) error {
	if o.readFile != "" && o.iface != "" {
		return errors.New("--read and --interface are mutually exclusive")
	}
	if o.readFile != "" {
		cfg.Capture.Type = config.CaptureTypeFile
		cfg.Capture.Path = o.readFile
	}
	if o.iface != "" {
		cfg.Capture.Type = config.CaptureTypeAFPacket
		cfg.Capture.Interface = o.iface
	}
	if o.mac != "" {
		addr, err := core.ParseHardwareAddress(o.mac)
		if err != nil {
			return err
		}
		cfg.Node.MACAddr = addr
	}
	if o.noFilter {
		cfg.Filter.Eth = false
	}
	if o.dump {
		cfg.Dump.Eth = true
	}
	if o.kernelFilter {
		cfg.Capture.KernelFilter = true
	}
	// The kernel filter drops not-for-me frames before they reach the pipeline.
	if cfg.Capture.Type == config.CaptureTypeAFPacket && cfg.Capture.KernelFilter && !cfg.Filter.Eth {
		return fmt.Errorf("%w: kernel filter cannot be combined with filter.eth=false (--no-filter)", core.ErrConfigInvalid)
	}
	return nil
}

func openSource(cfg *config.GlobalConfig) (source.Source, error) {
	switch cfg.Capture.Type {
	case config.CaptureTypeFile:
		return file.Open(cfg.Capture.Path)
	case config.CaptureTypeAFPacket:
		acfg := afpacket.Config{
			Interface:    cfg.Capture.Interface,
			SnapLen:      cfg.Capture.SnapLen,
			BufferSizeMB: cfg.Capture.BufferSizeMB,
			Timeout:      cfg.Capture.Timeout,
		}
		if cfg.Capture.KernelFilter {
			filter, err := afpacket.KernelFilter(cfg.Node.MACAddr, cfg.Capture.SnapLen)
			if err != nil {
				return nil, err
			}
			acfg.Filter = filter
		}
		return afpacket.Open(acfg)
	default:
		return nil, fmt.Errorf("%w: unsupported capture.type: %s", core.ErrConfigInvalid, cfg.Capture.Type)
	}
}

func printSummary(out io.Writer, s pipeline.Stats) {
	fmt.Fprintf(out, "\n%-14s %d\n", "received", s.Received)
	fmt.Fprintf(out, "%-14s %d\n", "truncated", s.Truncated)
	fmt.Fprintf(out, "%-14s %d\n", "magic-online", s.MagicOnline)
	fmt.Fprintf(out, "%-14s %d\n", "magic-offline", s.MagicOffline)
	fmt.Fprintf(out, "%-14s %d\n", "for-me", s.ForMe)
	fmt.Fprintf(out, "%-14s %d\n", "not-for-me", s.NotForMe)
	fmt.Fprintf(out, "%-14s %d\n", "filtered", s.Filtered)
	fmt.Fprintf(out, "%-14s %d\n", "delivered", s.Delivered)
	if s.HandlerErrors > 0 {
		fmt.Fprintf(out, "%-14s %d\n", "output errors", s.HandlerErrors)
	}
}
