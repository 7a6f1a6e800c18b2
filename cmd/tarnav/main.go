// Command tarnav inspects USTAR tar archives: it validates headers,
// locates entries, lists directories, extracts file content and serves
// all of it over HTTP. Zstandard-compressed archives (.tar.zst) are
// accepted everywhere a plain archive is.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aurora-is-near/tarnav/src/deliver"
	"github.com/aurora-is-near/tarnav/src/source"
	"github.com/aurora-is-near/tarnav/src/tarnav"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%s: %s\n", path.Base(os.Args[0]), err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tarnav",
		Short:         "Navigate USTAR tar archives",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(
		newCheckCmd(),
		newFindCmd(),
		newLsCmd(),
		newCatCmd(),
		newServeCmd(),
	)
	return cmd
}

// withArchive opens filename through the source package and hands its
// byte stream to fn.
func withArchive(filename string, fn func(io.ReadSeeker) error) error {
	h, err := source.Open(filename)
	if err != nil {
		return err
	}
	defer func() { _ = h.Close() }()
	return fn(h.Source())
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <archive>",
		Short: "Validate every header and print the header count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withArchive(args[0], func(r io.ReadSeeker) error {
				count, err := tarnav.Check(r)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d headers\n", count)
				return nil
			})
		},
	}
}

func kindName(h *tarnav.Header) string {
	switch {
	case h.IsFile():
		return "file"
	case h.IsDir():
		return "directory"
	case h.IsSymlink():
		return "symlink"
	case h.IsHardlink():
		return "hardlink"
	}
	return fmt.Sprintf("type %q", h.Typeflag)
}

func newFindCmd() *cobra.Command {
	var follow bool
	cmd := &cobra.Command{
		Use:   "find <archive> <path>",
		Short: "Locate an entry and print its kind, size and offsets",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withArchive(args[0], func(r io.ReadSeeker) error {
				locate := tarnav.Find
				if follow {
					locate = tarnav.Resolve
				}
				entry, err := locate(r, args[1])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d bytes\theader@%d data@%d\n",
					entry.Header.Name, kindName(&entry.Header),
					entry.Header.Size, entry.HeaderOffset, entry.DataOffset)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&follow, "follow", "L", false, "resolve symlink chains before printing")
	return cmd
}

func newLsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "ls <archive> <path>",
		Short: "List the direct children of a directory, in archive order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withArchive(args[0], func(r io.ReadSeeker) error {
				children, err := tarnav.List(r, args[1], limit)
				if err != nil {
					return err
				}
				for _, child := range children {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), child)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "fail when a directory has more children (0: unlimited)")
	return cmd
}

func newCatCmd() *cobra.Command {
	var offset int64
	cmd := &cobra.Command{
		Use:   "cat <archive> <path>",
		Short: "Write file content to stdout, optionally from an offset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withArchive(args[0], func(r io.ReadSeeker) error {
				buf := make([]byte, 32*1024)
				out := cmd.OutOrStdout()
				for {
					n, remaining, err := tarnav.ReadFile(r, args[1], offset, buf)
					if err != nil {
						return err
					}
					if _, err := out.Write(buf[:n]); err != nil {
						return err
					}
					offset += int64(n)
					if remaining == 0 {
						return nil
					}
				}
			})
		},
	}
	cmd.Flags().Int64Var(&offset, "offset", 0, "first byte of the file to write")
	return cmd
}

func newServeCmd() *cobra.Command {
	var configFile string
	flagCfg := deliver.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve archive navigation over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := deliver.DefaultConfig()
			if configFile != "" {
				var err error
				if cfg, err = deliver.LoadConfig(configFile); err != nil {
					return err
				}
			}
			// Flags given on the command line win over the config file.
			cmd.Flags().Visit(func(f *pflag.Flag) {
				switch f.Name {
				case "listen":
					cfg.Listen = flagCfg.Listen
				case "dir":
					cfg.Dir = flagCfg.Dir
				case "prefix":
					cfg.Prefix = flagCfg.Prefix
				case "maxlist":
					cfg.MaxList = flagCfg.MaxList
				}
			})
			log := logrus.StandardLogger()
			log.WithFields(logrus.Fields{
				"listen": cfg.Listen,
				"dir":    cfg.Dir,
				"prefix": cfg.Prefix,
			}).Info("starting")
			errc := make(chan error, 1)
			go func() { errc <- deliver.Serve(cfg) }()
			sigc := make(chan os.Signal, 1)
			signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
			select {
			case err := <-errc:
				return err
			case sig := <-sigc:
				log.WithField("signal", sig.String()).Info("stop")
				return nil
			}
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "", "YAML configuration file")
	cmd.Flags().StringVar(&flagCfg.Listen, "listen", flagCfg.Listen, "IP:Port to listen on")
	cmd.Flags().StringVar(&flagCfg.Dir, "dir", flagCfg.Dir, "directory containing the archives")
	cmd.Flags().StringVar(&flagCfg.Prefix, "prefix", flagCfg.Prefix, "request path prefix")
	cmd.Flags().IntVar(&flagCfg.MaxList, "maxlist", flagCfg.MaxList, "listing capacity (0: unlimited)")
	return cmd
}
