// Fathom CLI - starts the fathom language server over stdio.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"

	"github.com/chazu/fathom/analysis"
	"github.com/chazu/fathom/config"
	"github.com/chazu/fathom/host"
	"github.com/chazu/fathom/index"
	"github.com/chazu/fathom/luaplugin"
	"github.com/chazu/fathom/server"
	"github.com/chazu/fathom/service"
)

func main() {
	root := flag.String("root", ".", "Workspace root directory")
	indexPath := flag.String("index", "", "Workspace symbol index database (default: in-memory)")
	snapshotPath := flag.String("index-snapshot", "", "Restore the symbol index from a CBOR snapshot before serving")
	verbosity := flag.Int("v", 1, "Log verbosity (0 = quiet)")
	logFile := flag.String("log", "", "Log file (default: stderr)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fathom [options]\n\n")
		fmt.Fprintf(os.Stderr, "Starts a language server on stdio for the workspace at -root.\n")
		fmt.Fprintf(os.Stderr, "Configuration is read from fathom.toml in the root or a parent directory.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *logFile != "" {
		commonlog.Configure(*verbosity, logFile)
	} else {
		commonlog.Configure(*verbosity, nil)
	}
	log := commonlog.GetLogger("fathom")

	cfgFile, err := config.FindAndLoad(*root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if cfgFile == nil {
		cfgFile = &config.File{Dir: *root}
	}

	cfg, err := cfgFile.ServiceConfig(luaplugin.Entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading plugins: %v\n", err)
		os.Exit(1)
	}

	// Symbol index, either persistent or ephemeral.
	dbPath := *indexPath
	if dbPath == "" {
		dbPath = ":memory:"
	}
	store, err := index.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening symbol index: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if *snapshotPath != "" {
		f, err := os.Open(*snapshotPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening index snapshot: %v\n", err)
			os.Exit(1)
		}
		err = store.ReadSnapshot(f)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error restoring index snapshot: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Plugins = append(cfg.Plugins, service.PluginEntry{
		ID:       "workspace-index",
		Instance: store.AsPlugin(),
	})

	// Editor buffers shadow the on-disk workspace.
	overlay := host.NewMemoryHost()
	workspace := host.NewDirHost(*root)
	h := &analyzerHost{
		Host: host.NewOverlay(overlay, workspace),
		module: analysis.Symbolic(func() []string {
			seen := make(map[string]bool)
			var names []string
			add := func(more []string) {
				for _, name := range more {
					if !seen[name] {
						seen[name] = true
						names = append(names, name)
					}
				}
			}
			add(overlay.FileNames())
			if onDisk, err := workspace.FileNames(); err == nil {
				add(onDisk)
			}
			return names
		}),
	}

	ls := service.New(h, cfg)
	defer ls.Dispose()

	log.Infof("serving workspace %s", *root)
	if err := server.New(ls, overlay).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// analyzerHost advertises the symbolic analyzer module on top of the
// workspace host.
type analyzerHost struct {
	host.Host
	module analysis.Module
}

func (h *analyzerHost) AnalyzerModule() analysis.Module {
	return h.module
}
