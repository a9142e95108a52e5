package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/patrickprogramme/edxdl/internal/app"
	"github.com/patrickprogramme/edxdl/internal/assets"
	"github.com/patrickprogramme/edxdl/internal/bootstrap"
	"github.com/patrickprogramme/edxdl/internal/config"
	"github.com/patrickprogramme/edxdl/internal/courseware"
	"github.com/patrickprogramme/edxdl/internal/session"
	"github.com/patrickprogramme/edxdl/internal/ui"
)

const (
	exitOK           = 0
	exitError        = 1
	exitAuth         = 2
	exitInvalidInput = 3
)

func main() {
	// root context qui s'annule sur SIGINT / SIGTERM, installé avant tout le reste
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("edx-dl", flag.ContinueOnError)
	flags, err := parseFlags(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitError
	}

	// déterminer binDir : la config vit à côté de l'exécutable
	binDir := "."
	if exePath, err := os.Executable(); err != nil {
		log.Printf("impossible de déterminer le chemin de l'executable: %v", err)
	} else {
		binDir = filepath.Dir(exePath)
	}
	flags.ConfigPath = bootstrap.ConfigPath(binDir, flags.ConfigPath)

	// s'assurer que le fichier config existe, si non on le crée
	created, err := bootstrap.EnsureConfigPresent(flags.ConfigPath, assets.Embedded, assets.DefaultConfigAsset)
	if err != nil {
		log.Printf("[warning] EnsureConfigPresent: %v", err)
	} else if created {
		fmt.Printf("[info] created default config at %s\n", flags.ConfigPath)
	}

	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		log.Printf("[error] config load: %v", err)
		return exitError
	}
	if err := cfg.ApplyEnv(); err != nil {
		log.Printf("[error] %v", err)
		return exitError
	}
	if err := cfg.Validate(); err != nil {
		log.Printf("[error] %v", err)
		return exitError
	}
	// chemin configuré dans le fichier : le signaler tôt s'il est faux
	if flags.YtDlpPath == "" && cfg.Downloader.ResolvedPath != "" {
		warnings, err := cfg.ValidateDownloaderPresence()
		if err != nil {
			log.Printf("[error] %v", err)
			return exitError
		}
		for _, w := range warnings {
			log.Printf("[warning] %s", w)
		}
	}

	// interruption pendant le démarrage
	if err := ctx.Err(); err != nil {
		return report(exitStatus(err))
	}

	tui := ui.NewTerminal()
	a := app.New(cfg, tui, flags)
	return report(exitStatus(a.Run(ctx)))
}

// report affiche msg (stdout si succès, stderr sinon) et retourne code.
func report(code int, msg string) int {
	if msg != "" {
		if code == exitOK {
			fmt.Println(msg)
		} else {
			fmt.Fprintln(os.Stderr, msg)
		}
	}
	return code
}

// exitStatus associe une erreur de Run au code de sortie et au message affiché.
func exitStatus(err error) (int, string) {
	if err == nil {
		return exitOK, ""
	}

	var authErr *session.AuthError
	var selErr *courseware.InvalidSelectionError
	switch {
	case errors.Is(err, context.Canceled):
		return exitOK, "\n\nCTRL-C detected, shutting down...."
	case errors.Is(err, app.ErrMissingCredentials):
		return exitAuth, "You must supply username AND password to log-in"
	case errors.As(err, &authErr):
		return exitAuth, authErr.Reason
	case errors.As(err, &selErr):
		return exitInvalidInput, "[error] " + selErr.Error()
	default:
		return exitError, "[error] " + err.Error()
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (*app.CLIFlags, error) {
	f := &app.CLIFlags{}
	fs.StringVar(&f.ConfigPath, "config", bootstrap.DefaultConfigName, "path to config file")

	fs.StringVar(&f.Username, "u", "", "edX username (email)")
	fs.StringVar(&f.Username, "username", "", "edX username (email)")
	fs.StringVar(&f.Password, "p", "", "edX password")
	fs.StringVar(&f.Password, "password", "", "edX password")
	fs.StringVar(&f.Format, "f", "", "max quality/format code passed to the downloader, e.g. 22/17")
	fs.StringVar(&f.Format, "format", "", "max quality/format code passed to the downloader, e.g. 22/17")
	fs.BoolVar(&f.Subtitles, "s", false, "download subtitles too")
	fs.BoolVar(&f.Subtitles, "with-subtitles", false, "download subtitles too")
	fs.StringVar(&f.OutputDir, "o", "", "output directory")
	fs.StringVar(&f.OutputDir, "output-dir", "", "output directory")

	fs.StringVar(&f.CourseURL, "course-url", "", "course URL, e.g. https://courses.edx.org/courses/<org>/<course>/<run>/info")
	fs.StringVar(&f.Weeks, "weeks", "", `week number to download, or "all" (menu when empty)`)
	fs.StringVar(&f.YtDlpPath, "yt-dlp-path", "", "chemin vers l'exécutable du downloader (ou son dossier)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(fs.Output(), "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	// aucun argument : version interactive
	f.Interactive = len(args) == 0
	return f, nil
}
