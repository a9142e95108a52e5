package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/patrickprogramme/edxdl/internal/config"
	"github.com/patrickprogramme/edxdl/internal/courseware"
	"github.com/patrickprogramme/edxdl/internal/extract"
	"github.com/patrickprogramme/edxdl/internal/fsutil"
	"github.com/patrickprogramme/edxdl/internal/session"
	"github.com/patrickprogramme/edxdl/internal/ui"
	"github.com/patrickprogramme/edxdl/internal/yt"
	"github.com/patrickprogramme/edxdl/pkg/model"
)

const (
	defaultUpdateTimeout = 15 * time.Second
	dirPerm              = 0o755
)

var (
	ErrMissingCredentials = errors.New("username and password are required")
)

// CLIFlags contient les information venant des flags de l'app
type CLIFlags struct {
	ConfigPath  string
	Username    string
	Password    string
	Format      string
	Subtitles   bool
	OutputDir   string
	CourseURL   string
	Weeks       string // "", "all" ou un numéro 1-based
	YtDlpPath   string
	Interactive bool // aucun argument sur la ligne de commande
}

// App orchestre les différentes dépendances (UI, downloader, session...)
type App struct {
	cfg      *config.Config
	ui       ui.Interface
	flags    *CLIFlags
	ytClient yt.Interface // initialisé dans Run si nil

	// repérage des vidéos dans une page de semaine
	extractor extract.Extractor

	// transport HTTP vers la plateforme ; nil => transport par défaut
	transport http.RoundTripper
	version   string
}

// New construit l'application en initialisant les dépendances par défaut.
// Pour les tests, on préférera construire App en injectant des implémentations mock.
func New(cfg *config.Config, uiClient ui.Interface, flags *CLIFlags) *App {
	if flags == nil {
		flags = &CLIFlags{}
	}
	return &App{
		cfg:       cfg,
		ui:        uiClient,
		flags:     flags,
		extractor: extract.Regexp{},
	}
}

// Run exécute le flux principal : connexion, choix du cours et des semaines,
// repérage des vidéos puis téléchargement séquentiel.
func (a *App) Run(ctx context.Context) error {
	a.applyFlags()

	username, password, err := a.credentials(ctx)
	if err != nil {
		return err
	}

	// Init downloader (CheckBinary + version) avant de solliciter la plateforme
	if a.ytClient == nil {
		dl, version, err := yt.InitYtDlp(ctx, a.cfg)
		if err != nil {
			return fmt.Errorf("yt init: %w", err)
		}
		a.ytClient = dl
		a.version = version
	}
	if a.cfg.Downloader.AutoUpdateCheck && a.version != "" {
		if err := a.DownloaderUpdateCheck(ctx, defaultUpdateTimeout, a.version); err != nil {
			a.ui.PrintError(ctx, "[warning] "+err.Error())
		}
	}

	sess, err := a.login(ctx, username, password)
	if err != nil {
		return err
	}
	fetcher := sess.Fetcher()

	course, err := a.selectCourse(ctx, sess)
	if err != nil {
		return err
	}

	links, err := a.selectPages(ctx, sess, course)
	if err != nil {
		return err
	}

	videos, err := a.discoverVideos(ctx, sess, links)
	if err != nil {
		return err
	}
	if len(videos) == 0 {
		a.ui.PrintInfo(ctx, "WARNING: No downloadable video found.")
		return nil
	}

	if a.flags.Interactive {
		if err := a.promptDownloadOptions(ctx, videos[len(videos)-1]); err != nil {
			return err
		}
	}

	a.ui.PrintInfo(ctx, "[info] Output directory: "+a.cfg.OutputDir)
	targetDir := filepath.Join(a.cfg.OutputDir, fsutil.DirectoryName(course.Name))
	if err := os.MkdirAll(targetDir, dirPerm); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}

	for _, ref := range videos {
		if err := a.downloadVideo(ctx, fetcher, ref, targetDir); err != nil {
			return err
		}
	}
	return nil
}

// applyFlags applique les flags par-dessus la config (fichier + env).
func (a *App) applyFlags() {
	f := a.flags
	if f.OutputDir != "" {
		a.cfg.OutputDir = filepath.Clean(f.OutputDir)
	}
	if f.Format != "" {
		a.cfg.Format = f.Format
	}
	if f.Subtitles {
		a.cfg.Subtitles = true
	}
	if f.Username != "" {
		a.cfg.Username = f.Username
	}
	if f.Password != "" {
		a.cfg.Password = f.Password
	}
	if f.YtDlpPath != "" {
		a.cfg.Downloader.Path = f.YtDlpPath
		a.cfg.ResolveDownloaderPath()
	}
}

// credentials : en mode interactif on demande ce qui manque.
func (a *App) credentials(ctx context.Context) (string, string, error) {
	username, password := a.cfg.Username, a.cfg.Password
	if a.flags.Interactive && (username == "" || password == "") {
		u, p, err := a.ui.PromptCredentials(ctx)
		if err != nil {
			return "", "", err
		}
		username, password = u, p
	}
	if username == "" || password == "" {
		return "", "", ErrMissingCredentials
	}
	return username, password, nil
}

func (a *App) login(ctx context.Context, username, password string) (*session.Session, error) {
	base := a.cfg.BaseURL
	if a.flags.CourseURL != "" {
		info, err := session.WebsiteInfoFromCourseURL(a.flags.CourseURL)
		if err != nil {
			return nil, &courseware.InvalidSelectionError{Choice: a.flags.CourseURL, Reason: err.Error()}
		}
		base = info.BaseURL
	}

	sess, err := session.New(ctx, base, session.Options{
		UserAgent: a.cfg.UserAgent,
		Transport: a.transport,
	})
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if err := sess.Login(ctx, username, password); err != nil {
		return nil, err
	}
	return sess, nil
}

func (a *App) selectCourse(ctx context.Context, sess *session.Session) (model.Course, error) {
	dashboard, err := sess.Fetcher().Page(ctx, sess.Info.DashboardURL)
	if err != nil {
		return model.Course{}, fmt.Errorf("dashboard: %w", err)
	}
	courses, err := courseware.ParseCourses(dashboard, sess.Info.BaseURL)
	if err != nil {
		return model.Course{}, fmt.Errorf("dashboard: %w", err)
	}

	if a.flags.CourseURL != "" {
		return courseware.SelectByURL(courses, a.flags.CourseURL)
	}
	return a.ui.ChooseCourse(ctx, courses)
}

func (a *App) selectPages(ctx context.Context, sess *session.Session, course model.Course) ([]string, error) {
	page, err := sess.Fetcher().Page(ctx, courseware.CoursewareURL(course))
	if err != nil {
		return nil, fmt.Errorf("courseware: %w", err)
	}
	weeks, err := courseware.ParseWeeks(page, sess.Info.BaseURL)
	if err != nil {
		return nil, err
	}
	return a.chooseWeeks(ctx, course, weeks)
}

func (a *App) discoverVideos(ctx context.Context, sess *session.Session, links []string) ([]model.VideoRef, error) {
	fetcher := sess.Fetcher()
	perPage := make([][]model.VideoRef, 0, len(links))
	for _, link := range links {
		a.ui.PrintInfo(ctx, fmt.Sprintf("Processing '%s'...", link))
		page, err := fetcher.Page(ctx, link)
		if err != nil {
			return nil, fmt.Errorf("week page: %w", err)
		}
		perPage = append(perPage, a.extractor.Extract(page, sess.Info.BaseURL))
	}
	return extract.Collect(perPage...), nil
}
