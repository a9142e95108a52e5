package app

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/patrickprogramme/edxdl/internal/courseware"
	"github.com/patrickprogramme/edxdl/internal/subtitles"
	"github.com/patrickprogramme/edxdl/internal/updater"
	"github.com/patrickprogramme/edxdl/internal/yt"
	"github.com/patrickprogramme/edxdl/pkg/model"
)

// chooseWeeks : -weeks all|N, sinon menu.
func (a *App) chooseWeeks(ctx context.Context, course model.Course, weeks []model.Week) ([]string, error) {
	choice := strings.TrimSpace(strings.ToLower(a.flags.Weeks))
	switch choice {
	case "":
		return a.ui.ChooseWeeks(ctx, course, weeks)
	case "all":
		return courseware.AllPages(weeks), nil
	}
	n, err := strconv.Atoi(choice)
	if err != nil {
		return nil, &courseware.InvalidSelectionError{Choice: a.flags.Weeks, Reason: "numéro de semaine ou \"all\" attendu"}
	}
	return courseware.SelectWeeks(weeks, n)
}

// promptDownloadOptions liste les formats de la dernière vidéo puis demande
// format et sous-titres.
func (a *App) promptDownloadOptions(ctx context.Context, last model.VideoRef) error {
	if err := a.ytClient.ListFormats(ctx, last.WatchURL()); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		a.ui.PrintError(ctx, fmt.Sprintf("[warning] listing formats: %v", err))
	}
	format, err := a.ui.PromptFormat(ctx)
	if err != nil {
		return err
	}
	a.cfg.Format = format

	subs, err := a.ui.PromptSubtitles(ctx)
	if err != nil {
		return err
	}
	a.cfg.Subtitles = subs
	return nil
}

// downloadVideo lance le downloader puis, si demandé, écrit le .srt de la plateforme.
// Seule l'annulation est remontée : les autres échecs sont des avertissements.
func (a *App) downloadVideo(ctx context.Context, g subtitles.Getter, ref model.VideoRef, targetDir string) error {
	req := yt.Request{
		URL:            ref.WatchURL(),
		OutputTemplate: yt.OutputTemplate(targetDir, ref.Prefix()),
		Format:         a.cfg.Format,
		WriteSubs:      a.cfg.Subtitles,
	}
	if err := a.ytClient.Download(ctx, req); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		a.ui.PrintError(ctx, fmt.Sprintf("[warning] %s: %v", ref, err))
	}

	if !a.cfg.Subtitles || !ref.HasSubtitles() {
		return nil
	}
	path, written, err := subtitles.WriteForVideo(ctx, g, ref, targetDir)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !errors.Is(err, subtitles.ErrNoSubtitle) {
			a.ui.PrintError(ctx, fmt.Sprintf("[warning] edX subtitles (error:%v)", err))
		}
		return nil
	}
	if written {
		a.ui.PrintInfo(ctx, "[info] Writing edX subtitles: "+path)
	}
	return nil
}

// DownloaderUpdateCheck compare la version du downloader à la dernière release publiée.
func (a *App) DownloaderUpdateCheck(ctx context.Context, timeout time.Duration, version string) error {
	uc, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	checker := updater.NewChecker(nil)
	check, err := checker.Check(uc, a.cfg.Downloader.ReleaseRepo, a.cfg.Downloader.Name, version)
	if err != nil {
		return fmt.Errorf("vérification de mise à jour a échoué : %v", err)
	}

	if check.IsUpToDate {
		a.ui.PrintInfo(ctx, fmt.Sprintf("[info] %s est à jour (%s)", a.cfg.Downloader.Name, check.CurrentVersion))
		return nil
	}

	a.ui.PrintInfo(ctx, fmt.Sprintf("[info] Nouvelle version de %s disponible :", a.cfg.Downloader.Name))
	a.ui.PrintInfo(ctx, fmt.Sprintf("  Installée : %s", check.CurrentVersion))
	a.ui.PrintInfo(ctx, fmt.Sprintf("  Dernière  : %s", check.LatestRelease.TagName))
	a.ui.PrintInfo(ctx, "Téléchargez-la ici:")
	a.ui.PrintInfo(ctx, check.GetUpdateLink(runtime.GOOS))
	return nil
}
