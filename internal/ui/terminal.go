package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/patrickprogramme/edxdl/internal/clipboard"
	"github.com/patrickprogramme/edxdl/internal/courseware"
	"github.com/patrickprogramme/edxdl/pkg/model"
)

type terminalUI struct {
	reader *bufio.Reader
	out    io.Writer
	errOut io.Writer

	// readPassword lit un mot de passe sans écho ; nil => lecture de ligne classique
	readPassword func() (string, error)
	// clipboardURL suggère une URL de cours ; nil => pas de suggestion
	clipboardURL func() string
}

// NewTerminal construit l'UI sur stdin/stdout/stderr.
func NewTerminal() Interface {
	t := newTerminal(os.Stdin, os.Stdout, os.Stderr)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		t.readPassword = func() (string, error) {
			b, err := term.ReadPassword(fd)
			fmt.Fprintln(t.out)
			return string(b), err
		}
	}
	t.clipboardURL = clipboard.CourseURL
	return t
}

func newTerminal(in io.Reader, out, errOut io.Writer) *terminalUI {
	return &terminalUI{
		reader: bufio.NewReader(in),
		out:    out,
		errOut: errOut,
	}
}

func (t *terminalUI) PrintInfo(ctx context.Context, s string) {
	fmt.Fprintln(t.out, s)
}

func (t *terminalUI) PrintError(ctx context.Context, s string) {
	fmt.Fprintln(t.errOut, s)
}

type lineResult struct {
	line string
	err  error
}

// readLine affiche prompt puis lit une ligne ; rend la main dès que ctx est annulé.
func (t *terminalUI) readLine(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)
	ch := make(chan lineResult, 1)
	go func() {
		s, err := t.reader.ReadString('\n')
		ch <- lineResult{s, err}
	}()
	return waitLine(ctx, ch)
}

func waitLine(ctx context.Context, ch <-chan lineResult) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		line := strings.TrimRight(r.line, "\r\n")
		if r.err != nil {
			// dernière ligne sans retour chariot : on la garde
			if errors.Is(r.err, io.EOF) && line != "" {
				return line, nil
			}
			return "", fmt.Errorf("lecture stdin: %w", r.err)
		}
		return line, nil
	}
}

func (t *terminalUI) PromptCredentials(ctx context.Context) (string, string, error) {
	username, err := t.readLine(ctx, "Username: ")
	if err != nil {
		return "", "", err
	}
	if t.readPassword == nil {
		password, err := t.readLine(ctx, "Password: ")
		if err != nil {
			return "", "", err
		}
		return strings.TrimSpace(username), password, nil
	}

	fmt.Fprint(t.out, "Password: ")
	ch := make(chan lineResult, 1)
	go func() {
		s, err := t.readPassword()
		ch <- lineResult{s, err}
	}()
	password, err := waitLine(ctx, ch)
	if err != nil {
		return "", "", err
	}
	return strings.TrimSpace(username), password, nil
}

func (t *terminalUI) ChooseCourse(ctx context.Context, courses []model.Course) (model.Course, error) {
	fmt.Fprintf(t.out, "You can access %d courses on edX\n", len(courses))

	started := 0
	for i, c := range courses {
		fmt.Fprintf(t.out, "%d - %s\n", i+1, c)
		if c.State == model.Started {
			started++
		}
	}
	if started == 0 {
		return model.Course{}, &courseware.InvalidSelectionError{Reason: "aucun cours commencé"}
	}

	// suggestion depuis le presse-papier : Entrée vide => ce cours
	var suggested *model.Course
	if t.clipboardURL != nil {
		if u := t.clipboardURL(); u != "" {
			if c, err := courseware.SelectByURL(courses, u); err == nil && c.State == model.Started {
				suggested = &c
				fmt.Fprintf(t.out, "[info] Course from clipboard: %s (press Enter to use it)\n", c.Name)
			}
		}
	}

	for {
		input, err := t.readLine(ctx, "Enter Course Number: ")
		if err != nil {
			return model.Course{}, err
		}
		input = strings.TrimSpace(input)
		if input == "" && suggested != nil {
			return *suggested, nil
		}
		n, convErr := strconv.Atoi(input)
		if convErr == nil {
			c, err := courseware.SelectByNumber(courses, n)
			if err == nil {
				return c, nil
			}
		}
		fmt.Fprintf(t.out, "Enter a valid Number for a Started Course ! between 1 and %d\n", len(courses))
	}
}

func (t *terminalUI) ChooseWeeks(ctx context.Context, course model.Course, weeks []model.Week) ([]string, error) {
	fmt.Fprintf(t.out, "%s has %d weeks so far\n", course.Name, len(weeks))
	for i, w := range weeks {
		fmt.Fprintf(t.out, "%d - Download %s videos\n", i+1, w.Label)
	}
	fmt.Fprintf(t.out, "%d - Download them all\n", len(weeks)+1)

	for {
		input, err := t.readLine(ctx, "Enter Your Choice: ")
		if err != nil {
			return nil, err
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(input))
		if convErr == nil {
			links, err := courseware.SelectWeeks(weeks, n)
			if err == nil {
				return links, nil
			}
		}
		fmt.Fprintf(t.out, "Enter a valid Number between 1 and %d\n", len(weeks)+1)
	}
}

func (t *terminalUI) PromptFormat(ctx context.Context) (string, error) {
	fmt.Fprintln(t.out, "Choose a valid format or a set of valid format codes e.g. 22/17/...")
	f, err := t.readLine(ctx, "Choose Format code: ")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(f), nil
}

func (t *terminalUI) PromptSubtitles(ctx context.Context) (bool, error) {
	answer, err := t.readLine(ctx, "Download subtitles (y/n)? ")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y"), nil
}
