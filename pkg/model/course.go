package model

import "fmt"

// CourseState indique si le cours a déjà commencé.
type CourseState int

const (
	NotStarted CourseState = iota
	Started
)

func (s CourseState) String() string {
	switch s {
	case Started:
		return "Started"
	default:
		return "Not started"
	}
}

// Course représente un cours auquel l'utilisateur est inscrit (lu sur le dashboard).
type Course struct {
	ID    string      // triplet org/course/run, ex: "HarvardX/SPU27x/2013_Oct"
	Name  string      // nom affiché
	State CourseState // Started ou NotStarted
	URL   string      // url absolue du cours
}

func (c Course) String() string {
	return fmt.Sprintf("%s -> %s", c.Name, c.State)
}

// Week regroupe les pages d'une section du courseware, dans l'ordre de la page.
type Week struct {
	Label    string
	PageURLs []string
}
